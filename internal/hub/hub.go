package hub

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wordwizards/duel-server/internal/engine"
	"github.com/wordwizards/duel-server/internal/match"
	"github.com/wordwizards/duel-server/internal/spellbook"
)

type HubMsg interface{ isHubMsg() }

// FindMatch pairs the client with the oldest waiter, or queues it.
type FindMatch struct {
	ClientID string
	Outbox   chan match.Notice
}

type GetMatch struct {
	ID    string
	Reply chan *match.Match
}

// Disconnect removes the client from the wait queue, or forfeits and tears
// down its live match.
type Disconnect struct{ ClientID string }

type ShutdownHub struct{}

// GetStats is a test hook served from inside the loop.
type GetStats struct {
	Reply chan Stats
}

type Stats struct {
	NumWaiting int
	NumMatches int
}

func (FindMatch) isHubMsg()   {}
func (GetMatch) isHubMsg()    {}
func (Disconnect) isHubMsg()  {}
func (ShutdownHub) isHubMsg() {}
func (GetStats) isHubMsg()    {}

type waiter struct {
	id     string
	outbox chan match.Notice
}

// Hub owns the match registry and the matchmaking queue. Like the matches it
// creates, it is a single goroutine processing one message at a time; the
// registry and queue are never touched from outside the loop.
type Hub struct {
	inbox    chan HubMsg
	matches  map[string]*match.Match
	queue    []waiter
	byClient map[string]string // client id -> match id
	rules    engine.Rules
	book     *spellbook.Book
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, rules engine.Rules, book *spellbook.Book, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		matches:  make(map[string]*match.Match),
		byClient: make(map[string]string),
		rules:    rules,
		book:     book,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case raw := <-h.inbox:
			switch msg := raw.(type) {
			case FindMatch:
				h.findMatch(msg)

			case GetMatch:
				msg.Reply <- h.matches[msg.ID] // may be nil

			case Disconnect:
				h.disconnect(msg.ClientID)

			case GetStats:
				msg.Reply <- Stats{NumWaiting: len(h.queue), NumMatches: len(h.matches)}

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) findMatch(msg FindMatch) {
	if _, matched := h.byClient[msg.ClientID]; matched || h.queued(msg.ClientID) {
		return
	}

	if len(h.queue) == 0 {
		h.queue = append(h.queue, waiter{id: msg.ClientID, outbox: msg.Outbox})
		select {
		case msg.Outbox <- match.Notice{Type: match.NoticeWaiting}:
		default:
		}
		return
	}

	// FIFO: the oldest waiter becomes player 1 and takes the first turn.
	w := h.queue[0]
	h.queue = h.queue[1:]

	id := uuid.NewString()
	m := match.New(h.ctx, id,
		match.Participant{ID: w.id, Outbox: w.outbox},
		match.Participant{ID: msg.ClientID, Outbox: msg.Outbox},
		h.rules, h.book, h.log)
	h.matches[id] = m
	h.byClient[w.id] = id
	h.byClient[msg.ClientID] = id

	h.log.Info("match created",
		zap.String("match_id", id),
		zap.String("player1", w.id),
		zap.String("player2", msg.ClientID),
	)
}

func (h *Hub) disconnect(clientID string) {
	for i, w := range h.queue {
		if w.id == clientID {
			h.queue = append(h.queue[:i], h.queue[i+1:]...)
			return
		}
	}

	matchID, ok := h.byClient[clientID]
	if !ok {
		return
	}
	m := h.matches[matchID]
	if m != nil {
		// Leave forfeits to the survivor, then the actor stops. The survivor's
		// outbox already carries the GameOver notice by the time Shutdown runs.
		m.Inbox() <- match.Leave{From: clientID}
		m.Inbox() <- match.Shutdown{}
	}
	delete(h.matches, matchID)
	for id, mid := range h.byClient {
		if mid == matchID {
			delete(h.byClient, id)
		}
	}
}

func (h *Hub) queued(clientID string) bool {
	for _, w := range h.queue {
		if w.id == clientID {
			return true
		}
	}
	return false
}

func (h *Hub) shutdown() {
	for _, m := range h.matches {
		m.Inbox() <- match.Shutdown{}
	}
	clear(h.matches)
	clear(h.byClient)
	h.queue = nil
	h.cancel()
}
