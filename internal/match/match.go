package match

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wordwizards/duel-server/internal/engine"
	"github.com/wordwizards/duel-server/internal/spellbook"
)

// Phase is the explicit turn/combat state machine. Exactly one phase holds at
// a time; intents that don't fit the current phase are dropped.
type Phase string

const (
	PhaseWaitingForAction Phase = "waiting_for_action"
	PhaseCounterPending   Phase = "counter_pending"
	PhaseOver             Phase = "over"
)

// Participant binds a connection identity to the channel its ws writer drains.
type Participant struct {
	ID     string
	Outbox chan Notice
}

type pendingCounter struct {
	attacker string
	defender string
	spell    spellbook.Spell
	seq      int
	timer    *time.Timer
}

// Match owns the authoritative state of one duel. All mutation happens inside
// loop(), one message at a time, so no locks are needed.
type Match struct {
	id      string
	inbox   chan Msg
	rules   engine.Rules
	book    *spellbook.Book
	order   [2]string
	players map[string]*engine.PlayerState
	clients map[string]chan Notice
	turn    string
	phase   Phase
	pending *pendingCounter
	seq     int
	last    *LastAction
	winner  string
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

// New starts the match actor. Player order is fixed at creation: a was waiting
// first, so a is player 1 and takes the first turn. Both participants receive
// MatchFound with the initial snapshot immediately.
func New(parent context.Context, id string, a, b Participant, rules engine.Rules, book *spellbook.Book, log *zap.Logger) *Match {
	ctx, cancel := context.WithCancel(parent)

	pa := engine.NewPlayerState(rules)
	pb := engine.NewPlayerState(rules)
	m := &Match{
		id:      id,
		inbox:   make(chan Msg, 64),
		rules:   rules,
		book:    book,
		order:   [2]string{a.ID, b.ID},
		players: map[string]*engine.PlayerState{a.ID: &pa, b.ID: &pb},
		clients: map[string]chan Notice{a.ID: a.Outbox, b.ID: b.Outbox},
		turn:    a.ID,
		phase:   PhaseWaitingForAction,
		log:     log.With(zap.String("match_id", id)),
		ctx:     ctx,
		cancel:  cancel,
	}

	m.broadcast(Notice{Type: NoticeMatchFound, MatchID: m.id, Snapshot: m.snapshot()})
	go m.loop()
	return m
}

func (m *Match) ID() string { return m.id }

// Inbox exposes the message channel to the hub, ws layer, and tests.
func (m *Match) Inbox() chan<- Msg { return m.inbox }

func (m *Match) loop() {
	for {
		select {
		case <-m.ctx.Done():
			m.shutdown()
			return

		case raw := <-m.inbox:
			switch msg := raw.(type) {
			case CastSpell:
				m.handleCast(msg)
			case CounterAttempt:
				m.handleCounter(msg.From, msg.Typed)
			case counterExpired:
				m.handleExpiry(msg.seq)
			case EndTurn:
				m.handleEndTurn(msg)
			case Leave:
				m.handleLeave(msg)
			case GetState:
				msg.Reply <- m.view()
			case Shutdown:
				m.shutdown()
				return
			}
		}
	}
}

// rejectAction classifies why an action intent is inadmissible right now.
// Rejections stay silent on the wire; they only show up in debug logs.
func (m *Match) rejectAction(from string) error {
	switch {
	case m.phase == PhaseOver:
		return engine.ErrMatchOver
	case m.phase != PhaseWaitingForAction:
		return engine.ErrWrongPhase
	case from != m.turn:
		return engine.ErrNotYourTurn
	}
	return nil
}

func (m *Match) handleCast(msg CastSpell) {
	if err := m.rejectAction(msg.From); err != nil {
		m.log.Debug("cast dropped", zap.String("from", msg.From), zap.Error(err))
		return
	}
	spell, ok := m.book.Lookup(msg.SpellName)
	if !ok {
		m.log.Debug("cast dropped", zap.String("spell", msg.SpellName), zap.Error(engine.ErrUnknownSpell))
		return
	}

	caster := m.players[msg.From]
	switch spell.Type {
	case spellbook.TypeHeal:
		heal, err := engine.AttemptHealCast(m.rules, caster, spell, msg.Typed)
		if err != nil {
			m.send(msg.From, Notice{Type: NoticeCastResult, MatchID: m.id, CastOK: false, Reason: err.Error()})
			m.broadcastState()
			return
		}
		m.last = &LastAction{Actor: msg.From, Kind: "heal", Spell: spell.Name, Heal: &heal}
		m.send(msg.From, Notice{Type: NoticeCastResult, MatchID: m.id, CastOK: true})
		m.broadcastState()

	case spellbook.TypeAttack:
		if err := engine.AttemptAttackCast(caster, spell, msg.Typed); err != nil {
			// Failed cast costs mana (unless unaffordable) but never the turn.
			m.send(msg.From, Notice{Type: NoticeCastResult, MatchID: m.id, CastOK: false, Reason: err.Error()})
			m.broadcastState()
			return
		}

		defender := m.other(msg.From)
		m.seq++
		window := engine.CounterWindow(m.rules, spell.Tier)
		pc := &pendingCounter{attacker: msg.From, defender: defender, spell: spell, seq: m.seq}
		pc.timer = time.AfterFunc(window, func() {
			select {
			case m.inbox <- counterExpired{seq: pc.seq}:
			case <-m.ctx.Done():
			}
		})
		m.pending = pc
		m.phase = PhaseCounterPending

		m.send(msg.From, Notice{Type: NoticeCastResult, MatchID: m.id, CastOK: true})
		m.broadcast(Notice{
			Type:       NoticeCounterPhaseStart,
			MatchID:    m.id,
			AttackerID: msg.From,
			DefenderID: defender,
			Spell:      &spell,
			WindowMs:   int(window.Milliseconds()),
		})
		m.broadcastState()
	}
}

func (m *Match) handleCounter(from, typed string) {
	if m.phase != PhaseCounterPending || m.pending == nil || from != m.pending.defender {
		return
	}
	m.resolveCounter(typed)
}

// handleExpiry force-resolves a counter whose window elapsed with no attempt,
// as if the defender typed nothing. A stale seq means it was already resolved.
func (m *Match) handleExpiry(seq int) {
	if m.phase != PhaseCounterPending || m.pending == nil || m.pending.seq != seq {
		return
	}
	m.resolveCounter("")
}

func (m *Match) resolveCounter(typed string) {
	pc := m.pending
	pc.timer.Stop()
	m.pending = nil

	defender := m.players[pc.defender]
	breakdown := engine.ResolveCounteredDamage(defender, pc.spell, typed)
	m.last = &LastAction{Actor: pc.attacker, Kind: "attack", Spell: pc.spell.Name, Breakdown: &breakdown}

	m.broadcast(Notice{
		Type:       NoticeCounterPhaseEnd,
		MatchID:    m.id,
		AttackerID: pc.attacker,
		DefenderID: pc.defender,
		Breakdown:  &breakdown,
	})

	if defender.Health <= 0 {
		m.finish(pc.attacker)
		return
	}

	// The turn stays with the attacker; they choose when to end it.
	m.phase = PhaseWaitingForAction
	m.broadcastState()
}

func (m *Match) handleEndTurn(msg EndTurn) {
	if m.rejectAction(msg.From) != nil {
		return
	}
	m.turn = m.other(msg.From)
	engine.RegenerateMana(m.rules, m.players[m.turn])
	m.last = &LastAction{Actor: msg.From, Kind: "end-turn"}
	m.broadcastState()
}

func (m *Match) handleLeave(msg Leave) {
	delete(m.clients, msg.From)
	if m.phase == PhaseOver {
		return
	}
	if m.pending != nil {
		m.pending.timer.Stop()
		m.pending = nil
	}
	m.log.Info("participant left, forfeiting", zap.String("client_id", msg.From))
	m.finish(m.other(msg.From))
}

func (m *Match) finish(winner string) {
	m.phase = PhaseOver
	m.winner = winner
	m.broadcast(Notice{Type: NoticeGameOver, MatchID: m.id, WinnerID: winner, Snapshot: m.snapshot()})
}

func (m *Match) shutdown() {
	if m.pending != nil {
		m.pending.timer.Stop()
		m.pending = nil
	}
	clear(m.clients)
	m.cancel()
}

func (m *Match) other(id string) string {
	if id == m.order[0] {
		return m.order[1]
	}
	return m.order[0]
}

func (m *Match) snapshot() *Snapshot {
	players := make(map[string]engine.PlayerState, len(m.players))
	for id, ps := range m.players {
		players[id] = *ps
	}
	return &Snapshot{
		MatchID:     m.id,
		Players:     players,
		PlayerOrder: m.order,
		Turn:        m.turn,
		LastAction:  m.last,
		GameOver:    m.phase == PhaseOver,
		Winner:      m.winner,
	}
}

func (m *Match) view() View {
	players := make(map[string]engine.PlayerState, len(m.players))
	for id, ps := range m.players {
		players[id] = *ps
	}
	return View{
		Phase:      m.phase,
		Turn:       m.turn,
		Players:    players,
		NumClients: len(m.clients),
		GameOver:   m.phase == PhaseOver,
		Winner:     m.winner,
	}
}

func (m *Match) broadcastState() {
	m.broadcast(Notice{Type: NoticeStateUpdate, MatchID: m.id, Snapshot: m.snapshot()})
}

func (m *Match) send(to string, n Notice) {
	ch, ok := m.clients[to]
	if !ok {
		return
	}
	select {
	case ch <- n:
	default:
		// Slow client; snapshots are full state so dropping one is safe.
		m.log.Warn("outbox full, notice dropped", zap.String("client_id", to))
	}
}

func (m *Match) broadcast(n Notice) {
	for id := range m.clients {
		m.send(id, n)
	}
}
