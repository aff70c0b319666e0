package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/wordwizards/duel-server/internal/hub"
	"github.com/wordwizards/duel-server/internal/match"
	"github.com/wordwizards/duel-server/internal/types"
)

// Handler bridges one WebSocket connection to the hub and, once matched, to
// the match actor. Reads never time out: a queued client may idle until an
// opponent shows up.
func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := randID(6)
		out := make(chan match.Notice, 16)
		log.Debug("client connected", zap.String("client_id", clientID))

		defer func() { h.Inbox() <- hub.Disconnect{ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				select {
				case <-writeCtx.Done():
					return
				case n := <-out:
					payload, _ := json.Marshal(types.FromNotice(n))
					ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
					_ = conn.Write(ctx, websocket.MessageText, payload)
					cancel()
				}
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Otherwise, just exit (hub.Disconnect in defer):
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"Error","error":"bad json"}`))
				continue
			}

			switch cm.Type {
			case "FindMatch":
				h.Inbox() <- hub.FindMatch{ClientID: clientID, Outbox: out}

			case "CastSpell":
				if m := lookupMatch(h, cm.MatchID); m != nil {
					m.Inbox() <- match.CastSpell{From: clientID, SpellName: cm.SpellName, Typed: cm.TypedText}
				}

			case "CounterAttempt":
				if m := lookupMatch(h, cm.MatchID); m != nil {
					m.Inbox() <- match.CounterAttempt{From: clientID, Typed: cm.TypedText}
				}

			case "EndTurn":
				if m := lookupMatch(h, cm.MatchID); m != nil {
					m.Inbox() <- match.EndTurn{From: clientID}
				}

			default:
				_ = conn.Write(r.Context(), websocket.MessageText, []byte(`{"type":"Error","error":"unknown type"}`))
			}
		}
	}
}

// lookupMatch returns nil for unknown ids; intents against unknown matches are
// silently dropped.
func lookupMatch(h *hub.Hub, id string) *match.Match {
	if id == "" {
		return nil
	}
	reply := make(chan *match.Match, 1)
	h.Inbox() <- hub.GetMatch{ID: id, Reply: reply}
	return <-reply
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
