package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/wordwizards/duel-server/internal/engine"
	"github.com/wordwizards/duel-server/internal/spellbook"
)

type spellListing struct {
	spellbook.Spell
	AttackWindowMs  int `json:"attack_window_ms"`
	CounterWindowMs int `json:"counter_window_ms"`
}

// ListSpells serves the catalog with the authoritative typing windows so
// clients render timers from server values instead of computing their own.
func ListSpells(book *spellbook.Book, rules engine.Rules) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spells := book.All()
		out := make([]spellListing, 0, len(spells))
		for _, s := range spells {
			out = append(out, spellListing{
				Spell:           s,
				AttackWindowMs:  int(engine.AttackWindow(rules, s.Tier).Milliseconds()),
				CounterWindowMs: int(engine.CounterWindow(rules, s.Tier).Milliseconds()),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
