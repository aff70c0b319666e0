package types

import (
	"github.com/wordwizards/duel-server/internal/engine"
	"github.com/wordwizards/duel-server/internal/match"
	"github.com/wordwizards/duel-server/internal/spellbook"
)

type ClientMessage struct {
	Type      string `json:"type"` // "FindMatch" | "CastSpell" | "CounterAttempt" | "EndTurn"
	MatchID   string `json:"match_id,omitempty"`
	SpellName string `json:"spell_name,omitempty"`
	TypedText string `json:"typed_text,omitempty"`
}

type ServerMessage struct {
	Type       string                   `json:"type"`
	MatchID    string                   `json:"match_id,omitempty"`
	State      *match.Snapshot          `json:"state,omitempty"`
	OK         *bool                    `json:"ok,omitempty"`
	Reason     string                   `json:"reason,omitempty"`
	AttackerID string                   `json:"attacker_id,omitempty"`
	DefenderID string                   `json:"defender_id,omitempty"`
	Spell      *spellbook.Spell         `json:"spell,omitempty"`
	WindowMs   int                      `json:"window_ms,omitempty"`
	Breakdown  *engine.CounterBreakdown `json:"breakdown,omitempty"`
	WinnerID   string                   `json:"winner_id,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

// FromNotice flattens a match notice into the wire envelope.
func FromNotice(n match.Notice) ServerMessage {
	sm := ServerMessage{
		Type:       string(n.Type),
		MatchID:    n.MatchID,
		State:      n.Snapshot,
		Reason:     n.Reason,
		AttackerID: n.AttackerID,
		DefenderID: n.DefenderID,
		Spell:      n.Spell,
		WindowMs:   n.WindowMs,
		Breakdown:  n.Breakdown,
		WinnerID:   n.WinnerID,
	}
	if n.Type == match.NoticeCastResult {
		ok := n.CastOK
		sm.OK = &ok
	}
	return sm
}
