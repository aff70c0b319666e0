package engine

import (
	"math"
	"time"

	"github.com/wordwizards/duel-server/internal/spellbook"
)

type Rules struct {
	StartingHealth      int
	ManaCap             int
	ManaRegenPerTurn    int
	ShieldCap           int
	BaseAttackWindowMs  int
	BaseCounterWindowMs int
}

func DefaultRules() Rules {
	return Rules{
		StartingHealth:      100,
		ManaCap:             50,
		ManaRegenPerTurn:    15,
		ShieldCap:           100,
		BaseAttackWindowMs:  4000,
		BaseCounterWindowMs: 3500,
	}
}

type PlayerState struct {
	Health int `json:"hp"`
	Mana   int `json:"mana"`
	Shield int `json:"shield"`
}

func NewPlayerState(r Rules) PlayerState {
	return PlayerState{Health: r.StartingHealth, Mana: r.ManaCap, Shield: 0}
}

// RegenerateMana tops up the player becoming turn holder, clamped at the cap.
func RegenerateMana(r Rules, p *PlayerState) {
	p.Mana = min(p.Mana+r.ManaRegenPerTurn, r.ManaCap)
}

// AttackWindow is how long the caster gets to type the spell name.
func AttackWindow(r Rules, t spellbook.Tier) time.Duration {
	ms := math.Round(float64(r.BaseAttackWindowMs) * t.WindowMultiplier())
	return time.Duration(ms) * time.Millisecond
}

// CounterWindow is how long the defender gets; shorter than the attack window
// so counters stay under pressure.
func CounterWindow(r Rules, t spellbook.Tier) time.Duration {
	ms := math.Round(float64(r.BaseCounterWindowMs) * t.WindowMultiplier())
	return time.Duration(ms) * time.Millisecond
}
