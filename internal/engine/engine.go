package engine

import (
	"errors"
	"math"
	"strings"
	"unicode"

	"github.com/wordwizards/duel-server/internal/spellbook"
)

var ErrInsufficientMana = errors.New("not enough mana")
var ErrMisspelled = errors.New("spell misspelled")
var ErrNotYourTurn = errors.New("invalid turn")
var ErrWrongPhase = errors.New("wrong phase")
var ErrUnknownSpell = errors.New("unknown spell")
var ErrMatchOver = errors.New("match already over")

// AttemptAttackCast charges and validates an attack cast. Mana is spent on the
// attempt, not on success: an affordable but misspelled cast still burns the
// cost. Only an unaffordable cast leaves the caster untouched.
func AttemptAttackCast(caster *PlayerState, spell spellbook.Spell, typed string) error {
	if caster.Mana < spell.ManaCost {
		return ErrInsufficientMana
	}
	caster.Mana -= spell.ManaCost

	if !strings.EqualFold(typed, spell.Name) {
		return ErrMisspelled
	}
	return nil
}

type HealResult struct {
	ShieldGained    int `json:"shield_gained"`
	ShieldRemaining int `json:"shield_remaining"`
}

// AttemptHealCast follows the same mana-on-attempt rule as attacks. Heals feed
// the shield, never health; overflow past the cap is lost.
func AttemptHealCast(r Rules, caster *PlayerState, spell spellbook.Spell, typed string) (HealResult, error) {
	if caster.Mana < spell.ManaCost {
		return HealResult{}, ErrInsufficientMana
	}
	caster.Mana -= spell.ManaCost

	if !strings.EqualFold(typed, spell.Name) {
		return HealResult{}, ErrMisspelled
	}

	before := caster.Shield
	caster.Shield = min(caster.Shield+spell.Magnitude, r.ShieldCap)
	return HealResult{
		ShieldGained:    caster.Shield - before,
		ShieldRemaining: caster.Shield,
	}, nil
}

// CounterEffectiveness counts position-by-position matches of the attempt
// against the spell name, case-insensitive. A character only scores in its own
// position; extra trailing characters in the attempt are ignored.
func CounterEffectiveness(spellName, attempt string) int {
	name := []rune(spellName)
	typed := []rune(attempt)

	correct := 0
	for i, c := range name {
		if i >= len(typed) {
			break
		}
		if unicode.ToLower(typed[i]) == unicode.ToLower(c) {
			correct++
		}
	}
	return correct
}

type CounterBreakdown struct {
	CorrectChars     int     `json:"correct_chars"`
	SpellLength      int     `json:"spell_length"`
	ReductionPercent float64 `json:"reduction_percent"`
	BaseDamage       int     `json:"base_damage"`
	FinalDamage      int     `json:"final_damage"`
	DamageToShield   int     `json:"damage_to_shield"`
	DamageToHealth   int     `json:"damage_to_health"`
	ShieldRemaining  int     `json:"shield_remaining"`
	HealthRemaining  int     `json:"health_remaining"`
}

// ResolveCounteredDamage applies a countered attack to the defender. Each
// correctly typed character shaves off a proportional slice of the damage;
// what remains lands on the shield first and overflows into health.
func ResolveCounteredDamage(defender *PlayerState, spell spellbook.Spell, attempt string) CounterBreakdown {
	correct := CounterEffectiveness(spell.Name, attempt)
	length := len([]rune(spell.Name))

	reduction := float64(correct) / float64(length) * 100
	final := int(math.Round(float64(spell.Magnitude) * (1 - reduction/100)))

	shieldBefore := defender.Shield
	damageToHealth := 0
	if final > defender.Shield {
		damageToHealth = final - defender.Shield
		defender.Shield = 0
	} else {
		defender.Shield -= final
	}
	defender.Health = max(defender.Health-damageToHealth, 0)

	return CounterBreakdown{
		CorrectChars: correct,
		SpellLength:  length,
		// one decimal, for display only
		ReductionPercent: math.Round(reduction*10) / 10,
		BaseDamage:       spell.Magnitude,
		FinalDamage:      final,
		DamageToShield:   min(final, shieldBefore),
		DamageToHealth:   damageToHealth,
		ShieldRemaining:  defender.Shield,
		HealthRemaining:  defender.Health,
	}
}
