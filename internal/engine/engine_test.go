package engine

import (
	"errors"
	"testing"

	"github.com/wordwizards/duel-server/internal/spellbook"
)

func attackSpell(name string, magnitude, cost int) spellbook.Spell {
	return spellbook.Spell{Name: name, Type: spellbook.TypeAttack, Magnitude: magnitude, ManaCost: cost, Tier: spellbook.TierMedium}
}

func healSpell(name string, magnitude, cost int) spellbook.Spell {
	return spellbook.Spell{Name: name, Type: spellbook.TypeHeal, Magnitude: magnitude, ManaCost: cost, Tier: spellbook.TierMedium}
}

func TestCounterEffectiveness(t *testing.T) {
	cases := []struct {
		name    string
		spell   string
		attempt string
		want    int
	}{
		{name: "exact match", spell: "Fireball", attempt: "Fireball", want: 8},
		{name: "case insensitive", spell: "Fireball", attempt: "fIrEbAlL", want: 8},
		{name: "leading prefix", spell: "Fireball", attempt: "fire", want: 4},
		{name: "empty attempt", spell: "Fireball", attempt: "", want: 0},
		{name: "no positional overlap", spell: "Fireball", attempt: "xxxxxxxx", want: 0},
		{name: "out of position gets no credit", spell: "Fireball", attempt: "ireball", want: 0},
		{name: "excess characters ignored", spell: "Fireball", attempt: "Fireballllll", want: 8},
		{name: "gap then match", spell: "Fireball", attempt: "Fixeball", want: 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CounterEffectiveness(tc.spell, tc.attempt)
			if got != tc.want {
				t.Fatalf("CounterEffectiveness(%q, %q) = %d, want %d", tc.spell, tc.attempt, got, tc.want)
			}
			if got > len(tc.spell) {
				t.Fatalf("effectiveness %d exceeds spell length %d", got, len(tc.spell))
			}
		})
	}
}

func TestResolveCounteredDamage(t *testing.T) {
	spell := attackSpell("Fireball", 25, 20)

	cases := []struct {
		name           string
		defender       PlayerState
		attempt        string
		wantReduction  float64
		wantFinal      int
		wantShieldLeft int
		wantHealthLeft int
	}{
		{
			// half the characters typed halves the damage, rounded
			name:           "half counter",
			defender:       PlayerState{Health: 100, Mana: 50, Shield: 0},
			attempt:        "fire",
			wantReduction:  50.0,
			wantFinal:      13,
			wantShieldLeft: 0,
			wantHealthLeft: 87,
		},
		{
			name:           "no counter takes full damage",
			defender:       PlayerState{Health: 100, Mana: 50, Shield: 0},
			attempt:        "",
			wantReduction:  0,
			wantFinal:      25,
			wantShieldLeft: 0,
			wantHealthLeft: 75,
		},
		{
			name:           "perfect counter negates everything",
			defender:       PlayerState{Health: 100, Mana: 50, Shield: 0},
			attempt:        "fireball",
			wantReduction:  100,
			wantFinal:      0,
			wantShieldLeft: 0,
			wantHealthLeft: 100,
		},
		{
			// shield takes the hit first, remainder bleeds into health
			name:           "shield overflow",
			defender:       PlayerState{Health: 100, Mana: 50, Shield: 10},
			attempt:        "fire",
			wantReduction:  50.0,
			wantFinal:      13,
			wantShieldLeft: 0,
			wantHealthLeft: 97,
		},
		{
			name:           "shield fully absorbs",
			defender:       PlayerState{Health: 100, Mana: 50, Shield: 40},
			attempt:        "fire",
			wantReduction:  50.0,
			wantFinal:      13,
			wantShieldLeft: 27,
			wantHealthLeft: 100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			def := tc.defender
			got := ResolveCounteredDamage(&def, spell, tc.attempt)

			if got.ReductionPercent != tc.wantReduction {
				t.Fatalf("reduction = %v, want %v", got.ReductionPercent, tc.wantReduction)
			}
			if got.FinalDamage != tc.wantFinal {
				t.Fatalf("final damage = %d, want %d", got.FinalDamage, tc.wantFinal)
			}
			if def.Shield != tc.wantShieldLeft || got.ShieldRemaining != tc.wantShieldLeft {
				t.Fatalf("shield = %d (breakdown %d), want %d", def.Shield, got.ShieldRemaining, tc.wantShieldLeft)
			}
			if def.Health != tc.wantHealthLeft || got.HealthRemaining != tc.wantHealthLeft {
				t.Fatalf("health = %d (breakdown %d), want %d", def.Health, got.HealthRemaining, tc.wantHealthLeft)
			}
			if got.DamageToShield+got.DamageToHealth != got.FinalDamage {
				t.Fatalf("shield %d + health %d damage != final %d", got.DamageToShield, got.DamageToHealth, got.FinalDamage)
			}
		})
	}
}

func TestResolveCounteredDamage_NeverNegative(t *testing.T) {
	spell := attackSpell("Megablast", 200, 30)
	def := PlayerState{Health: 5, Mana: 0, Shield: 3}
	got := ResolveCounteredDamage(&def, spell, "")
	if def.Health != 0 || def.Shield != 0 {
		t.Fatalf("expected floor at zero, got health=%d shield=%d", def.Health, def.Shield)
	}
	if got.HealthRemaining != 0 || got.ShieldRemaining != 0 {
		t.Fatalf("breakdown not floored: %+v", got)
	}
}

func TestAttemptAttackCast(t *testing.T) {
	spell := attackSpell("Spicebomb", 12, 10)

	cases := []struct {
		name     string
		mana     int
		typed    string
		wantErr  error
		wantMana int
	}{
		// unaffordable cast leaves mana untouched
		{name: "insufficient mana", mana: 5, typed: "Spicebomb", wantErr: ErrInsufficientMana, wantMana: 5},
		// affordable but misspelled still pays
		{name: "misspelled costs mana", mana: 50, typed: "Spicebom", wantErr: ErrMisspelled, wantMana: 40},
		{name: "success", mana: 50, typed: "Spicebomb", wantErr: nil, wantMana: 40},
		{name: "case insensitive success", mana: 50, typed: "sPiCeBoMb", wantErr: nil, wantMana: 40},
		{name: "exact mana is enough", mana: 10, typed: "Spicebomb", wantErr: nil, wantMana: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			caster := PlayerState{Health: 100, Mana: tc.mana}
			err := AttemptAttackCast(&caster, spell, tc.typed)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if caster.Mana != tc.wantMana {
				t.Fatalf("mana = %d, want %d", caster.Mana, tc.wantMana)
			}
		})
	}
}

func TestAttemptHealCast(t *testing.T) {
	r := DefaultRules()
	spell := healSpell("Frosting fix", 8, 10)

	t.Run("shield gains magnitude", func(t *testing.T) {
		caster := PlayerState{Health: 90, Mana: 50, Shield: 0}
		got, err := AttemptHealCast(r, &caster, spell, "frosting fix")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got.ShieldGained != 8 || caster.Shield != 8 {
			t.Fatalf("shield gained %d, shield %d; want 8, 8", got.ShieldGained, caster.Shield)
		}
		if caster.Health != 90 {
			t.Fatalf("heal touched health: %d", caster.Health)
		}
		if caster.Mana != 40 {
			t.Fatalf("mana = %d, want 40", caster.Mana)
		}
	})

	t.Run("shield clamps at cap", func(t *testing.T) {
		caster := PlayerState{Health: 100, Mana: 50, Shield: 97}
		got, err := AttemptHealCast(r, &caster, spell, "Frosting fix")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if caster.Shield != r.ShieldCap || got.ShieldGained != 3 {
			t.Fatalf("shield %d gained %d; want %d gained 3", caster.Shield, got.ShieldGained, r.ShieldCap)
		}
	})

	t.Run("misspelled still pays", func(t *testing.T) {
		caster := PlayerState{Health: 100, Mana: 50, Shield: 0}
		_, err := AttemptHealCast(r, &caster, spell, "frosting fixx")
		if !errors.Is(err, ErrMisspelled) {
			t.Fatalf("err = %v, want ErrMisspelled", err)
		}
		if caster.Mana != 40 || caster.Shield != 0 {
			t.Fatalf("mana %d shield %d; want 40, 0", caster.Mana, caster.Shield)
		}
	})

	t.Run("insufficient mana pays nothing", func(t *testing.T) {
		caster := PlayerState{Health: 100, Mana: 5, Shield: 0}
		_, err := AttemptHealCast(r, &caster, spell, "Frosting fix")
		if !errors.Is(err, ErrInsufficientMana) {
			t.Fatalf("err = %v, want ErrInsufficientMana", err)
		}
		if caster.Mana != 5 {
			t.Fatalf("mana = %d, want 5", caster.Mana)
		}
	})
}

func TestRegenerateMana(t *testing.T) {
	r := DefaultRules()

	p := PlayerState{Mana: 20}
	RegenerateMana(r, &p)
	if p.Mana != 35 {
		t.Fatalf("mana = %d, want 35", p.Mana)
	}

	p = PlayerState{Mana: 45}
	RegenerateMana(r, &p)
	if p.Mana != r.ManaCap {
		t.Fatalf("mana = %d, want cap %d", p.Mana, r.ManaCap)
	}
}

func TestTypingWindows(t *testing.T) {
	r := DefaultRules()

	cases := []struct {
		tier        spellbook.Tier
		wantAttack  int64
		wantCounter int64
	}{
		{spellbook.TierLow, 3200, 2800},
		{spellbook.TierMedium, 4000, 3500},
		{spellbook.TierHigh, 5200, 4550},
	}

	for _, tc := range cases {
		if got := AttackWindow(r, tc.tier).Milliseconds(); got != tc.wantAttack {
			t.Fatalf("attack window tier %d = %dms, want %dms", tc.tier, got, tc.wantAttack)
		}
		if got := CounterWindow(r, tc.tier).Milliseconds(); got != tc.wantCounter {
			t.Fatalf("counter window tier %d = %dms, want %dms", tc.tier, got, tc.wantCounter)
		}
	}
}
