package spellbook

import (
	"math/rand"
	"strings"
	"time"
)

type SpellType string

const (
	TypeAttack SpellType = "attack"
	TypeHeal   SpellType = "heal"
)

type Tier int

const (
	TierLow    Tier = 1
	TierMedium Tier = 2
	TierHigh   Tier = 3
)

// WindowMultiplier scales the base typing windows per tier: short names are
// quicker to type, long ones get extra time.
func (t Tier) WindowMultiplier() float64 {
	switch t {
	case TierLow:
		return 0.8
	case TierHigh:
		return 1.3
	default:
		return 1.0
	}
}

type Spell struct {
	Name      string    `json:"name"`
	Type      SpellType `json:"type"`
	Magnitude int       `json:"magnitude"`
	ManaCost  int       `json:"mana_cost"`
	Tier      Tier      `json:"tier"`
}

// Mana cost is 10 per tier step.
const manaCostPerTier = 10

// Magnitude is a single roll in [5,8] scaled by tier. The roll happens once
// when the book is built, so a spell hits for the same amount all process long.
const (
	rollMin = 5
	rollMax = 8
)

type entry struct {
	name string
	typ  SpellType
	tier Tier
}

var seedSpells = []entry{
	{"Nacho nuke", TypeAttack, TierLow},
	{"Sugarshock", TypeAttack, TierLow},
	{"Spicebomb", TypeAttack, TierLow},
	{"Frosting fix", TypeHeal, TierLow},
	{"Gumdrop glow", TypeHeal, TierLow},
	{"Wasabi whiplash", TypeAttack, TierMedium},
	{"Gravy grenade", TypeAttack, TierMedium},
	{"Fries of fury", TypeAttack, TierMedium},
	{"Rhubarb remedy", TypeHeal, TierMedium},
	{"Casserole cure", TypeHeal, TierMedium},
	{"Beetroot boost", TypeHeal, TierMedium},
	{"Exploding cabbage curse", TypeAttack, TierHigh},
	{"Banana peel barrage", TypeAttack, TierHigh},
	{"Molten marshmallow mayhem", TypeAttack, TierHigh},
	{"Ghost pepper blast", TypeAttack, TierHigh},
	{"Vanilla vibe check", TypeHeal, TierHigh},
	{"Gravy fueled recovery", TypeHeal, TierHigh},
	{"Avocado aura boost", TypeHeal, TierHigh},
}

// Book is the read-only spell catalog. Built once at startup; lookups are
// case-insensitive because players type the names.
type Book struct {
	byName map[string]Spell
	order  []Spell
}

// New rolls magnitudes and builds the catalog. seed=0 means time-seeded;
// tests pass a fixed seed for reproducible rolls.
func New(seed int64) *Book {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	b := &Book{byName: make(map[string]Spell, len(seedSpells))}
	for _, e := range seedSpells {
		roll := rollMin + rng.Intn(rollMax-rollMin+1)
		s := Spell{
			Name:      e.name,
			Type:      e.typ,
			Magnitude: roll * int(e.tier),
			ManaCost:  manaCostPerTier * int(e.tier),
			Tier:      e.tier,
		}
		b.byName[strings.ToLower(s.Name)] = s
		b.order = append(b.order, s)
	}
	return b
}

func (b *Book) Lookup(name string) (Spell, bool) {
	s, ok := b.byName[strings.ToLower(name)]
	return s, ok
}

// All returns the catalog in seed order.
func (b *Book) All() []Spell {
	out := make([]Spell, len(b.order))
	copy(out, b.order)
	return out
}
