package match

import (
	"github.com/wordwizards/duel-server/internal/engine"
	"github.com/wordwizards/duel-server/internal/spellbook"
)

type Msg interface{ isMatchMsg() }

// CastSpell is a turn holder casting an attack or heal. The server resolves
// SpellName against the catalog itself; clients never supply damage or cost.
type CastSpell struct {
	From      string
	SpellName string
	Typed     string
}

func (CastSpell) isMatchMsg() {}

type CounterAttempt struct {
	From  string
	Typed string
}

func (CounterAttempt) isMatchMsg() {}

type EndTurn struct{ From string }

func (EndTurn) isMatchMsg() {}

// Leave means the participant's connection is gone. The remaining player wins
// by forfeit.
type Leave struct{ From string }

func (Leave) isMatchMsg() {}

type Shutdown struct{}

func (Shutdown) isMatchMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isMatchMsg() {}

// counterExpired is posted by the window timer. seq guards against a timer
// firing for a counter that was already resolved.
type counterExpired struct{ seq int }

func (counterExpired) isMatchMsg() {}

// View is a test-only reflection of internal state, served from inside the
// loop so reads are race-free.
type View struct {
	Phase      Phase
	Turn       string
	Players    map[string]engine.PlayerState
	NumClients int
	GameOver   bool
	Winner     string
}

type NoticeType string

const (
	// NoticeWaiting is sent by the hub while a client sits in the queue; it
	// shares the Notice type so one outbox serves both layers.
	NoticeWaiting           NoticeType = "Waiting"
	NoticeMatchFound        NoticeType = "MatchFound"
	NoticeStateUpdate       NoticeType = "StateUpdate"
	NoticeCastResult        NoticeType = "CastResult"
	NoticeCounterPhaseStart NoticeType = "CounterPhaseStart"
	NoticeCounterPhaseEnd   NoticeType = "CounterPhaseEnd"
	NoticeGameOver          NoticeType = "GameOver"
)

// Notice is what the match pushes into client outboxes; the ws layer turns it
// into the wire-level ServerMessage.
type Notice struct {
	Type       NoticeType
	MatchID    string
	Snapshot   *Snapshot
	CastOK     bool
	Reason     string
	AttackerID string
	DefenderID string
	Spell      *spellbook.Spell
	WindowMs   int
	Breakdown  *engine.CounterBreakdown
	WinnerID   string
}

// LastAction records the most recent accepted intent for the snapshot.
type LastAction struct {
	Actor     string                   `json:"actor"`
	Kind      string                   `json:"kind"` // "attack" | "heal" | "end-turn"
	Spell     string                   `json:"spell,omitempty"`
	Heal      *engine.HealResult       `json:"heal,omitempty"`
	Breakdown *engine.CounterBreakdown `json:"breakdown,omitempty"`
}

type Snapshot struct {
	MatchID     string                        `json:"match_id"`
	Players     map[string]engine.PlayerState `json:"players"`
	PlayerOrder [2]string                     `json:"player_order"`
	Turn        string                        `json:"turn"`
	LastAction  *LastAction                   `json:"last_action,omitempty"`
	GameOver    bool                          `json:"game_over"`
	Winner      string                        `json:"winner,omitempty"`
}
