package types

// Client -> Server
// FindMatch: {}
//   connection must not already be queued or in a match (otherwise ignored)
//
// CastSpell:
//   match_id: string
//   spell_name: string  // resolved server-side against the catalog
//   typed_text: string  // what the player actually typed
//
// CounterAttempt:
//   match_id: string
//   typed_text: string
//
// EndTurn:
//   match_id: string

// Server -> Client
// Waiting: {}
//
// MatchFound:
//   match_id: string
//   state: StateSnapshot
//
// StateUpdate:
//   match_id: string
//   state: StateSnapshot
//
// CastResult (to the caster only):
//   ok: boolean
//   reason: string  // "not enough mana" | "spell misspelled", absent when ok
//
// CounterPhaseStart:
//   attacker_id: string
//   defender_id: string
//   spell: { name, type, magnitude, mana_cost, tier }
//   window_ms: number  // authoritative counter window for this spell's tier
//
// CounterPhaseEnd:
//   attacker_id: string
//   defender_id: string
//   breakdown: { correct_chars, spell_length, reduction_percent, base_damage,
//                final_damage, damage_to_shield, damage_to_health,
//                shield_remaining, health_remaining }
//
// GameOver:
//   winner_id: string
//   state: StateSnapshot
//
// Error (transport-level only; game-rule rejections are silent):
//   error: string
