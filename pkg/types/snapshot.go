package types

// StateSnapshot:
//   match_id: string
//   players: { [clientId]: { hp: number, mana: number, shield: number } }
//   player_order: [player1Id, player2Id]  // fixed at creation, FIFO order,
//                                         // so both clients render the same layout
//   turn: string        // client id of the current turn holder
//   last_action: { actor, kind: "attack"|"heal"|"end-turn", spell?,
//                  heal?: { shield_gained, shield_remaining },
//                  breakdown? } | null
//   game_over: boolean
//   winner: string      // present once game_over is true
