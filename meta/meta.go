// meta/meta.go
package meta

import "time"

// TOTAL_CARDS is the number of cards in play: every (color, number) pair twice.
const TOTAL_CARDS = 90

// MAX_HAND_SIZE is the most cards a hand may hold at a turn boundary.
const MAX_HAND_SIZE = 20

// INITIAL_HAND_SIZE is how many cards each player is dealt.
const INITIAL_HAND_SIZE = 5

// MIN_PLAYERS and MAX_PLAYERS bound the table size (one human, 1-3 computers).
const MIN_PLAYERS = 2
const MAX_PLAYERS = 4

// MAX_DRAW caps a single draw-multiple action.
const MAX_DRAW = 3

// AUTOSAVE_INTERVAL is how many agent actions pass between Q-table saves.
const AUTOSAVE_INTERVAL = 100

// MAX_TURNS cuts off self-play games that never reach an empty hand.
const MAX_TURNS = 2000

// COMPUTER_DELAY is the default minimum interval between computer actions.
const COMPUTER_DELAY = time.Second
