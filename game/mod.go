package game

import (
	"errors"
	"time"

	"golang.org/x/exp/rand"
)

var (
	// ErrIllegalAction marks a move whose preconditions do not hold. Callers should only play legal actions.
	ErrIllegalAction = errors.New("illegal action")
	// ErrInvariant marks a broken card-count or hand-size invariant in the state machine itself.
	ErrInvariant = errors.New("invariant violated")

	ErrPlayerCount   = errors.New("invalid number of players")
	ErrDeckExhausted = errors.New("not enough cards in deck")
	ErrHandFull      = errors.New("hand is full")
)

type Option func(gs *GameState)

// WithRand sets the random source used for shuffles and steals.
func WithRand(rng *rand.Rand) Option {
	return func(gs *GameState) {
		if rng != nil {
			gs.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func defaultRand() *rand.Rand {
	return rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
}
