package engine

import (
	"context"
	"errors"
	"time"

	"notty/game"
)

// DefaultFrame is how often the loop ticks when no frame interval is configured.
const DefaultFrame = 50 * time.Millisecond

var ErrTurnLimit = errors.New("turn limit reached")

// Input asks a human for an action and its parameters. Implementations may block, but must
// return ctx.Err() once ctx is cancelled.
type Input interface {
	ChooseAction(ctx context.Context, gs *game.GameState, options []game.ActionType) (game.ActionType, error)
	ChooseCount(ctx context.Context, max int) (int, error)
	ChoosePlayer(ctx context.Context, gs *game.GameState, targets []int) (int, error)
	ChooseCard(ctx context.Context, hand []game.Card) (game.Card, error)
	// ChooseCards keeps asking until valid accepts the selection or the human gives up.
	ChooseCards(ctx context.Context, hand []game.Card, valid func([]game.Card) bool) ([]game.Card, error)
}

// View shows the table. Rendering is not the engine's concern beyond calling it.
type View interface {
	Render(gs *game.GameState)
	NotifyWin(winner *game.Player)
}
