package engine

import (
	"context"
	"fmt"
	"slices"
	"time"

	"notty/game"
	"notty/meta"
	"notty/player"

	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

// WithComputerDelay sets the minimum interval between computer actions.
func WithComputerDelay(delay time.Duration) Option {
	return func(e *Engine) {
		if delay >= 0 {
			e.delay = delay
		}
	}
}

func WithFrame(frame time.Duration) Option {
	return func(e *Engine) {
		if frame > 0 {
			e.frame = frame
		}
	}
}

// WithMaxTurns stops the game after this many actions; zero means no limit.
func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		if turns >= 0 {
			e.maxTurns = turns
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine drives one game: it deals, lets computers act at a readable pace, asks humans for
// their moves and renders the table after every step.
type Engine struct {
	State    *game.GameState
	computer *player.Computer
	input    Input
	view     View
	pacer    *Pacer
	delay    time.Duration
	frame    time.Duration
	maxTurns int
	turns    int
	now      func() time.Time
}

func LocalEngine(gs *game.GameState, computer *player.Computer, input Input, view View, options ...Option) *Engine {
	e := &Engine{ // Default values
		State:    gs,
		computer: computer,
		input:    input,
		view:     view,
		delay:    meta.COMPUTER_DELAY,
		frame:    DefaultFrame,
		now:      time.Now,
	}
	for _, option := range options {
		option(e)
	}
	e.pacer = NewPacer(e.delay, e.now)
	return e
}

// Run ticks the game until someone wins, the turn limit is hit or ctx is cancelled.
// The computer's learned values are flushed before returning.
func (e *Engine) Run(ctx context.Context) (*game.Player, error) {
	defer e.flush(ctx)

	ticker := time.NewTicker(e.frame)
	defer ticker.Stop()

	log.Info().Msgf("game started with %d players", len(e.State.Players))
	for {
		done, err := e.Step(ctx)
		if err != nil {
			return nil, err
		}
		if done {
			winner := e.State.Winner()
			log.Info().Msgf("game over after %d actions, winner: %s", e.turns, winner)
			return winner, nil
		}
		if e.maxTurns > 0 && e.turns >= e.maxTurns {
			log.Info().Msgf("stopping after %d actions without a winner", e.turns)
			return nil, ErrTurnLimit
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Step performs at most one action and reports whether the game is over.
func (e *Engine) Step(ctx context.Context) (bool, error) {
	gs := e.State
	if gs.Winner() != nil {
		return true, nil
	}
	if gs.AllHandsEmpty() {
		if err := gs.Deal(meta.INITIAL_HAND_SIZE); err != nil {
			return false, fmt.Errorf("failed to deal: %w", err)
		}
		e.computer.Agent().ResetEpisode()
		log.Info().Msgf("dealt %d cards to each player", meta.INITIAL_HAND_SIZE)
	}

	current := gs.Current()
	if current.Human {
		action, err := e.input.ChooseAction(ctx, gs, e.HumanOptions())
		if err != nil {
			return false, fmt.Errorf("failed to read action: %w", err)
		}
		if _, err := e.DoAction(ctx, action); err != nil {
			return false, err
		}
	} else if e.pacer.Ready() {
		e.computer.Act(ctx, gs)
		e.pacer.Mark()
		e.turns++
	}

	e.view.Render(gs)
	if gs.CheckWinCondition() {
		e.view.NotifyWin(gs.Winner())
		return true, nil
	}
	return false, nil
}

// HumanOptions lists what a human may choose right now, including play-for-me.
func (e *Engine) HumanOptions() []game.ActionType {
	return append(e.State.LegalActions(), game.PlayForMeAction)
}

// DoAction asks the human for the action's parameters and plays it. It returns false if the
// action is not available or the human's choice is rejected; the game is unchanged then.
func (e *Engine) DoAction(ctx context.Context, action game.ActionType) (bool, error) {
	gs := e.State
	if !gs.IsLegal(action) {
		log.Warn().Msgf("%s is not available to %s", action, gs.Current().Name)
		return false, nil
	}
	if action == game.PlayForMeAction {
		return e.PlayForMe(ctx), nil
	}

	move, err := e.requestMove(ctx, action)
	if err != nil {
		return false, err
	}
	if move == nil {
		return false, nil
	}
	if !gs.Play(move) {
		return false, nil
	}
	e.turns++
	return true, nil
}

// requestMove collects parameters from the input. A nil move means the choice was invalid.
func (e *Engine) requestMove(ctx context.Context, action game.ActionType) (game.Move, error) {
	gs := e.State
	hand := gs.Current().Hand

	switch action {
	case game.DrawMultipleAction:
		limit := gs.MaxDrawCount()
		count, err := e.input.ChooseCount(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to read count: %w", err)
		}
		if count < 1 || count > limit {
			log.Warn().Msgf("cannot draw %d cards, limit is %d", count, limit)
			return nil, nil
		}
		return game.DrawMultiple{Count: count}, nil
	case game.StealAction:
		targets := gs.StealTargets()
		target, err := e.input.ChoosePlayer(ctx, gs, targets)
		if err != nil {
			return nil, fmt.Errorf("failed to read player: %w", err)
		}
		if !slices.Contains(targets, target) {
			log.Warn().Msgf("cannot steal from player %d", target)
			return nil, nil
		}
		return game.Steal{Target: target}, nil
	case game.DrawDiscardDrawAction:
		return game.DrawDiscardDraw{}, nil
	case game.DrawDiscardDiscardAction:
		card, err := e.input.ChooseCard(ctx, hand.Cards())
		if err != nil {
			return nil, fmt.Errorf("failed to read card: %w", err)
		}
		if !hand.Contains(card) {
			log.Warn().Msgf("%s is not in hand", card)
			return nil, nil
		}
		return game.DrawDiscardDiscard{Card: card}, nil
	case game.DiscardGroupAction:
		cards, err := e.input.ChooseCards(ctx, hand.Cards(), game.IsValidGroup)
		if err != nil {
			return nil, fmt.Errorf("failed to read cards: %w", err)
		}
		return game.DiscardGroup{Cards: cards}, nil
	default:
		return game.Pass{}, nil
	}
}

// PlayForMe lets the computer take one action on behalf of the current human.
func (e *Engine) PlayForMe(ctx context.Context) bool {
	current := e.State.Current()
	human := current.Human
	current.Human = false
	defer func() { current.Human = human }()

	turn := e.computer.Act(ctx, e.State)
	e.turns++
	return turn.Ok
}

func (e *Engine) flush(ctx context.Context) {
	if err := e.computer.Flush(context.WithoutCancel(ctx)); err != nil {
		log.Error().Err(err).Msg("failed to save Q-table")
	}
}
