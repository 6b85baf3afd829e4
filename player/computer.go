package player

import (
	"context"

	"notty/game"
	"notty/learner"
	"notty/meta"
	"notty/store"

	"github.com/rs/zerolog/log"
)

// ShrinkBonus is the extra reward per card a computer gets rid of in one action.
const ShrinkBonus = 2.0

type Option func(c *Computer)

// WithStore enables autosaving the agent to s.
func WithStore(s store.Store) Option {
	return func(c *Computer) {
		c.store = s
	}
}

func WithAutosaveInterval(actions int) Option {
	return func(c *Computer) {
		if actions > 0 {
			c.autosave = actions
		}
	}
}

// Turn describes one action a computer took.
type Turn struct {
	Player   int // Seat that acted
	Action   game.ActionType
	Reward   float64
	HandSize int // Hand size after the action
	Explored bool
	Ok       bool // False if a discard-group was rejected
}

// Computer plays for non-human seats: the agent picks the action kind, the heuristics
// pick its parameters, and the outcome is fed back to the agent.
type Computer struct {
	agent    *learner.Agent
	store    store.Store
	autosave int
}

func NewComputer(agent *learner.Agent, options ...Option) *Computer {
	c := &Computer{
		agent:    agent,
		autosave: meta.AUTOSAVE_INTERVAL,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Computer) Agent() *learner.Agent {
	return c.agent
}

// Act plays one action for the current player. The game must not be over.
func (c *Computer) Act(ctx context.Context, gs *game.GameState) Turn {
	seat := gs.CurrentPlayer
	actor := gs.Current()
	before := actor.Hand.Size()
	explored := c.agent.Stats().ExplorationActions

	action := c.agent.ChooseAction(gs)
	move := resolve(gs, action)
	ok := gs.Play(move)

	reward := gs.Reward(seat, move.Type())
	if shrink := before - actor.Hand.Size(); shrink > 0 {
		reward += float64(shrink) * ShrinkBonus
	}
	c.agent.Learn(gs, reward)

	log.Debug().Msgf("%s played %s (reward %.2f)", actor.Name, move.Type(), reward)

	if c.store != nil && c.agent.TotalActions()%c.autosave == 0 {
		if err := c.agent.Save(ctx, c.store); err != nil {
			log.Error().Err(err).Msg("autosave failed")
		}
	}

	return Turn{
		Player:   seat,
		Action:   move.Type(),
		Reward:   reward,
		HandSize: actor.Hand.Size(),
		Explored: c.agent.Stats().ExplorationActions > explored,
		Ok:       ok,
	}
}

// Flush saves the agent if a store is configured.
func (c *Computer) Flush(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	return c.agent.Save(ctx, c.store)
}

// resolve fills in the parameters for an action kind. A discard-group with no group to
// discard falls back to passing.
func resolve(gs *game.GameState, action game.ActionType) game.Move {
	switch action {
	case game.DrawMultipleAction:
		return game.DrawMultiple{Count: ChooseDrawCount(gs)}
	case game.StealAction:
		return game.Steal{Target: ChooseTarget(gs)}
	case game.DrawDiscardDrawAction:
		return game.DrawDiscardDraw{}
	case game.DrawDiscardDiscardAction:
		card, ok := ChooseDiscard(gs)
		if !ok {
			return game.Pass{}
		}
		return game.DrawDiscardDiscard{Card: card}
	case game.DiscardGroupAction:
		cards, ok := ChooseGroup(gs)
		if !ok {
			return game.Pass{}
		}
		return game.DiscardGroup{Cards: cards}
	default:
		return game.Pass{}
	}
}
