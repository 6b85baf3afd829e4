package learner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"notty/game"
	"notty/store"

	"github.com/rs/zerolog/log"
)

type record struct {
	QTable             map[State]map[game.ActionType]float64 `json:"q_table"`
	Epsilon            *float64                              `json:"epsilon,omitempty"`
	TotalActions       int                                   `json:"total_actions"`
	ExplorationActions int                                   `json:"exploration_actions"`
}

// Save writes the table and learning statistics to s.
func (a *Agent) Save(ctx context.Context, s store.Store) error {
	epsilon := a.epsilon
	data, err := json.Marshal(record{
		QTable:             a.q,
		Epsilon:            &epsilon,
		TotalActions:       a.totalActions,
		ExplorationActions: a.explorationActions,
	})
	if err != nil {
		return fmt.Errorf("failed to encode Q-table: %w", err)
	}
	if err := s.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save Q-table: %w", err)
	}
	log.Info().Msgf("Q-table saved: %d states, %d actions", len(a.q), a.totalActions)
	return nil
}

// Load replaces the agent's table with the one in s. Missing or unreadable data leaves
// the agent with an empty table and reports false.
func (a *Agent) Load(ctx context.Context, s store.Store) bool {
	data, err := s.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		log.Info().Msg("no Q-table found, starting fresh")
		a.reset()
		return false
	}
	if err != nil {
		log.Error().Err(err).Msg("error loading Q-table")
		a.reset()
		return false
	}

	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		log.Error().Err(err).Msg("error decoding Q-table")
		a.reset()
		return false
	}

	a.reset()
	for state, actions := range r.QTable {
		for action, value := range actions {
			a.q.set(state, action, value)
		}
	}
	if r.Epsilon != nil {
		a.epsilon = *r.Epsilon
	}
	a.totalActions = r.TotalActions
	a.explorationActions = r.ExplorationActions

	log.Info().Msgf("Q-table loaded: %d states learned, %d total actions, exploration rate %.3f",
		len(a.q), a.totalActions, a.epsilon)
	return true
}
