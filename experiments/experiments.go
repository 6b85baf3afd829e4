package experiments

import (
	"context"
	"fmt"

	"notty/config"
	"notty/experiments/metrics"
	"notty/game"
	"notty/meta"
	"notty/player"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Result summarizes a training run.
type Result struct {
	RunID string
	Dir   string
	Games int
	Wins  int // Games that ended with an empty hand before the turn limit
}

// RunTraining plays computer-only games with one shared agent so it learns from every seat,
// then writes per-game and per-move records under cfg.Training.OutputDir/<run id>.
func RunTraining(ctx context.Context, cfg *config.Config, computer *player.Computer) (Result, error) {
	run := uuid.NewString()
	training := cfg.Training
	result := Result{RunID: run}

	writer, err := metrics.NewWriter(training.OutputDir, run)
	if err != nil {
		return result, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	result.Dir = writer.Dir()

	err = writer.WriteRunConfig(metrics.RunConfig{
		ID:           run,
		Games:        training.Games,
		Players:      training.Players,
		MaxTurns:     training.MaxTurns,
		Alpha:        cfg.Learning.Alpha,
		Gamma:        cfg.Learning.Gamma,
		Epsilon:      cfg.Learning.Epsilon,
		EpsilonDecay: cfg.Learning.EpsilonDecay,
		EpsilonMin:   cfg.Learning.EpsilonMin,
	})
	if err != nil {
		return result, fmt.Errorf("failed to store run config: %w", err)
	}

	log.Info().Msgf("starting training run %s: %d games of %d players...", run, training.Games, training.Players)

	collector := metrics.NewCollector()
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	for i := 0; i < training.Games && ctx.Err() == nil; i++ {
		options := []game.Option{}
		if cfg.Game.Seed != 0 {
			options = append(options, game.WithSeed(cfg.Game.Seed+uint64(i)))
		}

		winner, err := runGame(ctx, computer, collector, training.Players, training.MaxTurns, options...)
		if err != nil {
			return result, err
		}
		gameMetric, moveMetrics := collector.Complete(winner)

		result.Games++
		if winner != "" {
			result.Wins++
		}
		gameRecords = append(gameRecords, metrics.GameRecord{ID: result.Games, GameMetric: gameMetric})
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: result.Games, MoveMetric: mm})
		}

		log.Info().Msgf("completed game %d of %d after %d moves, winner: %q", i+1, training.Games, gameMetric.TotalMoves, winner)
	}

	stats := computer.Agent().Stats()
	log.Info().Msgf("completed training run %s: %d states learned, epsilon %.3f", run, stats.StatesLearned, stats.Epsilon)

	if err := computer.Flush(context.WithoutCancel(ctx)); err != nil {
		return result, fmt.Errorf("failed to save agent: %w", err)
	}

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return result, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return result, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return result, ctx.Err()
}

// runGame plays one game to a winner or the turn limit and returns the winner's name.
func runGame(ctx context.Context, computer *player.Computer, collector metrics.Collector, players, maxTurns int, options ...game.Option) (string, error) {
	seats := make([]*game.Player, players)
	for i := range seats {
		seats[i] = game.NewPlayer(fmt.Sprintf("Computer %d", i+1), false)
	}
	gs, err := game.NewGameState(seats, options...)
	if err != nil {
		return "", err
	}
	if err := gs.Deal(meta.INITIAL_HAND_SIZE); err != nil {
		return "", err
	}

	computer.Agent().ResetEpisode()
	collector.Start(players)
	for step := 0; step < maxTurns && gs.Winner() == nil && ctx.Err() == nil; step++ {
		turn := computer.Act(ctx, gs)
		collector.AddMove(metrics.MoveMetric{
			Player:   turn.Player,
			Action:   turn.Action.String(),
			Reward:   turn.Reward,
			HandSize: turn.HandSize,
			Explored: turn.Explored,
		})
	}

	if winner := gs.Winner(); winner != nil {
		return winner.Name, nil
	}
	return "", nil
}
