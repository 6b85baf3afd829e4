package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"notty/config"
	"notty/console"
	"notty/engine"
	"notty/experiments"
	"notty/game"
	"notty/learner"
	"notty/player"
	"notty/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	mode := flag.String("mode", "play", "play against the computer or train it with self-play (play|train)")
	games := flag.Int("games", 0, "number of self-play games, overrides the config")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.MustLoad(*configPath)
	if *games > 0 {
		cfg.Training.Games = *games
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *mode); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("notty stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, mode string) error {
	s, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	if closer, ok := s.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	options := []learner.Option{
		learner.WithAlpha(cfg.Learning.Alpha),
		learner.WithGamma(cfg.Learning.Gamma),
		learner.WithEpsilon(cfg.Learning.Epsilon),
		learner.WithEpsilonDecay(cfg.Learning.EpsilonDecay),
		learner.WithEpsilonMin(cfg.Learning.EpsilonMin),
	}
	if cfg.Game.Seed != 0 {
		options = append(options, learner.WithRand(rand.New(rand.NewSource(cfg.Game.Seed))))
	}
	agent := learner.NewAgent(options...)
	agent.Load(ctx, s)
	computer := player.NewComputer(agent,
		player.WithStore(s),
		player.WithAutosaveInterval(cfg.Learning.AutosaveInterval))

	switch mode {
	case "train":
		result, err := experiments.RunTraining(ctx, cfg, computer)
		if err != nil {
			return err
		}
		log.Info().Msgf("%d of %d games won, records in %s", result.Wins, result.Games, result.Dir)
		return nil
	case "play":
		return play(ctx, cfg, computer)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

func play(ctx context.Context, cfg *config.Config, computer *player.Computer) error {
	players := make([]*game.Player, len(cfg.Game.Players))
	for i, name := range cfg.Game.Players {
		players[i] = game.NewPlayer(name, i == cfg.Game.HumanSeat)
	}

	var options []game.Option
	if cfg.Game.Seed != 0 {
		options = append(options, game.WithSeed(cfg.Game.Seed))
	}
	gs, err := game.NewGameState(players, options...)
	if err != nil {
		return err
	}

	c := console.New(os.Stdin, os.Stdout)
	e := engine.LocalEngine(gs, computer, c, c,
		engine.WithComputerDelay(cfg.Game.ComputerDelay),
		engine.WithFrame(cfg.Game.Frame))

	winner, err := e.Run(ctx)
	if errors.Is(err, io.EOF) {
		log.Info().Msg("input closed, leaving the game")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Msgf("%s won", winner)
	return nil
}

func openStore(ctx context.Context, cfg config.Store) (store.Store, error) {
	switch cfg.Backend {
	case config.RedisBackend:
		r, err := store.NewRedis(ctx, cfg.Redis.Addr(), cfg.Redis.Key)
		if err != nil {
			return nil, err
		}
		log.Info().Msgf("Q-table stored in Redis at %s", cfg.Redis.Addr())
		return r, nil
	default:
		path := cfg.Path
		if path == "" {
			var err error
			if path, err = store.DefaultPath(); err != nil {
				return nil, err
			}
		}
		log.Info().Msgf("Q-table stored at %s", path)
		return store.NewFile(path), nil
	}
}
