package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"notty/meta"

	"github.com/ilyakaznacheev/cleanenv"
)

const DefaultPath = "config.yml"

type Config struct {
	LogLevel string   `yaml:"log-level" env:"NOTTY_LOG_LEVEL" env-default:"info"`
	Game     Game     `yaml:"game"`
	Learning Learning `yaml:"learning"`
	Store    Store    `yaml:"store"`
	Training Training `yaml:"training"`
}

type Game struct {
	Players       []string      `yaml:"players" env:"NOTTY_PLAYERS" env-default:"You,Computer 1,Computer 2"`
	HumanSeat     int           `yaml:"human-seat" env:"NOTTY_HUMAN_SEAT" env-default:"0"`
	ComputerDelay time.Duration `yaml:"computer-delay" env:"NOTTY_COMPUTER_DELAY" env-default:"1s"`
	Frame         time.Duration `yaml:"frame" env:"NOTTY_FRAME" env-default:"50ms"`
	Seed          uint64        `yaml:"seed" env:"NOTTY_SEED" env-default:"0"`
}

type Learning struct {
	Alpha            float64 `yaml:"alpha" env:"NOTTY_ALPHA" env-default:"0.1"`
	Gamma            float64 `yaml:"gamma" env:"NOTTY_GAMMA" env-default:"0.9"`
	Epsilon          float64 `yaml:"epsilon" env:"NOTTY_EPSILON" env-default:"0.2"`
	EpsilonDecay     float64 `yaml:"epsilon-decay" env:"NOTTY_EPSILON_DECAY" env-default:"0.9995"`
	EpsilonMin       float64 `yaml:"epsilon-min" env:"NOTTY_EPSILON_MIN" env-default:"0.05"`
	AutosaveInterval int     `yaml:"autosave-interval" env:"NOTTY_AUTOSAVE_INTERVAL" env-default:"100"`
}

type Store struct {
	Backend string `yaml:"backend" env:"NOTTY_STORE" env-default:"file"`
	// Path defaults to the per-user data directory when empty.
	Path  string `yaml:"path" env:"NOTTY_STORE_PATH"`
	Redis Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"NOTTY_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"NOTTY_REDIS_PORT" env-default:"6379"`
	Key  string `yaml:"key" env:"NOTTY_REDIS_KEY" env-default:"notty:qtable"`
}

type Training struct {
	Games     int    `yaml:"games" env:"NOTTY_TRAINING_GAMES" env-default:"100"`
	MaxTurns  int    `yaml:"max-turns" env:"NOTTY_TRAINING_MAX_TURNS" env-default:"2000"`
	Players   int    `yaml:"players" env:"NOTTY_TRAINING_PLAYERS" env-default:"3"`
	OutputDir string `yaml:"output-dir" env:"NOTTY_TRAINING_OUTPUT" env-default:"experiments/training"`
}

const (
	FileBackend  = "file"
	RedisBackend = "redis"
)

var ErrInvalid = errors.New("invalid configuration")

// Load reads path when it exists and falls back to environment variables and defaults otherwise.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// MustLoad is Load for process startup.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

func (c *Config) Validate() error {
	if n := len(c.Game.Players); n < meta.MIN_PLAYERS || n > meta.MAX_PLAYERS {
		return fmt.Errorf("%w: need %d-%d players, got %d", ErrInvalid, meta.MIN_PLAYERS, meta.MAX_PLAYERS, n)
	}
	if c.Game.HumanSeat < -1 || c.Game.HumanSeat >= len(c.Game.Players) {
		return fmt.Errorf("%w: human seat %d out of range", ErrInvalid, c.Game.HumanSeat)
	}
	if c.Store.Backend != FileBackend && c.Store.Backend != RedisBackend {
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalid, c.Store.Backend)
	}
	if n := c.Training.Players; n < meta.MIN_PLAYERS || n > meta.MAX_PLAYERS {
		return fmt.Errorf("%w: training needs %d-%d players, got %d", ErrInvalid, meta.MIN_PLAYERS, meta.MAX_PLAYERS, n)
	}
	return nil
}

func (r *Redis) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}
