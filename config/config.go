package config

import (
	"errors"
	"fmt"

	"github.com/joeshaw/envdecode"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	OutputText = "text"
	OutputJSON = "json"
	OutputLog  = "log"
	OutputNone = "none"
)

var validOutputs = map[string]bool{
	OutputText: true,
	OutputJSON: true,
	OutputLog:  true,
	OutputNone: true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Config is read from PALACE_* environment variables.
// A Seed of 0 seeds from the clock.
type Config struct {
	Players  int    `env:"PALACE_PLAYERS,default=4"`
	Seed     int64  `env:"PALACE_SEED,default=0"`
	MaxTurns int    `env:"PALACE_MAX_TURNS,default=5000"`
	LogLevel string `env:"PALACE_LOG_LEVEL,default=info"`
	Output   string `env:"PALACE_OUTPUT,default=text"`
	Games    int    `env:"PALACE_GAMES,default=100"`
	Workers  int    `env:"PALACE_WORKERS,default=4"`
}

// Load decodes the environment. The result is not validated, so that
// command line flags can still override it: call Validate once they have.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Players < 2 || c.Players > 5 {
		return fmt.Errorf("%w: players must be between 2 and 5, got %d", ErrInvalidConfig, c.Players)
	}
	if c.MaxTurns < 1 {
		return fmt.Errorf("%w: max turns must be positive, got %d", ErrInvalidConfig, c.MaxTurns)
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if !validOutputs[c.Output] {
		return fmt.Errorf("%w: unknown output %q", ErrInvalidConfig, c.Output)
	}
	if c.Games < 1 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, c.Games)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}

	return nil
}
