package config

import (
	"errors"
	"testing"

	utils "github.com/minaorangina/palace/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Players:  4,
		MaxTurns: 5000,
		LogLevel: "info",
		Output:   OutputText,
		Games:    100,
		Workers:  4,
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		utils.AssertDeepEqual(t, cfg, validConfig())
	})

	t.Run("reads the environment", func(t *testing.T) {
		t.Setenv("PALACE_PLAYERS", "3")
		t.Setenv("PALACE_SEED", "99")
		t.Setenv("PALACE_OUTPUT", "json")
		t.Setenv("PALACE_WORKERS", "8")

		cfg, err := Load()
		require.NoError(t, err)

		utils.AssertEqual(t, cfg.Players, 3)
		utils.AssertEqual(t, cfg.Seed, int64(99))
		utils.AssertEqual(t, cfg.Output, OutputJSON)
		utils.AssertEqual(t, cfg.Workers, 8)
		utils.AssertEqual(t, cfg.MaxTurns, 5000)
	})

	t.Run("rejects values it cannot parse", func(t *testing.T) {
		t.Setenv("PALACE_PLAYERS", "lots")

		_, err := Load()
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	})

	t.Run("leaves range checks to Validate", func(t *testing.T) {
		t.Setenv("PALACE_PLAYERS", "6")

		cfg, err := Load()
		require.NoError(t, err)
		utils.AssertEqual(t, cfg.Players, 6)
		assert.True(t, errors.Is(cfg.Validate(), ErrInvalidConfig))
	})
}

func TestValidate(t *testing.T) {
	tt := []struct {
		name   string
		modify func(c *Config)
	}{
		{"one player", func(c *Config) { c.Players = 1 }},
		{"six players", func(c *Config) { c.Players = 6 }},
		{"no turns", func(c *Config) { c.MaxTurns = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
		{"unknown output", func(c *Config) { c.Output = "xml" }},
		{"no games", func(c *Config) { c.Games = 0 }},
		{"no workers", func(c *Config) { c.Workers = -1 }},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.modify(&cfg)

			assert.True(t, errors.Is(cfg.Validate(), ErrInvalidConfig))
		})
	}

	t.Run("valid config", func(t *testing.T) {
		utils.AssertNoError(t, validConfig().Validate())
	})
}
