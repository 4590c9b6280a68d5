// Package config reads the siege session settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/nathoo/siegecore/engine/rules"
)

// Config holds the process settings. Command-line flags override it.
type Config struct {
	Seed              int64         `env:"SIEGE_SEED"`        // 0 draws a fresh seed
	ContentDir        string        `env:"SIEGE_CONTENT_DIR"` // empty uses the built-in content
	BroadcastAddr     string        `env:"SIEGE_BROADCAST_ADDR"`
	BroadcastInterval time.Duration `env:"SIEGE_BROADCAST_INTERVAL" envDefault:"1s"`
	MinPlayers        int           `env:"SIEGE_MIN_PLAYERS" envDefault:"2"`
	RequireQueue      bool          `env:"SIEGE_REQUIRE_QUEUE" envDefault:"true"`
	GuardSpellCards   bool          `env:"SIEGE_GUARD_SPELL_CARDS" envDefault:"false"`
	LogLevel          string        `env:"SIEGE_LOG_LEVEL" envDefault:"info"`
	LogFile           string        `env:"SIEGE_LOG_FILE"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MinPlayers < 1 {
		return Config{}, fmt.Errorf("SIEGE_MIN_PLAYERS must be at least 1, got %d", cfg.MinPlayers)
	}
	if cfg.BroadcastInterval <= 0 {
		return Config{}, fmt.Errorf("SIEGE_BROADCAST_INTERVAL must be positive, got %s", cfg.BroadcastInterval)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Policy returns the advance and submission gates.
func (c Config) Policy() rules.Policy {
	return rules.Policy{
		MinPlayers:      c.MinPlayers,
		RequireQueue:    c.RequireQueue,
		GuardSpellCards: c.GuardSpellCards,
	}
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("SIEGE_LOG_LEVEL: %w", err)
	}
	return level, nil
}
