package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/nathoo/siegecore/engine/rules"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 0 || cfg.ContentDir != "" || cfg.BroadcastAddr != "" {
		t.Errorf("unexpected non-zero defaults: %+v", cfg)
	}
	if cfg.BroadcastInterval != time.Second {
		t.Errorf("BroadcastInterval = %s, want 1s", cfg.BroadcastInterval)
	}
	if cfg.Policy() != rules.DefaultPolicy() {
		t.Errorf("Policy = %+v, want %+v", cfg.Policy(), rules.DefaultPolicy())
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SIEGE_SEED", "12345")
	t.Setenv("SIEGE_CONTENT_DIR", "content")
	t.Setenv("SIEGE_BROADCAST_ADDR", ":8080")
	t.Setenv("SIEGE_BROADCAST_INTERVAL", "2500ms")
	t.Setenv("SIEGE_MIN_PLAYERS", "1")
	t.Setenv("SIEGE_REQUIRE_QUEUE", "false")
	t.Setenv("SIEGE_GUARD_SPELL_CARDS", "true")
	t.Setenv("SIEGE_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 12345 || cfg.ContentDir != "content" || cfg.BroadcastAddr != ":8080" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.BroadcastInterval != 2500*time.Millisecond {
		t.Errorf("BroadcastInterval = %s", cfg.BroadcastInterval)
	}
	want := rules.Policy{MinPlayers: 1, RequireQueue: false, GuardSpellCards: true}
	if cfg.Policy() != want {
		t.Errorf("Policy = %+v, want %+v", cfg.Policy(), want)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"SIEGE_SEED", "lots", "parse env:"},
		{"SIEGE_MIN_PLAYERS", "0", "SIEGE_MIN_PLAYERS"},
		{"SIEGE_BROADCAST_INTERVAL", "0s", "SIEGE_BROADCAST_INTERVAL"},
		{"SIEGE_LOG_LEVEL", "loud", "SIEGE_LOG_LEVEL"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load with %s=%s: err = %v, want %q", tt.key, tt.value, err, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}
