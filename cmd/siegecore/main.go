// Siegecore is the game-master console for a cooperative monster-siege
// table game, with an optional websocket feed for the shared screen.
// Usage: siegecore [--version] [--plain] [--script <file>] [--trace] [--seed <n>] [--content <dir>]
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/nathoo/siegecore/broadcast"
	"github.com/nathoo/siegecore/cli"
	"github.com/nathoo/siegecore/config"
	"github.com/nathoo/siegecore/engine"
	"github.com/nathoo/siegecore/engine/script"
	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/loader"
	"github.com/nathoo/siegecore/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: siegecore [--version] [--plain] [--script <file>] [--trace] [--seed <n>] [--content <dir>]"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is main without the exit, so deferred cleanup always runs.
func run(args []string) int {
	plain := false
	trace := false
	var scriptFile, contentDir string
	var seed int64
	seedSet := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("siegecore %s (commit %s, built %s)\n", version, commit, date)
			return 0
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script", "--content", "--seed":
			if i+1 >= len(args) {
				return failf("%s requires a value\n", args[i])
			}
			i++
			switch args[i-1] {
			case "--script":
				scriptFile = args[i]
			case "--content":
				contentDir = args[i]
			case "--seed":
				v, err := strconv.ParseInt(args[i], 10, 64)
				if err != nil {
					return failf("--seed: %v\n", err)
				}
				seed, seedSet = v, true
			}
		default:
			return failf("unknown argument %q\n%s\n", args[i], usage)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return failf("Error reading configuration: %v\n", err)
	}
	if contentDir == "" {
		contentDir = cfg.ContentDir
	}

	var scriptData []byte
	if scriptFile != "" {
		scriptData, err = os.ReadFile(scriptFile)
		if err != nil {
			return failf("Error opening script: %v\n", err)
		}
		// A saved session carries its seed.
		if s, _, err := script.Decode(scriptData); err == nil && !seedSet {
			seed, seedSet = s, true
		}
	}
	if !seedSet {
		seed = cfg.Seed
	}
	if seed == 0 {
		if seed, err = engine.NewSeed(); err != nil {
			return failf("Error: %v\n", err)
		}
	}

	fullScreen := scriptFile == "" && !plain && isTerminal()
	logger, closeLog, err := newLogger(cfg, fullScreen)
	if err != nil {
		return failf("Error opening log: %v\n", err)
	}
	defer closeLog()

	defs := state.DefaultDefs()
	if contentDir != "" {
		if defs, err = loader.Load(contentDir); err != nil {
			return failf("Error loading content: %v\n", err)
		}
	}

	eng := engine.New(defs, seed)
	eng.Policy = cfg.Policy()
	eng.Logger = logger
	logger.Info("session started", "title", defs.Title, "seed", seed, "content", contentDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if cfg.BroadcastAddr != "" {
		done := serveBroadcast(ctx, cfg, eng, logger)
		defer func() {
			stop()
			<-done
		}()
	}

	switch {
	case scriptFile != "":
		c := cli.New(eng, defs)
		c.In = bytes.NewReader(scriptData)
		c.EchoInput = true
		c.Trace = trace
		c.Run()
	case !fullScreen:
		c := cli.New(eng, defs)
		c.Trace = trace
		c.Run()
	default:
		if err := tui.Run(eng); err != nil {
			logger.Error("panel exited", "error", err)
			return failf("Error: %v\n", err)
		}
	}
	return 0
}

// newLogger builds the diagnostic logger. Without a log file, diagnostics
// go to stderr, or nowhere while the full-screen panel owns the terminal.
func newLogger(cfg config.Config, fullScreen bool) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return slog.New(slog.NewTextHandler(f, opts)), func() { f.Close() }, nil
	case fullScreen:
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}, nil
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}, nil
	}
}

// serveBroadcast runs the viewer feed until ctx is cancelled. The returned
// channel closes once the server has shut down.
func serveBroadcast(ctx context.Context, cfg config.Config, eng *engine.Engine, logger *slog.Logger) <-chan struct{} {
	hub := broadcast.NewHub(logger)
	srv := &http.Server{
		Addr:              cfg.BroadcastAddr,
		Handler:           hub.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		logger.Info("broadcast listening", "addr", cfg.BroadcastAddr, "interval", cfg.BroadcastInterval)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("broadcast server failed", "error", err)
		}
	}()
	go func() {
		defer close(done)
		hub.Run(ctx, eng, cfg.BroadcastInterval)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("broadcast shutdown", "error", err)
		}
	}()
	return done
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// failf reports an error on stderr and returns the exit code for it.
func failf(format string, args ...any) int {
	fmt.Fprintf(os.Stderr, format, args...)
	return 1
}
