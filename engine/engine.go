// Package engine provides the phase controller and the Step() entry point
// that wires parsing, resolution, combat, and events into single commands.
package engine

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/nathoo/siegecore/engine/parser"
	"github.com/nathoo/siegecore/engine/rules"
	"github.com/nathoo/siegecore/engine/snapshot"
	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/types"
)

// Engine owns one game session. Every command, preview and snapshot runs
// under the same lock, so readers only see states between commands.
type Engine struct {
	mu sync.Mutex

	Defs   *state.Defs
	State  *types.State
	RNG    *RNG
	Policy rules.Policy
	Logger *slog.Logger
}

// New creates a session in Setup from definitions and a seed.
func New(defs *state.Defs, seed int64) *Engine {
	s := state.NewState(defs)
	s.RNGSeed = seed
	return &Engine{
		Defs:   defs,
		State:  s,
		RNG:    NewRNG(seed),
		Policy: rules.DefaultPolicy(),
		Logger: slog.Default(),
	}
}

// RestoreRNG re-creates the RNG from seed and advances to the given position.
func (e *Engine) RestoreRNG(seed int64, position int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.RNG = RestoreRNG(seed, position)
	e.State.RNGSeed = seed
	e.State.RNGPosition = position
}

// Reset discards the session and starts a new one in Setup with seed.
// Definitions, policy and logger are kept.
func (e *Engine) Reset(seed int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.State = state.NewState(e.Defs)
	e.State.RNGSeed = seed
	e.RNG = NewRNG(seed)
	e.Logger.Info("session reset", "seed", seed)
}

// CommandLog returns the session seed and a copy of every command run so far.
func (e *Engine) CommandLog() (int64, []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.State.RNGSeed, append([]string(nil), e.State.CommandLog...)
}

// Snapshot returns a deep copy of the observable state.
func (e *Engine) Snapshot() snapshot.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot.Build(e.State, e.Defs.Title)
}

// Step processes one game-master command line and returns its output.
// Failures are reported as output lines, never as a Go error.
func (e *Engine) Step(input string) types.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	var result types.Result
	cmd := parser.Parse(input)
	if cmd.Verb == "" {
		result.Output = append(result.Output, "Enter a command. Type 'help' for the list.")
		return result
	}
	e.State.CommandLog = append(e.State.CommandLog, strings.TrimSpace(input))

	mark := len(e.State.SupervisorLog)
	out, err := e.dispatch(cmd)
	result.Output = append(result.Output, out...)
	for _, entry := range e.State.SupervisorLog[mark:] {
		result.Output = append(result.Output, entry.Message)
	}
	e.State.RNGPosition = e.RNG.Position()
	if err != nil {
		result.Err = err
		result.Output = append(result.Output, "Rejected: "+err.Error())
		e.Logger.Debug("command rejected", "command", cmd.Verb, "code", CodeOf(err), "error", err)
	}
	return result
}

func (e *Engine) dispatch(cmd parser.Command) ([]string, error) {
	switch cmd.Verb {
	case "roster":
		return e.stepRoster(cmd)
	case "advance":
		if err := e.advance(); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("Turn %d, %s phase.", e.State.Turn, e.State.Phase)}, nil
	case "attack":
		return e.stepAttack(cmd)
	case "cancel":
		a, err := e.cancelLastAction()
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("Cancelled %s's %s.", a.PlayerName, describeAction(a))}, nil
	case "force":
		return e.stepForce(cmd)
	case "spawn":
		return e.stepSpawn(cmd)
	case "prime":
		return e.stepPrime(cmd)
	case "set":
		return e.stepSet(cmd)
	case "preview":
		return renderPreview(e.State, e.preview()), nil
	case "players":
		return renderPlayers(e.State), nil
	case "field":
		return renderField(e.State), nil
	case "queue":
		return renderQueue(e.State), nil
	case "event":
		return renderEvent(e.State), nil
	case "log":
		return renderLog(e.State, cmd.Args), nil
	case "help":
		return HelpText(), nil
	default:
		return []string{fmt.Sprintf("Unknown command %q. Type 'help' for the list.", cmd.Verb)}, nil
	}
}

// HelpText returns the game command reference.
func HelpText() []string {
	return append([]string(nil), helpText...)
}

var helpText = []string{
	"roster <n>                         create players 1..n (setup only)",
	"advance | next | n                 move to the next phase",
	"attack <player> <slot> <card> [el] submit an action (cards: wand ice bomb poison)",
	"cancel | undo                      remove the last submitted action",
	"force <event> [| <effect>]         override the next event draw",
	"spawn [template]                   queue a random or template monster",
	"prime <template>                   make the next random spawn a template",
	"set <player> <field> <value>       edit name, fire, water, wood, gold, mana, or a card count",
	"preview                            forecast the pending actions",
	"players | field | queue | event    show the session",
	"log [n]                            show the last n log lines",
}
