// Package cli provides the plain line-mode game-master console.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/siegecore/engine"
	"github.com/nathoo/siegecore/engine/script"
	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/types"
)

// CLI handles terminal interaction with the game master.
type CLI struct {
	Engine    *engine.Engine
	Defs      *state.Defs
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine, defs *state.Defs) *CLI {
	home, _ := os.UserHomeDir()
	saveDir := filepath.Join(home, ".siegecore", "sessions")
	return &CLI{
		Engine:  eng,
		Defs:    defs,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: saveDir,
	}
}

// Run reads commands until input ends or /quit.
func (c *CLI) Run() {
	c.printLine(fmt.Sprintf("%s: type 'help' for game commands, /help for console commands.", c.Defs.Title))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the console should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}
	if _, err := script.Save(c.Engine, c.SaveDir, name); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Session saved to %s (turn %d).", name, c.Engine.Snapshot().Turn))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}
	rejected, err := script.Load(c.Engine, c.SaveDir, name)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	snap := c.Engine.Snapshot()
	c.printSystem(fmt.Sprintf("Session loaded from %s (turn %d, %s phase).", name, snap.Turn, snap.Phase))
	if rejected > 0 {
		c.printSystem(fmt.Sprintf("%d replayed commands were rejected.", rejected))
	}
}

func (c *CLI) cmdHelp() {
	help := []string{
		"Console:",
		"  /save [name]  Save the command log (default: quicksave)",
		"  /load [name]  Replay a saved command log (default: quicksave)",
		"  /quit         Exit",
		"  /help         Show this help",
		"  /state        Debug: dump session counters",
		"  /trace        Toggle trace output",
		"  again (g)     Repeat the last game command",
		"",
		"Game commands:",
	}
	help = append(help, engine.HelpText()...)
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.State
	c.printSystem(fmt.Sprintf("Turn: %d, phase: %s", s.Turn, s.Phase))
	c.printSystem(fmt.Sprintf("Seed: %d, RNG position: %d", s.RNGSeed, s.RNGPosition))
	c.printSystem(fmt.Sprintf("Players: %d, actions: %d, queued: %d, spawned: %d",
		len(s.Players), len(s.Actions), len(s.Queue), s.SpawnCount))
	if len(s.ForcedMonsters) > 0 {
		c.printSystem(fmt.Sprintf("Primed spawns: %d", len(s.ForcedMonsters)))
	}
	if s.Override != nil {
		c.printSystem(fmt.Sprintf("Override: %s %q", s.Override.EventName, s.Override.EffectDescription))
	}
	c.printSystem(fmt.Sprintf("Commands logged: %d", len(s.CommandLog)))
}

func (c *CLI) printTrace(result types.Result) {
	s := c.Engine.State
	c.printSystem(fmt.Sprintf("[trace] turn %d %s, rng %d", s.Turn, s.Phase, s.RNGPosition))
	if result.Err != nil {
		c.printSystem(fmt.Sprintf("[trace] code %s", engine.CodeOf(result.Err)))
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
