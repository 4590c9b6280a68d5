package cli

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nathoo/siegecore/engine"
	"github.com/nathoo/siegecore/engine/script"
	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/types"
)

func newTestEngine(defs *state.Defs) *engine.Engine {
	eng := engine.New(defs, 7)
	eng.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return eng
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	defs := state.DefaultDefs()
	var out bytes.Buffer
	c := &CLI{
		Engine:  newTestEngine(defs),
		Defs:    defs,
		In:      strings.NewReader(input),
		Out:     &out,
		SaveDir: t.TempDir(),
	}
	return c, &out
}

func TestCLI_Banner(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Monster Siege: type 'help'") {
		t.Errorf("expected banner, got %q", out.String())
	}
}

func TestCLI_BasicCommands(t *testing.T) {
	c, out := newTestCLI(t, "roster 2\nspawn moss troll\nfield\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "2. Player 2") {
		t.Error("expected roster listing")
	}
	if !strings.Contains(output, "[A] Moss Troll") {
		t.Error("expected the troll on slot A")
	}
}

func TestCLI_RejectedCommandIsPrinted(t *testing.T) {
	c, out := newTestCLI(t, "advance\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Rejected: cannot leave the setup phase") {
		t.Errorf("expected rejection, got %q", out.String())
	}
	if c.Engine.State.Phase != types.PhaseSetup {
		t.Errorf("phase = %s, want setup", c.Engine.State.Phase)
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"/save", "/load", "/quit", "attack <player> <slot> <card>"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in help output", want)
		}
	}
}

func TestCLI_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	defs := state.DefaultDefs()

	var out bytes.Buffer
	c := &CLI{
		Engine:  newTestEngine(defs),
		Defs:    defs,
		In:      strings.NewReader("roster 2\nspawn\nspawn moss troll\nadvance\n/save test\n/quit\n"),
		Out:     &out,
		SaveDir: dir,
	}
	c.Run()
	if !strings.Contains(out.String(), "Session saved to test (turn 1).") {
		t.Fatalf("expected save confirmation, got %q", out.String())
	}
	want := c.Engine.Snapshot()

	eng2 := engine.New(defs, 99)
	eng2.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	var out2 bytes.Buffer
	c2 := &CLI{
		Engine:  eng2,
		Defs:    defs,
		In:      strings.NewReader("/load test\n/quit\n"),
		Out:     &out2,
		SaveDir: dir,
	}
	c2.Run()

	if !strings.Contains(out2.String(), "Session loaded from test (turn 1, event phase).") {
		t.Errorf("expected load confirmation, got %q", out2.String())
	}
	if got := eng2.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("loaded session differs:\n got %+v\nwant %+v", got, want)
	}
	if eng2.State.RNGSeed != 7 {
		t.Errorf("seed = %d, want 7", eng2.State.RNGSeed)
	}
}

func TestCLI_LoadReportsRejections(t *testing.T) {
	c, out := newTestCLI(t, "/load broken\n/quit\n")
	data := script.Encode(7, []string{"roster 2", "advance"})
	if err := os.WriteFile(filepath.Join(c.SaveDir, "broken"+script.Ext), data, 0o644); err != nil {
		t.Fatal(err)
	}
	c.Run()

	if !strings.Contains(out.String(), "1 replayed commands were rejected.") {
		t.Errorf("expected rejection count, got %q", out.String())
	}
}

func TestCLI_LoadNonexistent(t *testing.T) {
	c, out := newTestCLI(t, "/load nonexistent\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Load failed") {
		t.Error("expected load failure message")
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/bogus\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command: /bogus") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nadvance\n/trace\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"Trace output enabled", "[trace] turn 1 setup", "[trace] code POLICY", "Trace output disabled"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI(t, "roster 3\n/state\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Turn: 1, phase: setup") {
		t.Error("expected turn and phase in state output")
	}
	if !strings.Contains(output, "Seed: 7") {
		t.Error("expected seed in state output")
	}
	if !strings.Contains(output, "Players: 3") {
		t.Error("expected player count in state output")
	}
}

func TestCLI_SkipsBlankAndCommentLines(t *testing.T) {
	c, _ := newTestCLI(t, "\n# seed 7\n\nroster 2\n/quit\n")
	c.Run()

	if got := c.Engine.State.CommandLog; !reflect.DeepEqual(got, []string{"roster 2"}) {
		t.Errorf("command log = %q, want only the roster command", got)
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, "players\n/quit\n")
	c.EchoInput = true
	c.Run()

	if !strings.Contains(out.String(), "> players\n") {
		t.Errorf("expected echoed command, got %q", out.String())
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	for _, again := range []string{"again", "g"} {
		c, _ := newTestCLI(t, "roster 2\nspawn moss troll\n"+again+"\n/quit\n")
		c.Run()

		if got := len(c.Engine.State.CommandLog); got != 3 {
			t.Errorf("%s: command log has %d entries, want 3", again, got)
		}
		if c.Engine.State.SpawnCount != 2 {
			t.Errorf("%s: spawn count = %d, want 2", again, c.Engine.State.SpawnCount)
		}
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing to repeat") {
		t.Error("expected 'Nothing to repeat' when no prior command")
	}
}
