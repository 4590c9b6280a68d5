package engine

import (
	"strings"
	"testing"

	"github.com/nathoo/siegecore/types"
)

func outputHas(r types.Result, want string) bool {
	for _, line := range r.Output {
		if strings.Contains(line, want) {
			return true
		}
	}
	return false
}

func TestStep_Commands(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "Type 'help'"},
		{"dance", `Unknown command "dance"`},
		{"help", "attack <player> <slot> <card>"},
		{"players", "No players yet"},
		{"roster", "Usage: roster <n>"},
		{"roster 3", "3. Player 3"},
		{"queue", "The queue is empty."},
		{"field", "[A] empty"},
		{"event", "Event: Calm Skies"},
		{"attack 1", "Usage: attack"},
		{"preview", "No pending actions."},
	}
	e := newEngine(t, 0)
	for _, tt := range tests {
		r := e.Step(tt.input)
		if !outputHas(r, tt.want) {
			t.Errorf("Step(%q) = %q, want a line containing %q", tt.input, r.Output, tt.want)
		}
	}
}

func TestStep_RejectionIsOutput(t *testing.T) {
	e := newEngine(t, 2)
	r := e.Step("advance")
	if r.Err == nil || CodeOf(r.Err) != CodePolicy {
		t.Fatalf("advance with empty queue: err = %v", r.Err)
	}
	if !outputHas(r, "Rejected: cannot leave the setup phase: the monster queue is empty") {
		t.Errorf("output = %q", r.Output)
	}
}

func TestStep_PlaysATurn(t *testing.T) {
	e := newEngine(t, 0)
	script := []string{
		"roster 2",
		"set 1 name Red Team",
		"set 1 fire 3",
		"set p2 water 4",
		"spawn moss troll",
		"next",
		"n",
		"advance",
		"attack red a fire",
		"attack 2 A wand water",
	}
	for _, line := range script {
		if r := e.Step(line); r.Err != nil {
			t.Fatalf("Step(%q): %v (%q)", line, r.Err, r.Output)
		}
	}
	if got := e.State.Players[0].Name; got != "Red Team" {
		t.Errorf("player 1 name = %q", got)
	}

	r := e.Step("preview")
	// fire beats wood: 6; water is weak to wood: 0.
	if !outputHas(r, "[A] Moss Troll HP 12 -> 6") {
		t.Errorf("preview = %q", r.Output)
	}

	r = e.Step("advance")
	if r.Err != nil {
		t.Fatalf("advance: %v", r.Err)
	}
	if !outputHas(r, "Red Team hits [A] Moss Troll with fire for 6 damage (HP 6)") {
		t.Errorf("resolution output = %q", r.Output)
	}
	if len(e.State.CommandLog) != len(script)+2 {
		t.Errorf("command log has %d entries, want %d", len(e.State.CommandLog), len(script)+2)
	}
}

func TestStep_CancelAndForce(t *testing.T) {
	e := newEngine(t, 2)
	toAction(t, e, troll(9))

	if r := e.Step("cancel"); CodeOf(r.Err) != CodeNothingToCancel {
		t.Errorf("cancel with no actions: err = %v", r.Err)
	}
	e.Step("attack 1 a ice")
	r := e.Step("undo")
	if r.Err != nil || !outputHas(r, "Cancelled Player 1's ice at [A].") {
		t.Errorf("undo = %q, %v", r.Output, r.Err)
	}

	e.Step("force gold rush")
	if e.State.Override == nil || e.State.Override.EventName != "Gold Rush" {
		t.Errorf("override = %+v", e.State.Override)
	}
	e.Step("force elemental chaos | 2")
	want := "Elemental energy is in turmoil; fire damage is nullified."
	if e.State.Override.EffectDescription != want {
		t.Errorf("effect = %q, want %q", e.State.Override.EffectDescription, want)
	}
	r = e.Step("force nowhere")
	if !outputHas(r, `no event named "nowhere"`) || e.State.Override.EventName != "nowhere" {
		t.Errorf("force unknown = %q, override %+v", r.Output, e.State.Override)
	}
	e.Step("force off")
	if e.State.Override != nil {
		t.Errorf("override = %+v after force off", e.State.Override)
	}
}

func TestStep_UnknownReferences(t *testing.T) {
	e := newEngine(t, 2)
	tests := []struct {
		input string
		code  Code
	}{
		{"spawn dragon", CodeUnknownMonster},
		{"prime dragon", CodeUnknownMonster},
		{"set 7 gold 3", CodeUnknownPlayer},
		{"set 1 gold lots", CodeInvalidAction},
	}
	for _, tt := range tests {
		r := e.Step(tt.input)
		if CodeOf(r.Err) != tt.code {
			t.Errorf("Step(%q) code = %q, want %q", tt.input, CodeOf(r.Err), tt.code)
		}
	}
}
