package snapshot

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/types"
)

func TestBuild_NoAliasing(t *testing.T) {
	s := state.NewState(state.DefaultDefs())
	s.Players = state.NewRoster(2)
	s.Battlefield[0].Monster = &types.Monster{Name: "slime", HP: 4, MaxHP: 4}
	s.Queue = []types.Monster{{Name: "next", HP: 2, MaxHP: 2}}

	gs := Build(s, "Monster Siege")
	s.Players[0].Loot.Gold = 50
	s.Battlefield[0].Monster.HP = 1
	s.Queue[0].Name = "changed"

	if gs.Players[0].Loot.Gold != 0 {
		t.Error("snapshot shares players")
	}
	if gs.Battlefield[0].Monster.HP != 4 {
		t.Error("snapshot shares battlefield monsters")
	}
	if gs.Queue[0].Name != "next" {
		t.Error("snapshot shares queue")
	}
	if len(gs.Battlefield) != 3 {
		t.Errorf("battlefield has %d slots, want 3", len(gs.Battlefield))
	}
}

func TestEncode_Envelope(t *testing.T) {
	s := state.NewState(state.DefaultDefs())
	s.Players = state.NewRoster(1)
	s.Battlefield[1].Monster = &types.Monster{Name: "Ghost", HP: 3, MaxHP: 5, Element: types.ElementNone}
	s.Battlefield[1].PoisonedBy = []int{1}
	now := time.UnixMilli(1700000000123)

	data, err := Encode(Build(s, ""), now)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("envelope is not an object: %v", err)
	}
	if string(raw["timestamp"]) != "1700000000123" {
		t.Errorf("timestamp = %s", raw["timestamp"])
	}

	var payload map[string]any
	if err := json.Unmarshal(raw["payload"], &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	for _, key := range []string{"turn", "phase", "players", "battlefield", "queue", "event", "log"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("payload missing %q", key)
		}
	}
	slot := payload["battlefield"].([]any)[1].(map[string]any)
	monster := slot["monster"].(map[string]any)
	if monster["HP"] != float64(3) || monster["type"] != "none" {
		t.Errorf("monster = %v", monster)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	s := state.NewState(state.DefaultDefs())
	s.Turn = 4
	s.Phase = types.PhaseAction
	s.Actions = []types.AttackAction{{PlayerID: 1, Slot: types.SlotB, Card: types.CardWand, Element: types.ElementFire}}

	data, err := Encode(Build(s, "t"), time.Unix(10, 0))
	if err != nil {
		t.Fatal(err)
	}
	env, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if env.Timestamp != 10000 || env.Payload.Turn != 4 || env.Payload.Phase != types.PhaseAction {
		t.Errorf("envelope = %+v", env)
	}
	if len(env.Payload.Actions) != 1 || env.Payload.Actions[0].Element != types.ElementFire {
		t.Errorf("actions = %+v", env.Payload.Actions)
	}
}

func TestDecode_NormalizesLists(t *testing.T) {
	env, err := Decode([]byte(`{"timestamp": 1, "payload": {"turn": 1}}`))
	if err != nil {
		t.Fatal(err)
	}
	p := env.Payload
	if p.Players == nil || p.Queue == nil || p.Log == nil || p.Actions == nil || p.Battlefield == nil {
		t.Errorf("nil lists after decode: %+v", p)
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
