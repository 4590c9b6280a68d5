// Package snapshot builds the frozen, externally observable game state and
// its JSON wire envelope.
package snapshot

import (
	"encoding/json"
	"time"

	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/types"
)

// GameState is the read-only view handed to viewers. It shares nothing
// with the live session.
type GameState struct {
	Title       string               `json:"title,omitempty"`
	Turn        int                  `json:"turn"`
	Phase       types.Phase          `json:"phase"`
	Players     []types.Player       `json:"players"`
	Battlefield []types.Slot         `json:"battlefield"`
	Queue       []types.Monster      `json:"queue"`
	Event       types.GameEvent      `json:"event"`
	Flags       types.EventFlags     `json:"flags"`
	Actions     []types.AttackAction `json:"attackActions"`
	Log         []types.LogEntry     `json:"log"`
}

// Envelope is the broadcast wire format.
type Envelope struct {
	Timestamp int64     `json:"timestamp"` // unix milliseconds
	Payload   GameState `json:"payload"`
}

// Build deep-copies the observable part of s.
func Build(s *types.State, title string) GameState {
	c := state.Clone(s)
	gs := GameState{
		Title:       title,
		Turn:        c.Turn,
		Phase:       c.Phase,
		Players:     c.Players,
		Battlefield: c.Battlefield[:],
		Queue:       c.Queue,
		Event:       c.Event,
		Flags:       c.Flags,
		Actions:     c.Actions,
		Log:         c.Log,
	}
	normalize(&gs)
	return gs
}

// Encode wraps gs in an envelope stamped with now and serializes it.
func Encode(gs GameState, now time.Time) ([]byte, error) {
	return json.Marshal(Envelope{Timestamp: now.UnixMilli(), Payload: gs})
}

// Decode parses an envelope.
func Decode(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	normalize(&env.Payload)
	return &env, nil
}

// normalize keeps every list non-nil so viewers always see arrays.
func normalize(gs *GameState) {
	if gs.Players == nil {
		gs.Players = []types.Player{}
	}
	if gs.Battlefield == nil {
		gs.Battlefield = []types.Slot{}
	}
	if gs.Queue == nil {
		gs.Queue = []types.Monster{}
	}
	if gs.Actions == nil {
		gs.Actions = []types.AttackAction{}
	}
	if gs.Log == nil {
		gs.Log = []types.LogEntry{}
	}
	if gs.Event.Effects == nil {
		gs.Event.Effects = []types.EventEffect{}
	}
}
