// Package state manages the game session aggregate: roster construction,
// lookups, queue handling, and the deep clone the preview path runs on.
package state

import (
	"fmt"

	"github.com/nathoo/siegecore/types"
)

// Defs holds the immutable game content: bestiary templates, the random
// name tables, and the event table.
type Defs struct {
	Title      string
	Monsters   map[string]types.Monster
	Names      map[int]map[types.Element][]string
	Events     []types.GameEvent
	QuietEvent string // event forced on the first turn
}

// SlotIDs lists the battlefield slots in their fixed order.
var SlotIDs = [3]types.SlotID{types.SlotA, types.SlotB, types.SlotC}

// Elements lists the three player elements in display order.
var Elements = []types.Element{types.ElementFire, types.ElementWater, types.ElementWood}

// SpellCards lists the single-use cards in display order.
var SpellCards = []types.Card{types.CardIce, types.CardBomb, types.CardPoison}

// NewState creates a fresh session in the Setup phase with an empty roster.
func NewState(defs *Defs) *types.State {
	s := &types.State{
		Turn:          1,
		Phase:         types.PhaseSetup,
		Players:       []types.Player{},
		Queue:         []types.Monster{},
		Actions:       []types.AttackAction{},
		Log:           []types.LogEntry{},
		SupervisorLog: []types.LogEntry{},
		CommandLog:    []string{},
	}
	for i, id := range SlotIDs {
		s.Battlefield[i] = types.Slot{ID: id}
	}
	if ev, ok := FindEvent(defs, defs.QuietEvent); ok {
		s.Event = ev
	}
	return s
}

// NewPlayer returns a player with the starting loadout: no attack power,
// three mana stones, and one wand.
func NewPlayer(id int) types.Player {
	return types.Player{
		ID:   id,
		Name: fmt.Sprintf("Player %d", id),
		Attack: map[types.Element]int{
			types.ElementFire:  0,
			types.ElementWater: 0,
			types.ElementWood:  0,
		},
		Loot: types.Inventory{
			Gold:      0,
			ManaStone: 3,
			SpellCards: map[types.Card]int{
				types.CardWand:   1,
				types.CardIce:    0,
				types.CardBomb:   0,
				types.CardPoison: 0,
			},
		},
	}
}

// NewRoster returns players 1..n.
func NewRoster(n int) []types.Player {
	players := make([]types.Player, 0, n)
	for i := 1; i <= n; i++ {
		players = append(players, NewPlayer(i))
	}
	return players
}

// PlayerIndex returns the roster index of the player with the given ID.
func PlayerIndex(s *types.State, id int) (int, bool) {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// FindPlayer returns a pointer into the roster, or nil if the ID is unknown.
func FindPlayer(s *types.State, id int) *types.Player {
	if i, ok := PlayerIndex(s, id); ok {
		return &s.Players[i]
	}
	return nil
}

// SlotIndex maps a slot ID to its battlefield index.
func SlotIndex(id types.SlotID) (int, bool) {
	for i, sid := range SlotIDs {
		if sid == id {
			return i, true
		}
	}
	return -1, false
}

// RotatePlayers moves the first player to the end of the roster.
func RotatePlayers(s *types.State) {
	if len(s.Players) < 2 {
		return
	}
	first := s.Players[0]
	copy(s.Players, s.Players[1:])
	s.Players[len(s.Players)-1] = first
}

// ResetFlags returns the per-turn event flags to neutral.
func ResetFlags(s *types.State) {
	s.Flags = types.EventFlags{}
}

// PopQueue removes and returns the monster at the front of the queue.
func PopQueue(s *types.State) (types.Monster, bool) {
	if len(s.Queue) == 0 {
		return types.Monster{}, false
	}
	m := s.Queue[0]
	s.Queue = s.Queue[1:]
	return m, true
}

// PushQueue appends monsters to the back of the queue.
func PushQueue(s *types.State, monsters ...types.Monster) {
	s.Queue = append(s.Queue, monsters...)
}

// PushQueueFront inserts monsters at the front of the queue, keeping
// their relative order.
func PushQueueFront(s *types.State, monsters ...types.Monster) {
	q := make([]types.Monster, 0, len(monsters)+len(s.Queue))
	q = append(q, monsters...)
	q = append(q, s.Queue...)
	s.Queue = q
}

// Template returns a fresh copy of a bestiary monster at full HP.
func Template(defs *Defs, id string) (types.Monster, bool) {
	m, ok := defs.Monsters[id]
	if !ok {
		return types.Monster{}, false
	}
	m = CloneMonster(m)
	m.ID = id
	m.HP = m.MaxHP
	return m, true
}

// FindEvent returns the event table entry with the given name.
func FindEvent(defs *Defs, name string) (types.GameEvent, bool) {
	for _, ev := range defs.Events {
		if ev.Name == name {
			return ev, true
		}
	}
	return types.GameEvent{}, false
}

// HasMonsters reports whether any monster is queued or on the battlefield.
func HasMonsters(s *types.State) bool {
	if len(s.Queue) > 0 {
		return true
	}
	for i := range s.Battlefield {
		if s.Battlefield[i].Monster != nil {
			return true
		}
	}
	return false
}
