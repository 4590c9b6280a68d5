// Package skills dispatches monster skills at their trigger points.
// A skill is a registered transformation keyed by ID; monsters carry skill
// IDs. Effects replace the slot's monster with an updated copy rather
// than editing the old value in place.
package skills

import (
	"fmt"
	"sort"

	"github.com/nathoo/siegecore/engine/journal"
	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/engine/status"
	"github.com/nathoo/siegecore/types"
)

// Context is what a skill effect may read and change.
type Context struct {
	State *types.State
	Slot  int // battlefield index of the skill's owner
	Sink  journal.Sink
}

// Monster returns the current occupant of the owner's slot.
func (c Context) Monster() *types.Monster {
	return c.State.Battlefield[c.Slot].Monster
}

// Replace swaps the owner's slot occupant for m.
func (c Context) Replace(m types.Monster) {
	c.State.Battlefield[c.Slot].Monster = &m
}

// Skill is one entry of the skill registry.
type Skill struct {
	ID          string
	Name        string
	Description string
	Trigger     types.Trigger
	Apply       func(Context)
}

var registry = map[string]Skill{}

// Register adds a skill to the registry, replacing any skill with the same ID.
func Register(sk Skill) {
	registry[sk.ID] = sk
}

// Lookup returns the registered skill with the given ID.
func Lookup(id string) (Skill, bool) {
	sk, ok := registry[id]
	return sk, ok
}

// IDs returns every registered skill ID, sorted.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Dispatch fires the owner's first skill bound to trigger. It reports
// whether a skill fired.
func Dispatch(s *types.State, slot int, trigger types.Trigger, sink journal.Sink) bool {
	m := s.Battlefield[slot].Monster
	if m == nil {
		return false
	}
	for _, id := range m.Skills {
		sk, ok := registry[id]
		if !ok || sk.Trigger != trigger {
			continue
		}
		sk.Apply(Context{State: s, Slot: slot, Sink: sink})
		return true
	}
	return false
}

// DispatchAll fires trigger for every battlefield monster in slot order.
func DispatchAll(s *types.State, trigger types.Trigger, sink journal.Sink) {
	for i := range s.Battlefield {
		Dispatch(s, i, trigger, sink)
	}
}

// cycleOrder is the element rotation used by element_cycle.
var cycleOrder = map[types.Element]types.Element{
	types.ElementFire:  types.ElementWater,
	types.ElementWater: types.ElementWood,
	types.ElementWood:  types.ElementFire,
	types.ElementNone:  types.ElementFire,
}

func init() {
	Register(Skill{
		ID:          "element_cycle",
		Name:        "Element Cycle",
		Description: "Each hit shifts its element: fire, water, wood, fire.",
		Trigger:     types.TriggerHit,
		Apply: func(c Context) {
			m := state.CloneMonster(*c.Monster())
			m.Element = cycleOrder[m.Element]
			c.Replace(m)
			c.Sink.Note(fmt.Sprintf("[%s] %s cycles its element to %s", state.SlotIDs[c.Slot], m.Name, m.Element))
		},
	})
	Register(Skill{
		ID:          "regen",
		Name:        "Regeneration",
		Description: "Heals 2 HP at the end of every turn.",
		Trigger:     types.TriggerTurnEnd,
		Apply: func(c Context) {
			m := state.CloneMonster(*c.Monster())
			m.HP += 2
			if m.HP > m.MaxHP {
				m.HP = m.MaxHP
			}
			c.Replace(m)
			c.Sink.Announce(fmt.Sprintf("[%s] %s regenerates to %d HP", state.SlotIDs[c.Slot], m.Name, m.HP))
		},
	})
	Register(Skill{
		ID:          "cleanse",
		Name:        "Cleanse",
		Description: "Washes away poison at the start of every turn.",
		Trigger:     types.TriggerTurnStart,
		Apply: func(c Context) {
			sl := &c.State.Battlefield[c.Slot]
			if !status.Poisoned(sl) {
				return
			}
			status.Cleanse(sl)
			c.Sink.Announce(fmt.Sprintf("[%s] %s cleanses the poison", sl.ID, c.Monster().Name))
		},
	})
	Register(Skill{
		ID:          "summoner",
		Name:        "Summoner",
		Description: "On arrival, sends a minion to the back of the queue.",
		Trigger:     types.TriggerAppear,
		Apply: func(c Context) {
			owner := c.Monster()
			hp := (owner.MaxHP + 2) / 3
			if hp < 1 {
				hp = 1
			}
			minion := types.Monster{
				Name:    owner.Name + " Spawn",
				MaxHP:   hp,
				HP:      hp,
				Element: owner.Element,
				Level:   owner.Level,
			}
			state.PushQueue(c.State, minion)
			c.Sink.Announce(fmt.Sprintf("[%s] %s summons %s", state.SlotIDs[c.Slot], owner.Name, minion.Name))
		},
	})
}
