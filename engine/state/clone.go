package state

import (
	"maps"

	"github.com/nathoo/siegecore/types"
)

// Clone returns a deep copy of the session. Nothing in the copy aliases
// the original, so the preview path may mutate it freely.
func Clone(s *types.State) *types.State {
	c := *s

	if s.Players != nil {
		c.Players = make([]types.Player, len(s.Players))
		for i, p := range s.Players {
			c.Players[i] = ClonePlayer(p)
		}
	}
	for i := range s.Battlefield {
		c.Battlefield[i] = CloneSlot(s.Battlefield[i])
	}
	c.Queue = CloneMonsters(s.Queue)
	c.ForcedMonsters = CloneMonsters(s.ForcedMonsters)
	c.Event = CloneEvent(s.Event)
	if s.Override != nil {
		o := *s.Override
		c.Override = &o
	}
	c.Actions = cloneSlice(s.Actions)
	c.Log = cloneSlice(s.Log)
	c.SupervisorLog = cloneSlice(s.SupervisorLog)
	c.CommandLog = cloneSlice(s.CommandLog)
	return &c
}

// ClonePlayer copies a player including its maps.
func ClonePlayer(p types.Player) types.Player {
	c := p
	c.Attack = maps.Clone(p.Attack)
	c.Loot.SpellCards = maps.Clone(p.Loot.SpellCards)
	return c
}

// CloneMonster copies a monster including its skill list.
func CloneMonster(m types.Monster) types.Monster {
	c := m
	c.Skills = cloneSlice(m.Skills)
	return c
}

// CloneMonsters copies a monster list.
func CloneMonsters(ms []types.Monster) []types.Monster {
	if ms == nil {
		return nil
	}
	out := make([]types.Monster, len(ms))
	for i, m := range ms {
		out[i] = CloneMonster(m)
	}
	return out
}

// CloneSlot copies a slot, its occupant, and its poison stack.
func CloneSlot(sl types.Slot) types.Slot {
	c := sl
	if sl.Monster != nil {
		m := CloneMonster(*sl.Monster)
		c.Monster = &m
	}
	c.PoisonedBy = cloneSlice(sl.PoisonedBy)
	return c
}

// CloneEvent copies an event and its effect list.
func CloneEvent(ev types.GameEvent) types.GameEvent {
	c := ev
	c.Effects = cloneSlice(ev.Effects)
	return c
}

// cloneSlice copies in, keeping a nil slice nil.
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}
