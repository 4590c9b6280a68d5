package combat

import (
	"fmt"

	"github.com/nathoo/siegecore/engine/journal"
	"github.com/nathoo/siegecore/engine/skills"
	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/engine/status"
	"github.com/nathoo/siegecore/types"
)

// Refill fills every empty slot, in slot order, from the front of the queue.
func Refill(s *types.State, sink journal.Sink) {
	for i := range s.Battlefield {
		if s.Battlefield[i].Monster == nil {
			pull(s, i, sink)
		}
	}
}

// Vacate removes slot i's occupant, clears its statuses and pulls the next
// queued monster into it. The slot stays empty when the queue is exhausted.
func Vacate(s *types.State, i int, sink journal.Sink) {
	sl := &s.Battlefield[i]
	sl.Monster = nil
	status.Clear(sl)
	pull(s, i, sink)
}

func pull(s *types.State, i int, sink journal.Sink) {
	m, ok := state.PopQueue(s)
	if !ok {
		return
	}
	Place(s, i, m, sink)
}

// Place puts m into slot i with fresh statuses and fires its onAppear skill.
func Place(s *types.State, i int, m types.Monster, sink journal.Sink) {
	if m.HP <= 0 {
		m.HP = m.MaxHP
	}
	sl := &s.Battlefield[i]
	status.Clear(sl)
	sl.Monster = &m
	sink.Note(fmt.Sprintf("[%s] %s enters the battlefield (%s, %d HP)", sl.ID, m.Name, m.Element, m.HP))
	skills.Dispatch(s, i, types.TriggerAppear, sink)
}
