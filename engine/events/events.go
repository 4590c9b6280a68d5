// Package events draws the turn event from the event table and applies
// the chosen effect.
package events

import (
	"errors"
	"fmt"

	"github.com/nathoo/siegecore/engine/effects"
	"github.com/nathoo/siegecore/engine/journal"
	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/types"
)

// ErrUnknownEvent is returned when a forced event names no table entry.
var ErrUnknownEvent = errors.New("unknown event")

// Roller draws an index by cumulative-weight roulette.
type Roller interface {
	Roulette(weights []int) int
}

// Trigger selects the event for the current turn, applies its chosen
// effect and stores the event rewritten to hold only that effect.
//
// The first turn always gets the quiet event. A pending override is
// consumed before anything else, whatever the outcome. A forced name that
// matches no event returns ErrUnknownEvent and applies nothing.
func Trigger(s *types.State, defs *state.Defs, r Roller, sink journal.Sink) error {
	override := s.Override
	s.Override = nil

	ev, err := pickEvent(s, defs, override, r)
	if err != nil {
		return err
	}
	eff := pickEffect(ev, override, r)

	s.Event = types.GameEvent{
		Name:    ev.Name,
		Weight:  ev.Weight,
		Effects: []types.EventEffect{eff},
	}
	sink.Announce(fmt.Sprintf("Event: %s. %s", ev.Name, eff.Description))
	effects.Apply(s, defs, eff.Ops, sink)
	return nil
}

func pickEvent(s *types.State, defs *state.Defs, override *types.EventOverride, r Roller) (types.GameEvent, error) {
	if s.Turn <= 1 {
		ev, ok := state.FindEvent(defs, defs.QuietEvent)
		if !ok {
			return types.GameEvent{}, fmt.Errorf("%w: quiet event %q", ErrUnknownEvent, defs.QuietEvent)
		}
		return ev, nil
	}
	if override != nil && override.EventName != "" {
		ev, ok := state.FindEvent(defs, override.EventName)
		if !ok {
			return types.GameEvent{}, fmt.Errorf("%w: %q", ErrUnknownEvent, override.EventName)
		}
		return ev, nil
	}
	if len(defs.Events) == 0 {
		return types.GameEvent{}, fmt.Errorf("%w: event table is empty", ErrUnknownEvent)
	}
	weights := make([]int, len(defs.Events))
	for i, ev := range defs.Events {
		weights[i] = ev.Weight
	}
	return defs.Events[r.Roulette(weights)], nil
}

func pickEffect(ev types.GameEvent, override *types.EventOverride, r Roller) types.EventEffect {
	if len(ev.Effects) == 0 {
		return types.EventEffect{Description: ev.Name}
	}
	if override != nil && override.EffectDescription != "" {
		for _, eff := range ev.Effects {
			if eff.Description == override.EffectDescription {
				return eff
			}
		}
	}
	if len(ev.Effects) == 1 {
		return ev.Effects[0]
	}
	weights := make([]int, len(ev.Effects))
	for i, eff := range ev.Effects {
		weights[i] = eff.Weight
	}
	return ev.Effects[r.Roulette(weights)]
}
