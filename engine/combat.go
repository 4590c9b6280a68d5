package engine

import (
	"github.com/nathoo/siegecore/engine/combat"
	"github.com/nathoo/siegecore/engine/journal"
	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/types"
)

// commit resolves the submitted actions against the session, then clears
// them and the turn's event flags.
func (e *Engine) commit(sink journal.Sink) {
	s := e.State
	actions := s.Actions
	s.Actions = []types.AttackAction{}

	e.Logger.Debug("resolving actions", "turn", s.Turn, "actions", len(actions))
	combat.Resolve(s, actions, sink)
	state.ResetFlags(s)
}

// preview resolves the pending actions against a private copy.
func (e *Engine) preview() *types.State {
	return combat.Preview(e.State, e.State.Actions)
}
