package rules

import (
	"fmt"

	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/types"
)

// Policy is the set of advance and submission gates the game master
// enforces.
type Policy struct {
	MinPlayers      int  // players required to leave Setup
	RequireQueue    bool // leaving Setup needs a monster queued or on the field
	GuardSpellCards bool // reject spell cards the player holds none of
}

// DefaultPolicy matches the control panel's gating.
func DefaultPolicy() Policy {
	return Policy{MinPlayers: 2, RequireQueue: true}
}

// NextPhase returns the phase that follows p in the turn cycle.
func NextPhase(p types.Phase) types.Phase {
	switch p {
	case types.PhaseSetup, types.PhaseResolution:
		return types.PhaseEvent
	case types.PhaseEvent:
		return types.PhasePrep
	case types.PhasePrep:
		return types.PhaseAction
	case types.PhaseAction:
		return types.PhaseResolution
	default:
		return types.PhaseSetup
	}
}

// AdvanceBlock returns why the session may not leave its current phase,
// or "" when advancing is allowed.
func AdvanceBlock(s *types.State, pol Policy) string {
	switch s.Phase {
	case types.PhaseSetup:
		if len(s.Players) == 0 || len(s.Players) < pol.MinPlayers {
			return fmt.Sprintf("need at least %d players, have %d", max(pol.MinPlayers, 1), len(s.Players))
		}
		if pol.RequireQueue && !state.HasMonsters(s) {
			return "the monster queue is empty"
		}
	case types.PhaseAction:
		if len(s.Actions) != len(s.Players) {
			return fmt.Sprintf("%d of %d players have acted", len(s.Actions), len(s.Players))
		}
	}
	return ""
}

// CanPlay reports whether p may submit card under the policy. The wand is
// always playable.
func CanPlay(p types.Player, card types.Card, pol Policy) bool {
	if card == types.CardWand || !pol.GuardSpellCards {
		return true
	}
	return p.Loot.SpellCards[card] > 0
}
