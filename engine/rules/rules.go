// Package rules holds the pure combat arithmetic and the phase-advance
// policy.
package rules

import "github.com/nathoo/siegecore/types"

// SpellDamage is the flat damage dealt by the ice and bomb spells.
const SpellDamage = 2

// Outcome classifies a wand attack before damage is applied.
type Outcome int

const (
	Hit       Outcome = iota // damage computed normally (may still be 0)
	Disabled                 // the element is disabled by the current event
	NoElement                // wand used without an element
)

// WandDamage computes the damage of a wand attack by p with element el
// against a target of element target, under the current event flags.
func WandDamage(p types.Player, el, target types.Element, flags types.EventFlags) (int, Outcome) {
	if el == "" || el == types.ElementNone {
		return 0, NoElement
	}
	if flags.DisabledElement != "" && el == flags.DisabledElement {
		return 0, Disabled
	}
	base := p.Attack[el]
	if flags.AllAttacksNeutral {
		return base, Hit
	}
	return base * Multiplier(el, target), Hit
}
