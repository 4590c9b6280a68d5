package rules

import "github.com/nathoo/siegecore/types"

// beats maps each element to the element it beats. The no-element tag is
// absent: it neither beats nor is beaten.
var beats = map[types.Element]types.Element{
	types.ElementFire:  types.ElementWood,
	types.ElementWood:  types.ElementWater,
	types.ElementWater: types.ElementFire,
}

// Beats reports whether attacker beats target on the elemental triangle.
func Beats(attacker, target types.Element) bool {
	v, ok := beats[attacker]
	return ok && v == target
}

// WeakTo reports whether attacker is beaten by target.
func WeakTo(attacker, target types.Element) bool {
	return Beats(target, attacker)
}

// Multiplier returns the triangle multiplier for a wand attack: 2 when the
// attacker beats the target, 0 when it is weak to it, 1 otherwise.
func Multiplier(attacker, target types.Element) int {
	switch {
	case Beats(attacker, target):
		return 2
	case WeakTo(attacker, target):
		return 0
	default:
		return 1
	}
}
