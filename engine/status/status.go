// Package status owns the two persistent slot effects: the poison stack
// and the freeze lock. Both belong to the slot, not the monster, and are
// reset whenever the slot's occupant changes.
package status

import "github.com/nathoo/siegecore/types"

// Clear drops every status from the slot.
func Clear(sl *types.Slot) {
	sl.PoisonedBy = nil
	sl.LastIcedBy = 0
}

// Poison adds a contributor to the slot's poison stack. Adding an id that
// is already present does nothing; insertion order is kept.
func Poison(sl *types.Slot, playerID int) {
	for _, id := range sl.PoisonedBy {
		if id == playerID {
			return
		}
	}
	sl.PoisonedBy = append(sl.PoisonedBy, playerID)
}

// Cleanse empties the poison stack.
func Cleanse(sl *types.Slot) {
	sl.PoisonedBy = nil
}

// Poisoned reports whether the slot has any poison contributor.
func Poisoned(sl *types.Slot) bool {
	return len(sl.PoisonedBy) > 0
}

// Freeze locks the slot for everyone except playerID.
func Freeze(sl *types.Slot, playerID int) {
	sl.LastIcedBy = playerID
}

// Thaw lifts the freeze lock.
func Thaw(sl *types.Slot) {
	sl.LastIcedBy = 0
}

// Frozen reports whether a freeze lock is active.
func Frozen(sl *types.Slot) bool {
	return sl.LastIcedBy != 0
}

// Gate is the outcome of checking an action against a freeze lock.
type Gate int

const (
	Open     Gate = iota // no lock
	Released             // the locker acted; lock lifted, action proceeds
	Bypassed             // lock held by someone else, but the card ignores locks
	Blocked              // lock held by someone else; action is nullified
)

// Check applies the freeze rule for an action by playerID with the given
// card. A Released result has already thawed the slot.
func Check(sl *types.Slot, playerID int, card types.Card) Gate {
	switch {
	case !Frozen(sl):
		return Open
	case sl.LastIcedBy == playerID:
		Thaw(sl)
		return Released
	case card == types.CardBomb:
		return Bypassed
	default:
		return Blocked
	}
}

// Ticker returns the poisoner charged for this tick: the first contributor
// in the stack that is still on the roster. It reports false when the slot
// should not tick, either because it is empty, unpoisoned, or frozen.
func Ticker(sl *types.Slot, onRoster func(id int) bool) (int, bool) {
	if sl.Monster == nil || !Poisoned(sl) || Frozen(sl) {
		return 0, false
	}
	for _, id := range sl.PoisonedBy {
		if onRoster(id) {
			return id, true
		}
	}
	return 0, false
}
