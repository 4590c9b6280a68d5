// Package resolve maps game-master references (player numbers or names,
// slot letters, template and event names) to session identities, and
// detects actions whose references have gone stale.
package resolve

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/types"
)

// AmbiguityError indicates multiple candidates matched a reference.
type AmbiguityError struct {
	Kind       string
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s %q? (%s)", e.Kind, e.Name, names)
}

// NotFoundError indicates nothing matched a reference.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s matches %q", e.Kind, e.Name)
}

// Player resolves a roster reference: a numeric ID, "p<ID>", or a
// case-insensitive name or name word.
func Player(s *types.State, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	lower := strings.ToLower(ref)
	num := strings.TrimPrefix(lower, "p")
	if id, err := strconv.Atoi(num); err == nil {
		if _, ok := state.PlayerIndex(s, id); ok {
			return id, nil
		}
		return 0, &NotFoundError{Kind: "player", Name: ref}
	}

	var ids []int
	var names []string
	for _, p := range s.Players {
		if matchesName(p.Name, lower) {
			ids = append(ids, p.ID)
			names = append(names, p.Name)
		}
	}
	switch len(ids) {
	case 0:
		return 0, &NotFoundError{Kind: "player", Name: ref}
	case 1:
		return ids[0], nil
	default:
		return 0, &AmbiguityError{Kind: "player", Name: ref, Candidates: names}
	}
}

// Slot resolves a slot letter, case-insensitively.
func Slot(ref string) (types.SlotID, error) {
	id := types.SlotID(strings.ToUpper(strings.TrimSpace(ref)))
	if _, ok := state.SlotIndex(id); !ok {
		return "", &NotFoundError{Kind: "slot", Name: ref}
	}
	return id, nil
}

// Template resolves a bestiary reference by ID, by ID with spaces for
// underscores, or by name.
func Template(defs *state.Defs, ref string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(ref))
	if _, ok := defs.Monsters[lower]; ok {
		return lower, nil
	}
	id := strings.ReplaceAll(lower, " ", "_")
	if _, ok := defs.Monsters[id]; ok {
		return id, nil
	}

	var matches []string
	for id, m := range defs.Monsters {
		if matchesName(m.Name, lower) {
			matches = append(matches, id)
		}
	}
	sort.Strings(matches)
	switch len(matches) {
	case 0:
		return "", &NotFoundError{Kind: "monster", Name: ref}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguityError{Kind: "monster", Name: ref, Candidates: matches}
	}
}

// Event resolves an event name case-insensitively to its table spelling.
func Event(defs *state.Defs, ref string) (string, error) {
	for _, ev := range defs.Events {
		if strings.EqualFold(ev.Name, strings.TrimSpace(ref)) {
			return ev.Name, nil
		}
	}
	return "", &NotFoundError{Kind: "event", Name: ref}
}

// Effect resolves an effect of ev by 1-based number, case-insensitive
// description, or unique description substring. An unresolved reference
// is returned unchanged so the draw can fall back to roulette.
func Effect(ev types.GameEvent, ref string) string {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(ev.Effects) {
		return ev.Effects[n-1].Description
	}
	var partial []string
	lower := strings.ToLower(ref)
	for _, eff := range ev.Effects {
		if strings.EqualFold(eff.Description, ref) {
			return eff.Description
		}
		if lower != "" && strings.Contains(strings.ToLower(eff.Description), lower) {
			partial = append(partial, eff.Description)
		}
	}
	if len(partial) == 1 {
		return partial[0]
	}
	return ref
}

// Stale reports why an action can no longer be resolved, or "" when it
// still refers to a roster player and an occupied slot.
func Stale(s *types.State, a types.AttackAction) string {
	if _, ok := state.PlayerIndex(s, a.PlayerID); !ok {
		return fmt.Sprintf("player %d is no longer on the roster", a.PlayerID)
	}
	i, ok := state.SlotIndex(a.Slot)
	if !ok {
		return fmt.Sprintf("no slot %q", a.Slot)
	}
	if s.Battlefield[i].Monster == nil {
		return fmt.Sprintf("slot %s is empty", a.Slot)
	}
	return ""
}

// matchesName reports an exact case-insensitive match or a match on any
// single word of the name.
func matchesName(name, lower string) bool {
	nameLower := strings.ToLower(name)
	if nameLower == lower {
		return true
	}
	for _, word := range strings.Fields(nameLower) {
		if word == lower {
			return true
		}
	}
	return false
}
