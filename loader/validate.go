package loader

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/nathoo/siegecore/engine/skills"
	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Known operation types.
var validOpTypes = map[string]bool{
	"say":             true,
	"grant":           true,
	"set_flag":        true,
	"disable_element": true,
	"spawn":           true,
	"heal_field":      true,
	"stop":            true,
}

var validFlags = map[string]bool{
	"double_gold":         true,
	"all_attacks_neutral": true,
}

var monsterElements = []types.Element{
	types.ElementFire, types.ElementWater, types.ElementWood, types.ElementNone,
}

// validate checks the compiled defs for referential integrity and consistency.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}

	if defs.Title == "" {
		ve.Errors = append(ve.Errors, "Game.title is required")
	}

	if _, ok := state.FindEvent(defs, defs.QuietEvent); !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"quiet event %q not found in defined events", defs.QuietEvent))
	}

	for _, id := range sortedIDs(defs.Monsters) {
		validateMonster(id, defs.Monsters[id], ve)
	}

	for level, tiers := range defs.Names {
		if level < 1 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("name table level %d must be at least 1", level))
		}
		for el := range tiers {
			if !slices.Contains(monsterElements, el) {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"name table level %d uses unknown element %q", level, el))
			}
		}
	}
	for level := 1; level <= 3; level++ {
		if len(defs.Names[level]) == 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"no names for level %d; random monsters will get generic names", level))
		}
	}

	for _, ev := range defs.Events {
		if ev.Weight < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("event %q has negative weight", ev.Name))
		}
		if len(ev.Effects) == 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("event %q has no effects", ev.Name))
		}
		for _, eff := range ev.Effects {
			if eff.Description == "" {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"event %q has an effect without a description", ev.Name))
			}
			if eff.Weight < 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"event %q effect %q has negative weight", ev.Name, eff.Description))
			}
			validateOps(ev.Name, eff.Ops, defs, ve)
		}
	}

	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateMonster(id string, m types.Monster, ve *ValidationError) {
	if m.MaxHP <= 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("monster %q needs a positive hp", id))
	}
	if !slices.Contains(monsterElements, m.Element) {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"monster %q has unknown element %q", id, m.Element))
	}
	if c := m.Loot.SpellCard; c != "" && !slices.Contains(state.SpellCards, c) {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"monster %q drops unknown spell card %q", id, c))
	}
	for _, sk := range m.Skills {
		if _, ok := skills.Lookup(sk); !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"monster %q references undefined skill %q", id, sk))
		}
	}
}

func validateOps(event string, ops []types.Effect, defs *state.Defs, ve *ValidationError) {
	for _, op := range ops {
		if !validOpTypes[op.Type] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"event %q uses unknown operation %q", event, op.Type))
			continue
		}

		switch op.Type {
		case "set_flag":
			if flag, _ := op.Params["flag"].(string); !validFlags[flag] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"event %q sets unknown flag %q", event, flag))
			}
		case "disable_element":
			el, _ := op.Params["element"].(string)
			if !slices.Contains(state.Elements, types.Element(el)) {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"event %q disables unknown element %q", event, el))
			}
		case "grant":
			if card, ok := op.Params["card"].(string); ok && !slices.Contains(state.SpellCards, types.Card(card)) {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"event %q grants unknown spell card %q", event, card))
			}
		case "spawn":
			ids := spawnIDs(op.Params["monsters"])
			if len(ids) == 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf("event %q spawns no monsters", event))
			}
			for _, id := range ids {
				if _, ok := defs.Monsters[id]; !ok {
					ve.Errors = append(ve.Errors, fmt.Sprintf(
						"event %q spawns undefined monster %q", event, id))
				}
			}
		}
	}
}

// spawnIDs reads a spawn list from Lua ([]any) or Go ([]string) content.
func spawnIDs(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		ids := make([]string, 0, len(list))
		for _, item := range list {
			id, _ := item.(string)
			ids = append(ids, id)
		}
		return ids
	default:
		return nil
	}
}

func sortedIDs(monsters map[string]types.Monster) []string {
	ids := make([]string, 0, len(monsters))
	for id := range monsters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
