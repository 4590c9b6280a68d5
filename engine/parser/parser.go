// Package parser converts game-master command lines into Command structs.
// Intentionally dumb: no grammar, just alias tables and word splitting.
package parser

import (
	"strings"

	"github.com/nathoo/siegecore/types"
)

// Command is one parsed console line.
type Command struct {
	Verb string   // canonical verb, empty for a blank line
	Args []string // remaining words, lowercased
	Text string   // remainder after the verb with its original case
}

var verbAliases = map[string]string{
	// Phase control
	"next":    "advance",
	"n":       "advance",
	"go":      "advance",
	"proceed": "advance",

	// Roster
	"players": "players",
	"p":       "players",
	"who":     "players",
	"gen":     "roster",
	"new":     "roster",
	"edit":    "set",

	// Actions
	"hit":    "attack",
	"atk":    "attack",
	"cast":   "attack",
	"undo":   "cancel",
	"revert": "cancel",

	// Events
	"override": "force",
	"ev":       "event",

	// Monsters
	"summon": "spawn",
	"add":    "spawn",
	"queue":  "queue",
	"q":      "queue",
	"board":  "field",
	"bf":     "field",
	"f":      "field",

	// Misc
	"forecast": "preview",
	"pv":       "preview",
	"h":        "help",
	"?":        "help",
	"history":  "log",
}

var cardAliases = map[string]types.Card{
	"wand":   types.CardWand,
	"w":      types.CardWand,
	"staff":  types.CardWand,
	"ice":    types.CardIce,
	"freeze": types.CardIce,
	"frost":  types.CardIce,
	"bomb":   types.CardBomb,
	"b":      types.CardBomb,
	"aoe":    types.CardBomb,
	"poison": types.CardPoison,
	"toxin":  types.CardPoison,
	"venom":  types.CardPoison,
}

var elementAliases = map[string]types.Element{
	"fire":  types.ElementFire,
	"fi":    types.ElementFire,
	"water": types.ElementWater,
	"wa":    types.ElementWater,
	"wood":  types.ElementWood,
	"wo":    types.ElementWood,
	"grass": types.ElementWood,
}

// Parse splits a raw line into a Command.
func Parse(input string) Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return Command{}
	}

	verb, text, _ := strings.Cut(input, " ")
	verb = strings.ToLower(verb)
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}
	text = strings.TrimSpace(text)

	return Command{
		Verb: verb,
		Args: strings.Fields(strings.ToLower(text)),
		Text: text,
	}
}

// Card maps a card word to its card kind.
func Card(word string) (types.Card, bool) {
	c, ok := cardAliases[strings.ToLower(word)]
	return c, ok
}

// Element maps an element word to one of the three player elements.
func Element(word string) (types.Element, bool) {
	e, ok := elementAliases[strings.ToLower(word)]
	return e, ok
}

// Attack is the argument shape of an attack command.
type Attack struct {
	Player  string
	Slot    string
	Card    types.Card
	Element types.Element
}

// ParseAttack reads "<player> <slot> <card> [element]". A bare element in
// the card position implies the wand.
func ParseAttack(args []string) (Attack, bool) {
	if len(args) < 3 {
		return Attack{}, false
	}
	a := Attack{Player: args[0], Slot: args[1]}
	if el, ok := Element(args[2]); ok {
		a.Card = types.CardWand
		a.Element = el
		return a, len(args) == 3
	}
	card, ok := Card(args[2])
	if !ok {
		return Attack{}, false
	}
	a.Card = card
	if len(args) > 3 {
		el, ok := Element(args[3])
		if !ok || len(args) > 4 {
			return Attack{}, false
		}
		a.Element = el
	}
	return a, true
}

// SplitOverride splits "event name | effect description" into its parts.
// The effect part is empty when no separator is present.
func SplitOverride(text string) (event, effect string) {
	event, effect, _ = strings.Cut(text, "|")
	return strings.TrimSpace(event), strings.TrimSpace(effect)
}
