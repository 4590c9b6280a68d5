package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/siegecore/engine/parser"
	"github.com/nathoo/siegecore/engine/resolve"
	"github.com/nathoo/siegecore/types"
)

func (e *Engine) stepRoster(cmd parser.Command) ([]string, error) {
	if len(cmd.Args) != 1 {
		return []string{"Usage: roster <n>"}, nil
	}
	n, err := strconv.Atoi(cmd.Args[0])
	if err != nil {
		return []string{"Usage: roster <n>"}, nil
	}
	if err := e.generateRoster(n); err != nil {
		return nil, err
	}
	return renderPlayers(e.State), nil
}

func (e *Engine) stepAttack(cmd parser.Command) ([]string, error) {
	at, ok := parser.ParseAttack(cmd.Args)
	if !ok {
		return []string{"Usage: attack <player> <slot> <card> [element]"}, nil
	}
	id, err := resolve.Player(e.State, at.Player)
	if err != nil {
		return nil, wrapError(CodeUnknownPlayer, "cannot attack", err)
	}
	slot, err := resolve.Slot(at.Slot)
	if err != nil {
		return nil, wrapError(CodeInvalidAction, "cannot attack", err)
	}
	a := types.AttackAction{PlayerID: id, Slot: slot, Card: at.Card, Element: at.Element}
	if err := e.submitAction(a); err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("%d of %d players have acted.", len(e.State.Actions), len(e.State.Players))}, nil
}

func (e *Engine) stepForce(cmd parser.Command) ([]string, error) {
	if cmd.Text == "" {
		return []string{"Usage: force <event> [| <effect>], or force off"}, nil
	}
	if strings.EqualFold(cmd.Text, "off") {
		e.setForcedEvent("", "")
		return []string{"Event override cleared."}, nil
	}

	name, effect := parser.SplitOverride(cmd.Text)
	canonical, err := resolve.Event(e.Defs, name)
	if err != nil {
		e.setForcedEvent(name, effect)
		return []string{fmt.Sprintf("Warning: no event named %q; the next draw will fail.", name)}, nil
	}
	if effect != "" {
		for _, ev := range e.Defs.Events {
			if ev.Name == canonical {
				effect = resolve.Effect(ev, effect)
			}
		}
	}
	e.setForcedEvent(canonical, effect)
	return nil, nil
}

func (e *Engine) stepSpawn(cmd parser.Command) ([]string, error) {
	if len(cmd.Args) == 0 {
		m := e.enqueueRandom()
		return []string{"Spawned " + describeMonster(m) + "."}, nil
	}
	id, err := e.template(cmd.Text)
	if err != nil {
		return nil, err
	}
	if err := e.enqueueTemplate(id); err != nil {
		return nil, err
	}
	return nil, nil
}

func (e *Engine) stepPrime(cmd parser.Command) ([]string, error) {
	if len(cmd.Args) == 0 {
		return []string{"Usage: prime <template>"}, nil
	}
	id, err := e.template(cmd.Text)
	if err != nil {
		return nil, err
	}
	return nil, e.primeMonster(id)
}

func (e *Engine) template(ref string) (string, error) {
	id, err := resolve.Template(e.Defs, ref)
	if err != nil {
		return "", wrapError(CodeUnknownMonster, "unknown monster", err)
	}
	return id, nil
}

const setUsage = "Usage: set <player> <name|fire|water|wood|gold|mana|wand|ice|bomb|poison> <value>"

func (e *Engine) stepSet(cmd parser.Command) ([]string, error) {
	if len(cmd.Args) < 3 {
		return []string{setUsage}, nil
	}
	id, err := resolve.Player(e.State, cmd.Args[0])
	if err != nil {
		return nil, wrapError(CodeUnknownPlayer, "cannot edit player", err)
	}

	field := cmd.Args[1]
	var u PlayerUpdate
	if field == "name" {
		words := strings.Fields(cmd.Text)
		name := strings.Join(words[2:], " ")
		u.Name = &name
		return nil, e.updatePlayer(id, u)
	}

	n, err := strconv.Atoi(cmd.Args[2])
	if err != nil {
		return nil, newError(CodeInvalidAction, "%q is not a number", cmd.Args[2])
	}
	switch {
	case field == "gold":
		u.Gold = &n
	case field == "mana" || field == "manastone" || field == "mana_stone":
		u.ManaStone = &n
	default:
		if el, ok := parser.Element(field); ok {
			u.Attack = map[types.Element]int{el: n}
		} else if card, ok := parser.Card(field); ok {
			u.SpellCards = map[types.Card]int{card: n}
		} else {
			return []string{setUsage}, nil
		}
	}
	return nil, e.updatePlayer(id, u)
}
