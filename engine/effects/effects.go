// Package effects applies declarative event-effect operations to the
// session. Every operation is one atomic mutation; selection logic lives
// in the events package.
package effects

import (
	"fmt"
	"strings"

	"github.com/nathoo/siegecore/engine/journal"
	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/types"
)

// Apply runs ops in order against s. Unknown operation types are noted
// and skipped.
func Apply(s *types.State, defs *state.Defs, ops []types.Effect, sink journal.Sink) {
	for _, op := range ops {
		switch op.Type {
		case "say":
			text, _ := op.Params["text"].(string)
			sink.Announce(interpolate(text, s))

		case "grant":
			gold := toInt(op.Params["gold"])
			mana := toInt(op.Params["mana_stone"])
			card, _ := op.Params["card"].(string)
			count := toInt(op.Params["count"])
			if card != "" && count == 0 {
				count = 1
			}
			for i := range s.Players {
				p := &s.Players[i]
				p.Loot.Gold += gold
				p.Loot.ManaStone += mana
				if card != "" {
					if p.Loot.SpellCards == nil {
						p.Loot.SpellCards = map[types.Card]int{}
					}
					p.Loot.SpellCards[types.Card(card)] += count
				}
			}

		case "set_flag":
			flag, _ := op.Params["flag"].(string)
			value, _ := op.Params["value"].(bool)
			switch flag {
			case "double_gold":
				s.Flags.DoubleGold = value
			case "all_attacks_neutral":
				s.Flags.AllAttacksNeutral = value
			default:
				sink.Note(fmt.Sprintf("Unknown event flag %q", flag))
			}

		case "disable_element":
			el, _ := op.Params["element"].(string)
			s.Flags.DisabledElement = types.Element(el)

		case "spawn":
			var monsters []types.Monster
			for _, id := range toStrings(op.Params["monsters"]) {
				m, ok := state.Template(defs, id)
				if !ok {
					sink.Note(fmt.Sprintf("Event spawn skipped unknown monster %q", id))
					continue
				}
				monsters = append(monsters, m)
			}
			if pos, _ := op.Params["position"].(string); pos == "front" {
				state.PushQueueFront(s, monsters...)
			} else {
				state.PushQueue(s, monsters...)
			}

		case "heal_field":
			amount := toInt(op.Params["amount"])
			for i := range s.Battlefield {
				if s.Battlefield[i].Monster == nil {
					continue
				}
				m := state.CloneMonster(*s.Battlefield[i].Monster)
				m.HP = min(m.HP+amount, m.MaxHP)
				s.Battlefield[i].Monster = &m
			}

		case "stop":
			return

		default:
			sink.Note(fmt.Sprintf("Unknown event effect %q", op.Type))
		}
	}
}

// interpolate replaces template variables in announcement text.
func interpolate(text string, s *types.State) string {
	if !strings.Contains(text, "{") {
		return text
	}
	r := strings.NewReplacer(
		"{turn}", fmt.Sprint(s.Turn),
		"{players}", fmt.Sprint(len(s.Players)),
		"{queue}", fmt.Sprint(len(s.Queue)),
	)
	return r.Replace(text)
}

// toStrings accepts []string from Go content and []any from Lua content.
func toStrings(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{list}
	default:
		return nil
	}
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}
