package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/types"
)

// describeAction renders an action without its player, e.g. "wand(fire) at [A]".
func describeAction(a types.AttackAction) string {
	if a.Card == types.CardWand {
		return fmt.Sprintf("wand(%s) at [%s]", a.Element, a.Slot)
	}
	return fmt.Sprintf("%s at [%s]", a.Card, a.Slot)
}

func describeMonster(m types.Monster) string {
	return fmt.Sprintf("%s (%s, %d/%d HP)", m.Name, m.Element, m.HP, m.MaxHP)
}

func describePlayer(p types.Player) string {
	var parts []string
	for _, el := range state.Elements {
		parts = append(parts, fmt.Sprintf("%s %d", el, p.Attack[el]))
	}
	cards := []string{fmt.Sprintf("wand %d", p.Loot.SpellCards[types.CardWand])}
	for _, c := range state.SpellCards {
		cards = append(cards, fmt.Sprintf("%s %d", c, p.Loot.SpellCards[c]))
	}
	return fmt.Sprintf("%s | gold %d, mana %d | %s",
		strings.Join(parts, " "), p.Loot.Gold, p.Loot.ManaStone, strings.Join(cards, " "))
}

func describeSlot(s *types.State, sl types.Slot) string {
	if sl.Monster == nil {
		return fmt.Sprintf("[%s] empty", sl.ID)
	}
	line := fmt.Sprintf("[%s] %s", sl.ID, describeMonster(*sl.Monster))
	if len(sl.Monster.Skills) > 0 {
		line += " skills: " + strings.Join(sl.Monster.Skills, ", ")
	}
	if len(sl.PoisonedBy) > 0 {
		names := make([]string, 0, len(sl.PoisonedBy))
		for _, id := range sl.PoisonedBy {
			names = append(names, nameOf(s, id))
		}
		line += " | poisoned by " + strings.Join(names, ", ")
	}
	if sl.LastIcedBy != 0 {
		line += " | frozen by " + nameOf(s, sl.LastIcedBy)
	}
	return line
}

func nameOf(s *types.State, id int) string {
	if p := state.FindPlayer(s, id); p != nil {
		return p.Name
	}
	return fmt.Sprintf("player %d", id)
}

func renderPlayers(s *types.State) []string {
	if len(s.Players) == 0 {
		return []string{"No players yet. Use 'roster <n>'."}
	}
	acted := map[int]bool{}
	for _, a := range s.Actions {
		acted[a.PlayerID] = true
	}
	lines := make([]string, 0, len(s.Players))
	for _, p := range s.Players {
		mark := " "
		if acted[p.ID] {
			mark = "*"
		}
		lines = append(lines, fmt.Sprintf("%s%d. %s: %s", mark, p.ID, p.Name, describePlayer(p)))
	}
	return lines
}

func renderField(s *types.State) []string {
	lines := make([]string, 0, len(s.Battlefield)+len(s.Actions)+1)
	for _, sl := range s.Battlefield {
		lines = append(lines, describeSlot(s, sl))
	}
	if len(s.Actions) > 0 {
		lines = append(lines, "Pending actions:")
		for _, a := range s.Actions {
			lines = append(lines, fmt.Sprintf("  %s: %s", a.PlayerName, describeAction(a)))
		}
	}
	return lines
}

func renderQueue(s *types.State) []string {
	if len(s.Queue) == 0 {
		return []string{"The queue is empty."}
	}
	lines := []string{fmt.Sprintf("Queue (%d):", len(s.Queue))}
	for i, m := range s.Queue {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, describeMonster(m)))
	}
	return lines
}

func renderEvent(s *types.State) []string {
	lines := []string{"Event: " + s.Event.Name}
	for _, eff := range s.Event.Effects {
		lines = append(lines, "  "+eff.Description)
	}
	f := s.Flags
	if f.DoubleGold {
		lines = append(lines, "  gold drops are doubled")
	}
	if f.AllAttacksNeutral {
		lines = append(lines, "  all attacks are neutral")
	}
	if f.DisabledElement != "" {
		lines = append(lines, fmt.Sprintf("  %s wands are disabled", f.DisabledElement))
	}
	if o := s.Override; o != nil {
		line := "Next event forced: " + o.EventName
		if o.EffectDescription != "" {
			line += " (" + o.EffectDescription + ")"
		}
		lines = append(lines, line)
	}
	return lines
}

func renderLog(s *types.State, args []string) []string {
	n := 10
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil && v > 0 {
			n = v
		}
	}
	entries := s.SupervisorLog
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	if len(entries) == 0 {
		return []string{"The log is empty."}
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("T%d %-10s %s", e.Round, e.Phase, e.Message))
	}
	return lines
}

// renderPreview compares each slot before and after the pending actions.
func renderPreview(cur, next *types.State) []string {
	if len(cur.Actions) == 0 {
		return []string{"No pending actions."}
	}
	lines := make([]string, 0, len(cur.Battlefield))
	for i := range cur.Battlefield {
		before, after := cur.Battlefield[i].Monster, next.Battlefield[i].Monster
		id := cur.Battlefield[i].ID
		switch {
		case before == nil:
			lines = append(lines, fmt.Sprintf("[%s] empty", id))
		case after == nil:
			lines = append(lines, fmt.Sprintf("[%s] %s would be slain; the slot stays empty", id, before.Name))
		case after.Name != before.Name || after.MaxHP != before.MaxHP:
			lines = append(lines, fmt.Sprintf("[%s] %s would be slain; %s takes its place", id, before.Name, describeMonster(*after)))
		default:
			lines = append(lines, fmt.Sprintf("[%s] %s HP %d -> %d", id, before.Name, before.HP, after.HP))
		}
	}
	return lines
}
