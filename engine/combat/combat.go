// Package combat resolves a turn's attack actions against the battlefield.
//
// One resolution core serves both the committing path and the preview
// path. Commit runs against the authoritative session with a journal;
// preview runs against a deep clone with journal.Discard.
package combat

import (
	"fmt"

	"github.com/nathoo/siegecore/engine/journal"
	"github.com/nathoo/siegecore/engine/loot"
	"github.com/nathoo/siegecore/engine/resolve"
	"github.com/nathoo/siegecore/engine/rules"
	"github.com/nathoo/siegecore/engine/skills"
	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/engine/status"
	"github.com/nathoo/siegecore/types"
)

// Resolve processes actions strictly in order. Before each action, every
// poisoned slot ticks once. Stale actions are skipped with a note.
func Resolve(s *types.State, actions []types.AttackAction, sink journal.Sink) {
	for _, a := range actions {
		tickPoison(s, sink)
		apply(s, a, sink)
	}
}

// Preview resolves actions against a private copy of s and returns it.
// s is never modified.
func Preview(s *types.State, actions []types.AttackAction) *types.State {
	c := state.Clone(s)
	Resolve(c, actions, journal.Discard)
	return c
}

func tickPoison(s *types.State, sink journal.Sink) {
	onRoster := func(id int) bool {
		_, ok := state.PlayerIndex(s, id)
		return ok
	}
	for i := range s.Battlefield {
		id, ok := status.Ticker(&s.Battlefield[i], onRoster)
		if !ok {
			continue
		}
		m := s.Battlefield[i].Monster
		sink.Note(fmt.Sprintf("[%s] %s takes 1 poison damage from %s (HP %d)",
			s.Battlefield[i].ID, m.Name, playerName(s, id), m.HP-1))
		damage(s, i, 1, id, sink)
	}
}

func apply(s *types.State, a types.AttackAction, sink journal.Sink) {
	if why := resolve.Stale(s, a); why != "" {
		sink.Note(fmt.Sprintf("Skipped %s's %s action: %s", playerName(s, a.PlayerID), a.Card, why))
		return
	}
	p := state.FindPlayer(s, a.PlayerID)
	i, _ := state.SlotIndex(a.Slot)
	sl := &s.Battlefield[i]

	switch status.Check(sl, p.ID, a.Card) {
	case status.Blocked:
		sink.Note(fmt.Sprintf("%s's attack on [%s] is nullified: frozen by %s",
			p.Name, sl.ID, playerName(s, sl.LastIcedBy)))
		return
	case status.Released:
		sink.Note(fmt.Sprintf("%s thaws [%s]", p.Name, sl.ID))
	case status.Bypassed:
		sink.Note(fmt.Sprintf("%s's bomb ignores the freeze on [%s]", p.Name, sl.ID))
	}

	switch a.Card {
	case types.CardWand:
		wand(s, i, p, a.Element, sink)
	case types.CardIce:
		loot.Consume(p, types.CardIce)
		m := sl.Monster
		sink.Note(fmt.Sprintf("%s freezes [%s] %s for %d damage (HP %d)",
			p.Name, sl.ID, m.Name, rules.SpellDamage, m.HP-rules.SpellDamage))
		if !damage(s, i, rules.SpellDamage, p.ID, sink) {
			status.Freeze(&s.Battlefield[i], p.ID)
		}
	case types.CardBomb:
		loot.Consume(p, types.CardBomb)
		sink.Note(fmt.Sprintf("%s bombs the battlefield for %d damage", p.Name, rules.SpellDamage))
		for j := range s.Battlefield {
			m := s.Battlefield[j].Monster
			if m == nil {
				continue
			}
			sink.Note(fmt.Sprintf("[%s] %s takes %d bomb damage (HP %d)",
				s.Battlefield[j].ID, m.Name, rules.SpellDamage, m.HP-rules.SpellDamage))
			damage(s, j, rules.SpellDamage, p.ID, sink)
		}
	case types.CardPoison:
		loot.Consume(p, types.CardPoison)
		status.Poison(sl, p.ID)
		sink.Note(fmt.Sprintf("%s poisons [%s] %s", p.Name, sl.ID, sl.Monster.Name))
	default:
		sink.Note(fmt.Sprintf("Skipped %s's action: unknown card %q", p.Name, a.Card))
	}
}

func wand(s *types.State, i int, p *types.Player, el types.Element, sink journal.Sink) {
	sl := &s.Battlefield[i]
	m := sl.Monster
	dmg, outcome := rules.WandDamage(*p, el, m.Element, s.Flags)
	switch outcome {
	case rules.NoElement:
		sink.Note(fmt.Sprintf("Skipped %s's wand attack: no element", p.Name))
		return
	case rules.Disabled:
		sink.Note(fmt.Sprintf("%s's %s wand fizzles: %s is disabled this turn", p.Name, el, el))
		return
	}
	sink.Note(fmt.Sprintf("%s hits [%s] %s with %s for %d damage (HP %d)",
		p.Name, sl.ID, m.Name, el, dmg, m.HP-dmg))
	damage(s, i, dmg, p.ID, sink)
}

// damage lowers slot i's occupant by n HP, fires its onHit skill, then
// runs the death check crediting killerID. It reports whether the
// monster died.
func damage(s *types.State, i int, n, killerID int, sink journal.Sink) bool {
	sl := &s.Battlefield[i]
	m := state.CloneMonster(*sl.Monster)
	m.HP -= n
	sl.Monster = &m

	skills.Dispatch(s, i, types.TriggerHit, sink)

	dead := s.Battlefield[i].Monster
	if dead == nil || dead.HP > 0 {
		return false
	}
	reward := loot.Reward(*dead, s.Flags.DoubleGold)
	if p := state.FindPlayer(s, killerID); p != nil {
		loot.Apply(p, reward)
	}
	sink.Announce(fmt.Sprintf("[%s] %s is slain by %s: %s",
		sl.ID, dead.Name, playerName(s, killerID), loot.Describe(reward)))
	Vacate(s, i, sink)
	return true
}

func playerName(s *types.State, id int) string {
	if p := state.FindPlayer(s, id); p != nil {
		return p.Name
	}
	return fmt.Sprintf("Player %d", id)
}
