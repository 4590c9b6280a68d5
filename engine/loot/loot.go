// Package loot computes what a killer receives when a monster dies.
package loot

import (
	"fmt"
	"strings"

	"github.com/nathoo/siegecore/types"
)

// Delta is the inventory change granted for one kill. Card is empty when
// the monster dropped no spell card.
type Delta struct {
	Gold      int
	ManaStone int
	Card      types.Card
}

// Reward computes the kill reward for m. Gold doubles under doubleGold.
func Reward(m types.Monster, doubleGold bool) Delta {
	gold := m.Loot.Gold
	if doubleGold {
		gold *= 2
	}
	return Delta{
		Gold:      gold,
		ManaStone: m.Loot.ManaStone,
		Card:      m.Loot.SpellCard,
	}
}

// Apply adds d to the player's inventory.
func Apply(p *types.Player, d Delta) {
	p.Loot.Gold += d.Gold
	p.Loot.ManaStone += d.ManaStone
	if d.Card != "" {
		if p.Loot.SpellCards == nil {
			p.Loot.SpellCards = map[types.Card]int{}
		}
		p.Loot.SpellCards[d.Card]++
	}
}

// Consume spends one unit of a spell card. The wand is never spent.
// Counts are not floored at zero.
func Consume(p *types.Player, card types.Card) {
	if card == types.CardWand {
		return
	}
	if p.Loot.SpellCards == nil {
		p.Loot.SpellCards = map[types.Card]int{}
	}
	p.Loot.SpellCards[card]--
}

// Describe renders d for the kill announcement.
func Describe(d Delta) string {
	var parts []string
	if d.Gold != 0 {
		parts = append(parts, fmt.Sprintf("%d gold", d.Gold))
	}
	if d.ManaStone != 0 {
		parts = append(parts, fmt.Sprintf("%d mana stone", d.ManaStone))
	}
	if d.Card != "" {
		parts = append(parts, fmt.Sprintf("1 %s card", d.Card))
	}
	if len(parts) == 0 {
		return "no loot"
	}
	return strings.Join(parts, ", ")
}
