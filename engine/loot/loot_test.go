package loot

import (
	"testing"

	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/types"
)

func TestReward(t *testing.T) {
	m := types.Monster{Loot: types.MonsterLoot{Gold: 2, ManaStone: 1, SpellCard: types.CardIce}}

	tests := []struct {
		name   string
		double bool
		want   Delta
	}{
		{"normal", false, Delta{Gold: 2, ManaStone: 1, Card: types.CardIce}},
		{"double gold", true, Delta{Gold: 4, ManaStone: 1, Card: types.CardIce}},
	}
	for _, tt := range tests {
		got := Reward(m, tt.double)
		if got != tt.want {
			t.Errorf("%s: Reward = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestApply_ConservesLoot(t *testing.T) {
	p := state.NewPlayer(1)
	Apply(&p, Delta{Gold: 4, ManaStone: 1, Card: types.CardPoison})

	if p.Loot.Gold != 4 {
		t.Errorf("gold = %d, want 4", p.Loot.Gold)
	}
	if p.Loot.ManaStone != 4 {
		t.Errorf("mana stone = %d, want 4", p.Loot.ManaStone)
	}
	if p.Loot.SpellCards[types.CardPoison] != 1 {
		t.Errorf("poison cards = %d, want 1", p.Loot.SpellCards[types.CardPoison])
	}
	if p.Loot.SpellCards[types.CardIce] != 0 {
		t.Errorf("ice cards = %d, want 0", p.Loot.SpellCards[types.CardIce])
	}
}

func TestApply_NoCard(t *testing.T) {
	p := state.NewPlayer(1)
	Apply(&p, Delta{Gold: 1})
	for card, n := range p.Loot.SpellCards {
		if card != types.CardWand && n != 0 {
			t.Errorf("%s = %d, want 0", card, n)
		}
	}
}

func TestConsume(t *testing.T) {
	p := state.NewPlayer(1)
	Consume(&p, types.CardWand)
	if p.Loot.SpellCards[types.CardWand] != 1 {
		t.Errorf("wand should not be consumed, got %d", p.Loot.SpellCards[types.CardWand])
	}
	Consume(&p, types.CardIce)
	if p.Loot.SpellCards[types.CardIce] != -1 {
		t.Errorf("ice = %d, want -1 (counts are not floored)", p.Loot.SpellCards[types.CardIce])
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		d    Delta
		want string
	}{
		{Delta{}, "no loot"},
		{Delta{Gold: 2}, "2 gold"},
		{Delta{Gold: 4, ManaStone: 1, Card: types.CardBomb}, "4 gold, 1 mana stone, 1 bomb card"},
	}
	for _, tt := range tests {
		if got := Describe(tt.d); got != tt.want {
			t.Errorf("Describe(%+v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
