package combat

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nathoo/siegecore/engine/journal"
	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/types"
)

// siege returns a session with n players and the given monsters in slots
// A, B, C (nil leaves a slot empty).
func siege(n int, monsters ...*types.Monster) *types.State {
	s := state.NewState(state.DefaultDefs())
	s.Players = state.NewRoster(n)
	for i, m := range monsters {
		if m != nil {
			c := *m
			s.Battlefield[i].Monster = &c
		}
	}
	return s
}

func monster(name string, el types.Element, hp int) *types.Monster {
	return &types.Monster{Name: name, Element: el, HP: hp, MaxHP: hp, Loot: types.MonsterLoot{Gold: 2, ManaStone: 1}}
}

func wandAt(player int, slot types.SlotID, el types.Element) types.AttackAction {
	return types.AttackAction{PlayerID: player, Slot: slot, Card: types.CardWand, Element: el}
}

func spell(player int, slot types.SlotID, card types.Card) types.AttackAction {
	return types.AttackAction{PlayerID: player, Slot: slot, Card: card}
}

func hp(s *types.State, i int) int {
	if s.Battlefield[i].Monster == nil {
		return -1
	}
	return s.Battlefield[i].Monster.HP
}

func TestResolve_NeutralWand(t *testing.T) {
	s := siege(6, monster("Fire Slime", types.ElementFire, 5))
	s.Players[0].Attack[types.ElementFire] = 3

	Resolve(s, []types.AttackAction{wandAt(1, types.SlotA, types.ElementFire)}, journal.Discard)
	if got := hp(s, 0); got != 2 {
		t.Errorf("HP = %d, want 2", got)
	}
}

func TestResolve_WeakWandDoesNothing(t *testing.T) {
	s := siege(6, monster("Fire Slime", types.ElementFire, 5))
	s.Players[0].Attack[types.ElementWood] = 3

	Resolve(s, []types.AttackAction{wandAt(1, types.SlotA, types.ElementWood)}, journal.Discard)
	if got := hp(s, 0); got != 5 {
		t.Errorf("HP = %d, want 5", got)
	}
}

func TestResolve_StrongWandDoubles(t *testing.T) {
	s := siege(2, monster("Fire Slime", types.ElementFire, 10))
	s.Players[0].Attack[types.ElementWater] = 3

	Resolve(s, []types.AttackAction{wandAt(1, types.SlotA, types.ElementWater)}, journal.Discard)
	if got := hp(s, 0); got != 4 {
		t.Errorf("HP = %d, want 4", got)
	}
}

func TestResolve_DisabledElement(t *testing.T) {
	s := siege(2, monster("Wood Slime", types.ElementWood, 10))
	s.Players[0].Attack[types.ElementFire] = 3
	s.Flags.DisabledElement = types.ElementFire

	Resolve(s, []types.AttackAction{wandAt(1, types.SlotA, types.ElementFire)}, journal.Discard)
	if got := hp(s, 0); got != 10 {
		t.Errorf("HP = %d, want 10", got)
	}
}

func TestResolve_PoisonTicksBeforeNextAction(t *testing.T) {
	s := siege(3, monster("Ghost", types.ElementNone, 5), monster("Skeleton", types.ElementNone, 5))
	s.Battlefield[0].PoisonedBy = []int{2}
	var rec journal.Recorder

	Resolve(s, []types.AttackAction{wandAt(3, types.SlotB, types.ElementFire)}, &rec)
	if got := hp(s, 0); got != 4 {
		t.Errorf("slot A HP = %d, want 4", got)
	}
	if len(rec.Noted) == 0 || rec.Noted[0] != "[A] Ghost takes 1 poison damage from Player 2 (HP 4)" {
		t.Errorf("first note = %v", rec.Noted)
	}
}

func TestResolve_PoisonCadence(t *testing.T) {
	s := siege(2, monster("Ghost", types.ElementNone, 3), monster("Skeleton", types.ElementNone, 50))
	s.Players[1].Attack[types.ElementFire] = 1

	actions := []types.AttackAction{
		spell(1, types.SlotA, types.CardPoison),
		wandAt(2, types.SlotB, types.ElementFire),
		wandAt(2, types.SlotB, types.ElementFire),
	}
	Resolve(s, actions, journal.Discard)
	// the poison lands on action 1 and ticks before actions 2 and 3
	if got := hp(s, 0); got != 1 {
		t.Errorf("slot A HP = %d, want 1", got)
	}
}

func TestResolve_PoisonChargesOnlyFirstPoisoner(t *testing.T) {
	s := siege(3, monster("Ghost", types.ElementNone, 10), monster("Skeleton", types.ElementNone, 50))
	s.Battlefield[0].PoisonedBy = []int{1, 2, 3}

	Resolve(s, []types.AttackAction{wandAt(1, types.SlotB, types.ElementFire)}, journal.Discard)
	if got := hp(s, 0); got != 9 {
		t.Errorf("HP = %d, want 9 (one tick per action)", got)
	}
}

func TestResolve_PoisonKillCreditsPoisoner(t *testing.T) {
	s := siege(2, monster("Ghost", types.ElementNone, 1), monster("Skeleton", types.ElementNone, 50))
	s.Battlefield[0].PoisonedBy = []int{2}
	s.Queue = []types.Monster{*monster("Next", types.ElementFire, 7)}

	Resolve(s, []types.AttackAction{wandAt(1, types.SlotB, types.ElementFire)}, journal.Discard)
	if s.Players[1].Loot.Gold != 2 || s.Players[1].Loot.ManaStone != 4 {
		t.Errorf("poisoner loot = %+v", s.Players[1].Loot)
	}
	if s.Battlefield[0].Monster == nil || s.Battlefield[0].Monster.Name != "Next" {
		t.Fatalf("slot A = %+v, want Next", s.Battlefield[0].Monster)
	}
	if s.Battlefield[0].PoisonedBy != nil {
		t.Errorf("poison should be cleared on replacement, got %v", s.Battlefield[0].PoisonedBy)
	}
}

func TestResolve_FrozenSlotDoesNotTick(t *testing.T) {
	s := siege(2, monster("Ghost", types.ElementNone, 5), monster("Skeleton", types.ElementNone, 50))
	s.Battlefield[0].PoisonedBy = []int{2}
	s.Battlefield[0].LastIcedBy = 1

	Resolve(s, []types.AttackAction{wandAt(2, types.SlotB, types.ElementFire)}, journal.Discard)
	if got := hp(s, 0); got != 5 {
		t.Errorf("HP = %d, want 5", got)
	}
}

func TestResolve_FreezeLock(t *testing.T) {
	s := siege(2, monster("Skeleton", types.ElementNone, 20))
	s.Players[0].Attack[types.ElementFire] = 3
	s.Players[1].Attack[types.ElementFire] = 4
	var rec journal.Recorder

	Resolve(s, []types.AttackAction{
		spell(1, types.SlotA, types.CardIce),
		wandAt(2, types.SlotA, types.ElementFire),
	}, &rec)
	if got := hp(s, 0); got != 18 {
		t.Errorf("after ice and blocked wand HP = %d, want 18", got)
	}
	if s.Battlefield[0].LastIcedBy != 1 {
		t.Errorf("lock = %d, want 1", s.Battlefield[0].LastIcedBy)
	}
	if !contains(rec.Noted, "Player 2's attack on [A] is nullified: frozen by Player 1") {
		t.Errorf("missing nullified note: %v", rec.Noted)
	}

	Resolve(s, []types.AttackAction{wandAt(1, types.SlotA, types.ElementFire)}, journal.Discard)
	if s.Battlefield[0].LastIcedBy != 0 {
		t.Errorf("lock = %d, want cleared", s.Battlefield[0].LastIcedBy)
	}
	if got := hp(s, 0); got != 15 {
		t.Errorf("after locker attack HP = %d, want 15", got)
	}
	if s.Players[0].Loot.SpellCards[types.CardIce] != -1 {
		t.Errorf("ice count = %d, want -1", s.Players[0].Loot.SpellCards[types.CardIce])
	}
}

func TestResolve_BombBypassesFreeze(t *testing.T) {
	s := siege(2,
		monster("a", types.ElementNone, 5),
		monster("b", types.ElementFire, 5),
		monster("c", types.ElementWood, 5))
	s.Battlefield[1].LastIcedBy = 1

	Resolve(s, []types.AttackAction{spell(2, types.SlotA, types.CardBomb)}, journal.Discard)
	for i := range s.Battlefield {
		if got := hp(s, i); got != 3 {
			t.Errorf("slot %d HP = %d, want 3", i, got)
		}
	}
	if s.Battlefield[1].LastIcedBy != 1 {
		t.Errorf("bomb should leave the lock, got %d", s.Battlefield[1].LastIcedBy)
	}
}

func TestResolve_BombFrozenTarget(t *testing.T) {
	cases := []struct {
		name     string
		bomber   int
		wantLock int
		wantNote string
	}{
		{"locker releases", 1, 0, "thaws [A]"},
		{"other player bypasses", 2, 1, "ignores the freeze on [A]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := siege(2, monster("a", types.ElementNone, 5), monster("b", types.ElementNone, 5))
			s.Battlefield[0].LastIcedBy = 1
			var rec journal.Recorder

			Resolve(s, []types.AttackAction{spell(tc.bomber, types.SlotA, types.CardBomb)}, &rec)
			if got := s.Battlefield[0].LastIcedBy; got != tc.wantLock {
				t.Errorf("LastIcedBy = %d, want %d", got, tc.wantLock)
			}
			for i := 0; i < 2; i++ {
				if got := hp(s, i); got != 3 {
					t.Errorf("slot %d HP = %d, want 3", i, got)
				}
			}
			found := false
			for _, n := range rec.Noted {
				if strings.Contains(n, tc.wantNote) {
					found = true
				}
			}
			if !found {
				t.Errorf("notes %q missing %q", rec.Noted, tc.wantNote)
			}
		})
	}
}

func TestResolve_BombKillsCreditOnce(t *testing.T) {
	s := siege(2, monster("a", types.ElementNone, 2), monster("b", types.ElementNone, 2))
	s.Queue = []types.Monster{*monster("next", types.ElementNone, 9)}

	Resolve(s, []types.AttackAction{spell(1, types.SlotA, types.CardBomb)}, journal.Discard)
	if got := s.Players[0].Loot.Gold; got != 4 {
		t.Errorf("gold = %d, want 4 (two kills, 2 each)", got)
	}
	if got := hp(s, 0); got != 9 {
		t.Errorf("slot A HP = %d, want refilled 9", got)
	}
	if s.Battlefield[1].Monster != nil {
		t.Errorf("slot B should stay empty, got %+v", s.Battlefield[1].Monster)
	}
}

func TestResolve_KillLoot(t *testing.T) {
	m := monster("Troll", types.ElementNone, 2)
	m.Loot = types.MonsterLoot{Gold: 3, ManaStone: 1, SpellCard: types.CardIce}
	s := siege(2, m)
	s.Flags.DoubleGold = true
	var rec journal.Recorder

	Resolve(s, []types.AttackAction{spell(1, types.SlotA, types.CardIce)}, &rec)
	p := s.Players[0]
	if p.Loot.Gold != 6 || p.Loot.ManaStone != 4 {
		t.Errorf("loot = %+v, want 6 gold 4 mana", p.Loot)
	}
	// spent one ice, gained one back from the drop
	if p.Loot.SpellCards[types.CardIce] != 0 {
		t.Errorf("ice = %d, want 0", p.Loot.SpellCards[types.CardIce])
	}
	if s.Battlefield[0].LastIcedBy != 0 {
		t.Error("a killing ice should not leave a lock on the empty slot")
	}
	if len(rec.Announced) != 1 || rec.Announced[0] != "[A] Troll is slain by Player 1: 6 gold, 1 mana stone, 1 ice card" {
		t.Errorf("announcements = %v", rec.Announced)
	}
}

func TestResolve_StaleActionsSkipped(t *testing.T) {
	s := siege(2, monster("a", types.ElementNone, 5))
	s.Players[0].Attack[types.ElementFire] = 1
	var rec journal.Recorder

	Resolve(s, []types.AttackAction{
		wandAt(9, types.SlotA, types.ElementFire),
		wandAt(1, types.SlotB, types.ElementFire),
		spell(1, types.SlotC, types.CardBomb),
		wandAt(1, types.SlotA, types.ElementFire),
	}, &rec)
	if got := hp(s, 0); got != 4 {
		t.Errorf("HP = %d, want 4", got)
	}
	if len(rec.Announced) != 0 {
		t.Errorf("stale actions should not announce: %v", rec.Announced)
	}
	if s.Players[0].Loot.SpellCards[types.CardBomb] != 0 {
		t.Error("stale bomb should not be consumed")
	}
}

func TestResolve_OnHitFiresAfterDamage(t *testing.T) {
	m := monster("Wisp", types.ElementFire, 10)
	m.Skills = []string{"element_cycle"}
	s := siege(2, m)
	s.Players[0].Attack[types.ElementWater] = 1

	Resolve(s, []types.AttackAction{
		wandAt(1, types.SlotA, types.ElementWater), // water beats fire: 2
		wandAt(1, types.SlotA, types.ElementWater), // now water vs water: 1
	}, journal.Discard)
	if got := hp(s, 0); got != 7 {
		t.Errorf("HP = %d, want 7", got)
	}
	if got := s.Battlefield[0].Monster.Element; got != types.ElementWood {
		t.Errorf("element = %s, want wood", got)
	}
}

func TestPreview_Pure(t *testing.T) {
	s := siege(2, monster("a", types.ElementNone, 5), monster("b", types.ElementNone, 5))
	s.Players[0].Attack[types.ElementFire] = 2
	s.Battlefield[1].PoisonedBy = []int{2}
	actions := []types.AttackAction{
		wandAt(1, types.SlotA, types.ElementFire),
		spell(2, types.SlotB, types.CardBomb),
	}
	before := state.Clone(s)

	first := Preview(s, actions)
	second := Preview(s, actions)

	if !reflect.DeepEqual(s, before) {
		t.Error("Preview mutated the session")
	}
	if !reflect.DeepEqual(first.Battlefield, second.Battlefield) {
		t.Error("Preview is not repeatable")
	}
	if got := hp(first, 0); got != 1 {
		t.Errorf("preview slot A HP = %d, want 1", got)
	}
	if len(first.Log) != len(s.Log) {
		t.Error("Preview wrote to the log")
	}
}

func TestPreview_MatchesCommit(t *testing.T) {
	s := siege(3, monster("a", types.ElementFire, 6), monster("b", types.ElementWood, 4), monster("c", types.ElementWater, 8))
	for i := range s.Players {
		s.Players[i].Attack[types.ElementWater] = 2
		s.Players[i].Attack[types.ElementFire] = 1
	}
	s.Queue = []types.Monster{*monster("q", types.ElementNone, 3)}
	actions := []types.AttackAction{
		spell(1, types.SlotC, types.CardPoison),
		wandAt(2, types.SlotA, types.ElementWater),
		spell(3, types.SlotB, types.CardBomb),
	}

	preview := Preview(s, actions)
	Resolve(s, actions, journal.New(s))

	if !reflect.DeepEqual(preview.Battlefield, s.Battlefield) {
		t.Errorf("preview %+v != commit %+v", preview.Battlefield, s.Battlefield)
	}
	if !reflect.DeepEqual(preview.Players, s.Players) {
		t.Error("preview and commit disagree on players")
	}
}

func TestRefill(t *testing.T) {
	s := siege(2, nil, monster("b", types.ElementNone, 5))
	s.Queue = []types.Monster{
		{Name: "q1", MaxHP: 4},
		{Name: "q2", MaxHP: 6, HP: 6},
		{Name: "q3", MaxHP: 1, HP: 1},
	}
	s.Battlefield[0].PoisonedBy = []int{1}

	Refill(s, journal.Discard)
	if got := s.Battlefield[0].Monster.Name; got != "q1" {
		t.Errorf("slot A = %s, want q1", got)
	}
	if got := hp(s, 0); got != 4 {
		t.Errorf("HP = %d, want 4 (filled from maxHP)", got)
	}
	if got := s.Battlefield[2].Monster.Name; got != "q2" {
		t.Errorf("slot C = %s, want q2", got)
	}
	if s.Battlefield[0].PoisonedBy != nil {
		t.Error("placement should clear statuses")
	}
	if len(s.Queue) != 1 || s.Queue[0].Name != "q3" {
		t.Errorf("queue = %+v", s.Queue)
	}
}

func TestPlace_FiresOnAppear(t *testing.T) {
	s := siege(2)
	brood := *monster("Brood", types.ElementNone, 9)
	brood.Skills = []string{"summoner"}

	Place(s, 0, brood, journal.Discard)
	if len(s.Queue) != 1 || s.Queue[0].MaxHP != 3 {
		t.Errorf("queue = %+v, want one 3 HP minion", s.Queue)
	}
}

func contains(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
