// Package spawn generates random monsters on the difficulty curve: the
// level mix rises with the number of monsters spawned so far, and HP
// scales with the table's total attack power and the turn.
package spawn

import (
	"fmt"
	"math"

	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/types"
)

// Source is the randomness the generator needs. The engine's seeded RNG
// satisfies it.
type Source interface {
	Intn(n int) int
	Chance(p float64) bool
}

// elementPool is drawn uniformly; the no-element tag is half as likely.
var elementPool = []types.Element{
	types.ElementFire, types.ElementFire,
	types.ElementWater, types.ElementWater,
	types.ElementWood, types.ElementWood,
	types.ElementNone,
}

// Levels returns the level pool for the given spawn count.
func Levels(spawnCount int) []int {
	switch {
	case spawnCount < 3:
		return []int{1}
	case spawnCount < 6:
		return []int{1, 1, 1, 2, 2}
	case spawnCount < 9:
		return []int{1, 2, 2, 2, 2}
	case spawnCount < 12:
		return []int{2, 2, 2, 3, 3}
	case spawnCount < 15:
		return []int{2, 3, 3, 3, 3}
	default:
		return []int{3}
	}
}

// AverageAttack is the roster's summed attack over all elements, divided
// by the number of elements.
func AverageAttack(players []types.Player) float64 {
	total := 0
	for _, p := range players {
		for _, v := range p.Attack {
			total += v
		}
	}
	return float64(total) / float64(len(state.Elements))
}

// AverageHP is the curve's centre for a new monster.
func AverageHP(avgAttack float64, spawnCount, turn, level int) float64 {
	base := avgAttack*1.5 + float64(spawnCount)*0.8 + float64(turn)*0.5 + float64(level)*3
	return math.Pow(base, 0.8)
}

// HPRange returns the inclusive maxHP bounds around avg, never below 1.
func HPRange(avg float64) (lo, hi int) {
	lo = int(math.Floor(avg - 2))
	hi = int(math.Ceil(avg + 2))
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Generate rolls a fresh monster for the session's current turn and
// spawn count.
func Generate(s *types.State, defs *state.Defs, r Source) types.Monster {
	pool := Levels(s.SpawnCount)
	level := pool[r.Intn(len(pool))]

	lo, hi := HPRange(AverageHP(AverageAttack(s.Players), s.SpawnCount, s.Turn, level))
	maxHP := lo + r.Intn(hi-lo+1)

	el := elementPool[r.Intn(len(elementPool))]

	return types.Monster{
		Name:    name(defs, level, el, r),
		MaxHP:   maxHP,
		HP:      maxHP,
		Element: el,
		Level:   level,
		Loot:    rollLoot(level, r),
	}
}

// Next returns the next monster for the random spawner: the oldest primed
// monster when one is waiting, otherwise a generated one.
func Next(s *types.State, defs *state.Defs, r Source) types.Monster {
	if len(s.ForcedMonsters) > 0 {
		m := s.ForcedMonsters[0]
		s.ForcedMonsters = s.ForcedMonsters[1:]
		if len(s.ForcedMonsters) == 0 {
			s.ForcedMonsters = nil
		}
		return m
	}
	return Generate(s, defs, r)
}

func name(defs *state.Defs, level int, el types.Element, r Source) string {
	names := defs.Names[level][el]
	if len(names) == 0 {
		return fmt.Sprintf("Level %d %s monster", level, el)
	}
	return names[r.Intn(len(names))]
}

func rollLoot(level int, r Source) types.MonsterLoot {
	var loot types.MonsterLoot
	units := 1
	if level >= 2 {
		units = 2
	}
	for range units {
		if r.Chance(0.5) {
			loot.Gold++
		} else {
			loot.ManaStone++
		}
	}
	if r.Chance(0.4) {
		loot.SpellCard = state.SpellCards[r.Intn(len(state.SpellCards))]
	}
	return loot
}
