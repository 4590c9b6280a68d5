// Package loader loads Lua content (bestiary, name tables, event table)
// into Go structs at startup. The Lua VM is discarded after loading.
package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/types"
	lua "github.com/yuin/gopher-lua"
)

// rawMonster holds a bestiary table before compilation.
type rawMonster struct {
	id    string
	table *lua.LTable
}

// rawNames holds one level's name table before compilation.
type rawNames struct {
	level int
	table *lua.LTable
}

// rawEvent holds an event table before compilation.
type rawEvent struct {
	name  string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// toGoValue converts a Lua value to a Go value recursively.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(val)
	case *lua.LTable:
		// Sequential integer keys starting at 1 make an array.
		maxN := val.MaxN()
		if maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

// tableToStrings converts the array part of a Lua table to strings.
func tableToStrings(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{
		Monsters:   map[string]types.Monster{},
		Names:      map[int]map[types.Element][]string{},
		QuietEvent: state.Quiet,
	}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	defs.Title = getString(coll.game, "title")
	if q := getString(coll.game, "quiet_event"); q != "" {
		defs.QuietEvent = q
	}

	for _, raw := range coll.monsters {
		if _, dup := defs.Monsters[raw.id]; dup {
			return nil, fmt.Errorf("duplicate monster %q", raw.id)
		}
		defs.Monsters[raw.id] = compileMonster(raw)
	}

	for _, raw := range coll.names {
		tiers := defs.Names[raw.level]
		if tiers == nil {
			tiers = map[types.Element][]string{}
			defs.Names[raw.level] = tiers
		}
		raw.table.ForEach(func(k, v lua.LValue) {
			ks, ok := k.(lua.LString)
			list, isTbl := v.(*lua.LTable)
			if !ok || !isTbl {
				return
			}
			el := types.Element(ks)
			tiers[el] = append(tiers[el], tableToStrings(list)...)
		})
	}

	seen := map[string]bool{}
	for _, raw := range coll.events {
		if seen[raw.name] {
			return nil, fmt.Errorf("duplicate event %q", raw.name)
		}
		seen[raw.name] = true
		defs.Events = append(defs.Events, compileEvent(raw))
	}
	return defs, nil
}

func compileMonster(raw rawMonster) types.Monster {
	tbl := raw.table
	m := types.Monster{
		ID:      raw.id,
		Name:    getString(tbl, "name"),
		MaxHP:   getInt(tbl, "hp"),
		Element: types.Element(getString(tbl, "element")),
		Level:   getInt(tbl, "level"),
		Skills:  tableToStrings(getTable(tbl, "skills")),
	}
	m.HP = m.MaxHP
	if m.Name == "" {
		m.Name = raw.id
	}
	if m.Element == "" {
		m.Element = types.ElementNone
	}
	if lootTbl := getTable(tbl, "loot"); lootTbl != nil {
		m.Loot = types.MonsterLoot{
			Gold:      getInt(lootTbl, "gold"),
			ManaStone: getInt(lootTbl, "mana_stone"),
			SpellCard: types.Card(getString(lootTbl, "card")),
		}
	}
	return m
}

func compileEvent(raw rawEvent) types.GameEvent {
	ev := types.GameEvent{
		Name:   raw.name,
		Weight: getInt(raw.table, "weight"),
	}
	effTbl := getTable(raw.table, "effects")
	if effTbl == nil {
		return ev
	}
	for i := 1; i <= effTbl.MaxN(); i++ {
		t, ok := effTbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			continue
		}
		ev.Effects = append(ev.Effects, types.EventEffect{
			Description: getString(t, "description"),
			Weight:      getInt(t, "weight"),
			Ops:         compileOps(getTable(t, "ops")),
		})
	}
	return ev
}

func compileOps(tbl *lua.LTable) []types.Effect {
	if tbl == nil {
		return nil
	}
	var ops []types.Effect
	for i := 1; i <= tbl.MaxN(); i++ {
		if t, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			ops = append(ops, compileOp(t))
		}
	}
	return ops
}

func compileOp(tbl *lua.LTable) types.Effect {
	params := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok && string(ks) != "type" {
			params[string(ks)] = toGoValue(v)
		}
	})
	return types.Effect{Type: getString(tbl, "type"), Params: params}
}

// sortedLuaFiles returns .lua files with game.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
