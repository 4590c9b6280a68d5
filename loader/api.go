package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerOpHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", quiet_event = "..." }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Monster "id" { ... }: curried, Monster("id") returns a function that takes a table.
	L.SetGlobal("Monster", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.monsters = append(coll.monsters, rawMonster{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Names(level) { fire = {...}, water = {...}, wood = {...}, none = {...} }
	L.SetGlobal("Names", L.NewFunction(func(L *lua.LState) int {
		level := L.CheckInt(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.names = append(coll.names, rawNames{level: level, table: tbl})
			return 0
		}))
		return 1
	}))

	// Event "name" { weight = n, effects = { Effect {...}, ... } }
	L.SetGlobal("Event", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.events = append(coll.events, rawEvent{name: name, table: tbl})
			return 0
		}))
		return 1
	}))

	// Effect { description = "...", weight = n, ops = {...} }: pass-through.
	L.SetGlobal("Effect", L.NewFunction(func(L *lua.LState) int {
		L.Push(L.CheckTable(1))
		return 1
	}))
}

// op builds an operation table of the given type.
func op(L *lua.LState, typ string) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("type", lua.LString(typ))
	return tbl
}

func registerOpHelpers(L *lua.LState) {
	// Say("text")
	L.SetGlobal("Say", L.NewFunction(func(L *lua.LState) int {
		tbl := op(L, "say")
		tbl.RawSetString("text", lua.LString(L.CheckString(1)))
		L.Push(tbl)
		return 1
	}))

	// Grant { gold = n, mana_stone = n, card = "ice", count = n }: every player.
	L.SetGlobal("Grant", L.NewFunction(func(L *lua.LState) int {
		args := L.CheckTable(1)
		tbl := op(L, "grant")
		args.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				tbl.RawSetString(string(ks), v)
			}
		})
		L.Push(tbl)
		return 1
	}))

	// SetFlag("double_gold", true)
	L.SetGlobal("SetFlag", L.NewFunction(func(L *lua.LState) int {
		tbl := op(L, "set_flag")
		tbl.RawSetString("flag", lua.LString(L.CheckString(1)))
		tbl.RawSetString("value", lua.LBool(L.OptBool(2, true)))
		L.Push(tbl)
		return 1
	}))

	// DoubleGold() is shorthand for SetFlag("double_gold", true).
	L.SetGlobal("DoubleGold", L.NewFunction(func(L *lua.LState) int {
		tbl := op(L, "set_flag")
		tbl.RawSetString("flag", lua.LString("double_gold"))
		tbl.RawSetString("value", lua.LTrue)
		L.Push(tbl)
		return 1
	}))

	// Neutralize() is shorthand for SetFlag("all_attacks_neutral", true).
	L.SetGlobal("Neutralize", L.NewFunction(func(L *lua.LState) int {
		tbl := op(L, "set_flag")
		tbl.RawSetString("flag", lua.LString("all_attacks_neutral"))
		tbl.RawSetString("value", lua.LTrue)
		L.Push(tbl)
		return 1
	}))

	// DisableElement("fire")
	L.SetGlobal("DisableElement", L.NewFunction(func(L *lua.LState) int {
		tbl := op(L, "disable_element")
		tbl.RawSetString("element", lua.LString(L.CheckString(1)))
		L.Push(tbl)
		return 1
	}))

	// Spawn({ "fire_goblin", ... }, "front")
	L.SetGlobal("Spawn", L.NewFunction(func(L *lua.LState) int {
		tbl := op(L, "spawn")
		tbl.RawSetString("monsters", L.CheckTable(1))
		tbl.RawSetString("position", lua.LString(L.OptString(2, "back")))
		L.Push(tbl)
		return 1
	}))

	// HealField(n)
	L.SetGlobal("HealField", L.NewFunction(func(L *lua.LState) int {
		tbl := op(L, "heal_field")
		tbl.RawSetString("amount", L.CheckNumber(1))
		L.Push(tbl)
		return 1
	}))

	// Stop()
	L.SetGlobal("Stop", L.NewFunction(func(L *lua.LState) int {
		L.Push(op(L, "stop"))
		return 1
	}))
}
