package state

import "github.com/nathoo/siegecore/types"

// Quiet is the name of the built-in no-op event.
const Quiet = "Calm Skies"

// DefaultDefs returns the built-in content used when no content directory
// is configured.
func DefaultDefs() *Defs {
	return &Defs{
		Title:      "Monster Siege",
		Monsters:   defaultMonsters(),
		Names:      defaultNames(),
		Events:     defaultEvents(),
		QuietEvent: Quiet,
	}
}

func goblin(name string, el types.Element) types.Monster {
	return types.Monster{
		Name:    name,
		MaxHP:   5,
		HP:      5,
		Element: el,
		Level:   1,
		Loot:    types.MonsterLoot{Gold: 2},
	}
}

func defaultMonsters() map[string]types.Monster {
	return map[string]types.Monster{
		"fire_goblin":  goblin("Scorching Goblin", types.ElementFire),
		"water_goblin": goblin("Frigid Goblin", types.ElementWater),
		"wood_goblin":  goblin("Feral Goblin", types.ElementWood),
		"prism_wisp": {
			Name: "Prism Wisp", MaxHP: 8, HP: 8, Element: types.ElementFire, Level: 2,
			Loot:   types.MonsterLoot{Gold: 1, ManaStone: 1},
			Skills: []string{"element_cycle"},
		},
		"moss_troll": {
			Name: "Moss Troll", MaxHP: 12, HP: 12, Element: types.ElementWood, Level: 3,
			Loot:   types.MonsterLoot{Gold: 2, ManaStone: 1, SpellCard: types.CardBomb},
			Skills: []string{"regen"},
		},
		"tide_cleric": {
			Name: "Tide Cleric", MaxHP: 9, HP: 9, Element: types.ElementWater, Level: 2,
			Loot:   types.MonsterLoot{ManaStone: 2},
			Skills: []string{"cleanse"},
		},
		"brood_mother": {
			Name: "Brood Mother", MaxHP: 15, HP: 15, Element: types.ElementNone, Level: 4,
			Loot:   types.MonsterLoot{Gold: 3, ManaStone: 1, SpellCard: types.CardPoison},
			Skills: []string{"summoner"},
		},
	}
}

func defaultNames() map[int]map[types.Element][]string {
	return map[int]map[types.Element][]string{
		1: {
			types.ElementFire:  {"Fire Slime", "Fire Sprite", "Fire Hilichurl"},
			types.ElementWater: {"Water Slime", "Water Sprite", "Ice Hilichurl"},
			types.ElementWood:  {"Grass Slime", "Grass Sprite"},
			types.ElementNone:  {"Skeleton", "Ghost"},
		},
		2: {
			types.ElementFire:  {"Burning Slime", "Volcano Gnome"},
			types.ElementWater: {"Liquid Slime", "Tundra Gnome"},
			types.ElementWood:  {"Verdant Slime", "Forest Gnome"},
			types.ElementNone:  {"Troglodyte"},
		},
		3: {
			types.ElementFire:  {"Cappuccino Assassino", "Ballerina Cappuccina"},
			types.ElementWater: {"Tralalero Tralala", "Trippi Troppi"},
			types.ElementWood:  {"BrrBrr Patapim", "Lirili Larila"},
			types.ElementNone:  {"TungTung Sahur", "Bombardiro Crocodilo"},
		},
		4: {
			types.ElementFire:  {"Flame Giant", "Orlong"},
			types.ElementWater: {"Frost Giant", "Nerlong"},
			types.ElementWood:  {"Forest Giant", "Lizard Warrior"},
			types.ElementNone:  {"Shadow Giant", "Hinox"},
		},
		5: {
			types.ElementFire:  {"Three-Headed Dragon"},
			types.ElementWater: {"Three-Headed Dragon"},
			types.ElementWood:  {"Three-Headed Dragon"},
			types.ElementNone:  {"Shadow Dragon"},
		},
	}
}

func say(text string) types.Effect {
	return types.Effect{Type: "say", Params: map[string]any{"text": text}}
}

func defaultEvents() []types.GameEvent {
	return []types.GameEvent{
		{
			Name:   Quiet,
			Weight: 5,
			Effects: []types.EventEffect{{
				Description: "A quiet turn. Nothing happens.",
				Ops:         []types.Effect{say("A quiet turn. Nothing happens.")},
			}},
		},
		{
			Name:   "Travelling Merchant",
			Weight: 1,
			Effects: []types.EventEffect{{
				Description: "A travelling merchant arrives; players may spend gold on spell cards.",
				Ops:         []types.Effect{say("A travelling merchant arrives; players may spend gold on spell cards.")},
			}},
		},
		{
			Name:   "Spirit Blessing",
			Weight: 1,
			Effects: []types.EventEffect{{
				Description: "The spirits descend; every player gains 1 mana stone.",
				Ops: []types.Effect{
					say("The spirits descend; every player gains 1 mana stone."),
					{Type: "grant", Params: map[string]any{"mana_stone": 1}},
				},
			}},
		},
		{
			Name:   "Elemental Chaos",
			Weight: 3,
			Effects: []types.EventEffect{
				{
					Description: "Elemental energy is in turmoil; all attacks are neutral.",
					Weight:      1,
					Ops: []types.Effect{
						say("Elemental energy is in turmoil; all attacks are neutral."),
						{Type: "set_flag", Params: map[string]any{"flag": "all_attacks_neutral", "value": true}},
					},
				},
				disableEffect(types.ElementFire, "fire"),
				disableEffect(types.ElementWater, "water"),
				disableEffect(types.ElementWood, "wood"),
			},
		},
		{
			Name:   "Goblin Raid",
			Weight: 1,
			Effects: []types.EventEffect{{
				Description: "Three goblins rush the queue: 5 HP, 2 gold each.",
				Ops: []types.Effect{
					say("Three goblins rush the queue: 5 HP, 2 gold each."),
					{Type: "spawn", Params: map[string]any{
						"monsters": []string{"fire_goblin", "water_goblin", "wood_goblin"},
						"position": "front",
					}},
				},
			}},
		},
		{
			Name:   "Gold Rush",
			Weight: 1,
			Effects: []types.EventEffect{{
				Description: "Kills pay double gold this turn.",
				Ops: []types.Effect{
					say("Kills pay double gold this turn."),
					{Type: "set_flag", Params: map[string]any{"flag": "double_gold", "value": true}},
				},
			}},
		},
	}
}

func disableEffect(el types.Element, label string) types.EventEffect {
	text := "Elemental energy is in turmoil; " + label + " damage is nullified."
	return types.EventEffect{
		Description: text,
		Weight:      1,
		Ops: []types.Effect{
			say(text),
			{Type: "disable_element", Params: map[string]any{"element": string(el)}},
		},
	}
}
