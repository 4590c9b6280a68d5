// Package types defines the shared data structures for the siege engine.
// This package contains only type definitions: no logic, no methods.
package types

// Phase is one step of the turn cycle.
type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhaseEvent      Phase = "event"
	PhasePrep       Phase = "prep"
	PhaseAction     Phase = "action"
	PhaseResolution Phase = "resolution"
)

// Element is the elemental tag of a monster or a wand attack.
type Element string

const (
	ElementNone  Element = "none"
	ElementFire  Element = "fire"
	ElementWater Element = "water"
	ElementWood  Element = "wood"
)

// Card is an attack card kind. The wand is the baseline, infinite-use card.
type Card string

const (
	CardWand   Card = "wand"
	CardIce    Card = "ice"
	CardBomb   Card = "bomb"
	CardPoison Card = "poison"
)

// SlotID names one of the three fixed battlefield positions.
type SlotID string

const (
	SlotA SlotID = "A"
	SlotB SlotID = "B"
	SlotC SlotID = "C"
)

// Trigger is the point in the turn at which a monster skill fires.
type Trigger string

const (
	TriggerAppear    Trigger = "on_appear"
	TriggerHit       Trigger = "on_hit"
	TriggerTurnStart Trigger = "on_turn_start"
	TriggerTurnEnd   Trigger = "on_turn_end"
)

// Inventory is a player's loot: currencies plus spell-card counts.
// Counts may go negative when spell cards are not guarded.
type Inventory struct {
	Gold       int          `json:"gold"`
	ManaStone  int          `json:"manaStone"`
	SpellCards map[Card]int `json:"spellCards"`
}

// Player is one team at the table. ID doubles as the turn-rotation key.
type Player struct {
	ID     int             `json:"id"`
	Name   string          `json:"name"`
	Attack map[Element]int `json:"attack"`
	Loot   Inventory       `json:"loot"`
}

// MonsterLoot is what a monster drops on death. SpellCard is empty when
// the monster carries no card.
type MonsterLoot struct {
	Gold      int  `json:"gold"`
	ManaStone int  `json:"manaStone"`
	SpellCard Card `json:"spellCard,omitempty"`
}

// Monster is a battlefield or queued enemy.
type Monster struct {
	ID      string      `json:"id,omitempty"` // template ID, empty for generated monsters
	Name    string      `json:"name"`
	MaxHP   int         `json:"maxHP"`
	HP      int         `json:"HP"`
	Element Element     `json:"type"`
	Level   int         `json:"level,omitempty"`
	Loot    MonsterLoot `json:"loot"`
	Skills  []string    `json:"skills,omitempty"`
}

// Slot is a permanent battlefield container. Monster is nil when empty,
// PoisonedBy is nil when unpoisoned, LastIcedBy is 0 when unfrozen.
type Slot struct {
	ID         SlotID   `json:"id"`
	Monster    *Monster `json:"monster"`
	PoisonedBy []int    `json:"poisonedBy"`
	LastIcedBy int      `json:"lastIcedBy,omitempty"`
}

// AttackAction is one player's submitted move for the turn.
type AttackAction struct {
	PlayerID   int     `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Slot       SlotID  `json:"battlefieldId"`
	Card       Card    `json:"cardType"`
	Element    Element `json:"element,omitempty"` // wand only
}

// Effect is a single declarative event-effect operation.
type Effect struct {
	Type   string
	Params map[string]any
}

// EventEffect is one weighted outcome of a GameEvent. Weight 0 means 1.
type EventEffect struct {
	Description string   `json:"description"`
	Weight      int      `json:"weighted,omitempty"`
	Ops         []Effect `json:"-"`
}

// GameEvent is a named entry of the event table. An unset (zero) Weight
// draws as 1.
type GameEvent struct {
	Name    string        `json:"name"`
	Weight  int           `json:"weighted,omitempty"`
	Effects []EventEffect `json:"effects"`
}

// EventFlags are per-turn modifiers set by event effects.
// DisabledElement is empty when no element is disabled.
type EventFlags struct {
	DoubleGold        bool    `json:"doubleGold"`
	AllAttacksNeutral bool    `json:"allAttacksNeutral"`
	DisabledElement   Element `json:"disabledElement,omitempty"`
}

// EventOverride is a one-shot manual replacement of the next event draw.
type EventOverride struct {
	EventName         string
	EffectDescription string
}

// LogEntry is one line of the chronological game log.
type LogEntry struct {
	Round   int    `json:"round"`
	Phase   Phase  `json:"phase"`
	Message string `json:"message"`
}

// Result is the output of a single text command.
type Result struct {
	Output []string
	Err    error
}

// State is the complete mutable game session.
type State struct {
	Turn           int
	Phase          Phase
	Players        []Player
	Battlefield    [3]Slot
	Queue          []Monster
	ForcedMonsters []Monster
	Event          GameEvent
	Flags          EventFlags
	Override       *EventOverride
	Actions        []AttackAction
	Log            []LogEntry
	SupervisorLog  []LogEntry
	SpawnCount     int
	RNGSeed        int64
	RNGPosition    int64
	CommandLog     []string
}
