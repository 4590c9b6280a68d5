package engine

import (
	"fmt"
	"slices"

	"github.com/nathoo/siegecore/engine/combat"
	"github.com/nathoo/siegecore/engine/events"
	"github.com/nathoo/siegecore/engine/journal"
	"github.com/nathoo/siegecore/engine/resolve"
	"github.com/nathoo/siegecore/engine/rules"
	"github.com/nathoo/siegecore/engine/skills"
	"github.com/nathoo/siegecore/engine/spawn"
	"github.com/nathoo/siegecore/engine/state"
	"github.com/nathoo/siegecore/types"
)

// PlayerUpdate lists the player fields the game master may edit. Nil
// fields and absent map keys are left as they are.
type PlayerUpdate struct {
	Name       *string
	Attack     map[types.Element]int
	Gold       *int
	ManaStone  *int
	SpellCards map[types.Card]int
}

// GenerateRoster replaces the roster with players 1..n. Setup only.
func (e *Engine) GenerateRoster(n int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generateRoster(n)
}

// Advance moves the session to the next phase, running the work bound to
// the transition.
func (e *Engine) Advance() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.advance()
}

// SubmitAction appends an attack action for the current turn.
func (e *Engine) SubmitAction(a types.AttackAction) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitAction(a)
}

// CancelLastAction removes and returns the most recently submitted action.
func (e *Engine) CancelLastAction() (types.AttackAction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancelLastAction()
}

// SetForcedEvent overrides the next event draw. An empty name clears the
// override. The name is not checked here: an unknown name is reported when
// the draw consumes it.
func (e *Engine) SetForcedEvent(name, effect string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setForcedEvent(name, effect)
}

// Enqueue appends a monster to the back of the queue.
func (e *Engine) Enqueue(m types.Monster) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enqueue(m)
}

// EnqueueTemplate appends a copy of a bestiary template to the queue.
func (e *Engine) EnqueueTemplate(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enqueueTemplate(id)
}

// EnqueueRandom appends the next primed monster, or a generated one, and
// returns it.
func (e *Engine) EnqueueRandom() types.Monster {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enqueueRandom()
}

// PrimeMonster makes a template the next random spawn.
func (e *Engine) PrimeMonster(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.primeMonster(id)
}

// UpdatePlayer edits a player in place. Allowed in every phase.
func (e *Engine) UpdatePlayer(id int, u PlayerUpdate) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.updatePlayer(id, u)
}

// Preview returns the battlefield as it would be if the pending actions
// were resolved now. The session is not modified.
func (e *Engine) Preview() [3]types.Slot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.preview().Battlefield
}

func (e *Engine) generateRoster(n int) error {
	if e.State.Phase != types.PhaseSetup {
		return newError(CodePhase, "the roster can only be generated during setup")
	}
	if n < 1 {
		return newError(CodePolicy, "roster size must be at least 1, got %d", n)
	}
	e.State.Players = state.NewRoster(n)
	journal.New(e.State).Announce(fmt.Sprintf("%d players join the siege", n))
	e.Logger.Info("roster generated", "players", n)
	return nil
}

func (e *Engine) advance() error {
	s := e.State
	if reason := rules.AdvanceBlock(s, e.Policy); reason != "" {
		return newError(CodePolicy, "cannot leave the %s phase: %s", s.Phase, reason)
	}
	from := s.Phase
	sink := journal.New(s)

	switch from {
	case types.PhaseSetup:
		e.enterEvent(sink)
	case types.PhaseEvent:
		s.Phase = types.PhasePrep
	case types.PhasePrep:
		s.Phase = types.PhaseAction
	case types.PhaseAction:
		s.Phase = types.PhaseResolution
		e.commit(sink)
	case types.PhaseResolution:
		state.ResetFlags(s)
		skills.DispatchAll(s, types.TriggerTurnEnd, sink)
		s.Turn++
		state.RotatePlayers(s)
		e.enterEvent(sink)
	}
	combat.Refill(s, sink)

	e.Logger.Info("phase advanced", "from", from, "to", s.Phase, "turn", s.Turn)
	return nil
}

// enterEvent runs the Event phase entry work: turn-start skills, then the
// event draw.
func (e *Engine) enterEvent(sink journal.Sink) {
	s := e.State
	s.Phase = types.PhaseEvent
	sink.Announce(fmt.Sprintf("Turn %d begins", s.Turn))
	skills.DispatchAll(s, types.TriggerTurnStart, sink)

	if err := events.Trigger(s, e.Defs, e.RNG, sink); err != nil {
		sink.Note(fmt.Sprintf("Event draw failed: %v; no event applied", err))
		e.Logger.Error("event draw failed", "turn", s.Turn, "error", err)
	}
}

func (e *Engine) submitAction(a types.AttackAction) error {
	s := e.State
	if s.Phase != types.PhaseAction {
		return newError(CodePhase, "actions can only be submitted during the action phase")
	}
	p := state.FindPlayer(s, a.PlayerID)
	if p == nil {
		return newError(CodeUnknownPlayer, "no player %d", a.PlayerID)
	}
	for _, prev := range s.Actions {
		if prev.PlayerID == a.PlayerID {
			return newError(CodeInvalidAction, "%s has already acted this turn", p.Name)
		}
	}
	if len(s.Actions) >= len(s.Players) {
		return newError(CodeInvalidAction, "every player has already acted")
	}
	if _, ok := state.SlotIndex(a.Slot); !ok {
		return newError(CodeInvalidAction, "no slot %q", a.Slot)
	}

	switch a.Card {
	case types.CardWand:
		if !slices.Contains(state.Elements, a.Element) {
			return newError(CodeInvalidAction, "a wand attack needs an element (fire, water, wood)")
		}
	case types.CardIce, types.CardBomb, types.CardPoison:
		a.Element = ""
	default:
		return newError(CodeInvalidAction, "unknown card %q", a.Card)
	}
	if !rules.CanPlay(*p, a.Card, e.Policy) {
		return newError(CodeInvalidAction, "%s holds no %s cards", p.Name, a.Card)
	}
	a.PlayerName = p.Name
	if why := resolve.Stale(s, a); why != "" {
		return newError(CodeInvalidAction, "%s", why)
	}

	s.Actions = append(s.Actions, a)
	journal.New(s).Note(fmt.Sprintf("%s submits %s", p.Name, describeAction(a)))
	e.Logger.Debug("action submitted", "player", a.PlayerID, "slot", a.Slot, "card", a.Card, "element", a.Element)
	return nil
}

func (e *Engine) cancelLastAction() (types.AttackAction, error) {
	s := e.State
	if len(s.Actions) == 0 {
		return types.AttackAction{}, newError(CodeNothingToCancel, "there is no action to cancel")
	}
	last := s.Actions[len(s.Actions)-1]
	s.Actions = s.Actions[:len(s.Actions)-1]
	journal.New(s).Note(fmt.Sprintf("%s's %s is withdrawn", last.PlayerName, describeAction(last)))
	return last, nil
}

func (e *Engine) setForcedEvent(name, effect string) {
	if name == "" {
		e.State.Override = nil
		return
	}
	e.State.Override = &types.EventOverride{EventName: name, EffectDescription: effect}
	msg := "Next event forced: " + name
	if effect != "" {
		msg += " (" + effect + ")"
	}
	journal.New(e.State).Note(msg)
}

func (e *Engine) enqueue(m types.Monster) error {
	if m.MaxHP <= 0 {
		return newError(CodeInvalidAction, "monster %q needs a positive max HP", m.Name)
	}
	if m.HP <= 0 {
		m.HP = m.MaxHP
	}
	if m.Element == "" {
		m.Element = types.ElementNone
	}
	e.State.SpawnCount++
	state.PushQueue(e.State, m)

	sink := journal.New(e.State)
	sink.Note(fmt.Sprintf("%s joins the queue", describeMonster(m)))
	combat.Refill(e.State, sink)
	return nil
}

func (e *Engine) enqueueTemplate(id string) error {
	m, ok := state.Template(e.Defs, id)
	if !ok {
		return newError(CodeUnknownMonster, "no monster template %q", id)
	}
	return e.enqueue(m)
}

func (e *Engine) enqueueRandom() types.Monster {
	m := spawn.Next(e.State, e.Defs, e.RNG)
	if err := e.enqueue(m); err != nil {
		// Generated monsters always have positive HP; primed ones come from templates.
		e.Logger.Error("random monster rejected", "monster", m.Name, "error", err)
	}
	return m
}

func (e *Engine) primeMonster(id string) error {
	m, ok := state.Template(e.Defs, id)
	if !ok {
		return newError(CodeUnknownMonster, "no monster template %q", id)
	}
	e.State.ForcedMonsters = append(e.State.ForcedMonsters, m)
	journal.New(e.State).Note(fmt.Sprintf("%s will be the next random spawn", m.Name))
	return nil
}

func (e *Engine) updatePlayer(id int, u PlayerUpdate) error {
	p := state.FindPlayer(e.State, id)
	if p == nil {
		return newError(CodeUnknownPlayer, "no player %d", id)
	}
	for el := range u.Attack {
		if !slices.Contains(state.Elements, el) {
			return newError(CodeInvalidAction, "unknown element %q", el)
		}
	}

	if u.Name != nil && *u.Name != "" {
		p.Name = *u.Name
	}
	for el, v := range u.Attack {
		p.Attack[el] = v
	}
	if u.Gold != nil {
		p.Loot.Gold = *u.Gold
	}
	if u.ManaStone != nil {
		p.Loot.ManaStone = *u.ManaStone
	}
	for card, n := range u.SpellCards {
		p.Loot.SpellCards[card] = n
	}
	journal.New(e.State).Note(fmt.Sprintf("%s updated: %s", p.Name, describePlayer(*p)))
	return nil
}
