package turn

import (
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// StruggleID is the move a combatant falls back on once every move is out of PP
const StruggleID = "struggle"

var struggle = &pokemon.Move{
	ID:       StruggleID,
	Name:     "Struggle",
	Type:     pokemon.TypeNone,
	Category: pokemon.CategoryPhysical,
	Power:    50,
	PP:       1,
	Target:   pokemon.TargetOpponent,
	Flags:    []pokemon.MoveFlag{pokemon.FlagContact},
}

// Submit validates an action and queues it for the next turn. A malformed or
// duplicate action is an IllegalAction; nothing is queued in that case.
func (r *Resolver) Submit(st *battle.State, action battle.Action) error {
	if st.Outcome.Decided() {
		return errors.FailedPreconditionf("battle %s is over", st.ID)
	}

	actor := st.Combatant(action.CombatantID)
	switch {
	case actor == nil:
		return errors.IllegalActionf("unknown combatant %q", action.CombatantID)
	case actor.Fainted:
		return errors.IllegalActionf("%s has fainted", actor.ID)
	case !st.IsActive(actor):
		return errors.IllegalActionf("%s is not on the field", actor.ID)
	}
	for _, pending := range st.Pending {
		if pending.CombatantID == actor.ID {
			return errors.IllegalActionf("%s already has an action this turn", actor.ID).
				WithMeta("combatant_id", actor.ID)
		}
	}

	var err error
	switch action.Kind {
	case battle.ActionMove:
		err = r.validateMove(actor, action)
	case battle.ActionSwitch:
		err = validateSwitch(st, actor, action)
	case battle.ActionItem:
		err = r.validateItem(st, actor, action)
	default:
		err = errors.IllegalActionf("unknown action kind %q", action.Kind)
	}
	if err != nil {
		return err
	}

	st.Pending = append(st.Pending, action)
	return nil
}

func (r *Resolver) validateMove(actor *battle.Combatant, action battle.Action) error {
	if actor.HasVolatile(pokemon.VolatileCharging) {
		return nil
	}
	if action.MoveID == StruggleID {
		if hasUsableMove(actor) {
			return errors.IllegalActionf("%s still has moves with PP left", actor.ID)
		}
		return nil
	}
	slot := actor.MoveSlot(action.MoveID)
	if slot == nil {
		return errors.IllegalActionf("%s does not know move %q", actor.ID, action.MoveID)
	}
	if slot.PP <= 0 {
		return errors.IllegalActionf("%s has no PP left for %s", actor.ID, action.MoveID)
	}
	return nil
}

func hasUsableMove(c *battle.Combatant) bool {
	for _, slot := range c.Moves {
		if slot.PP > 0 {
			return true
		}
	}
	return false
}

func validateSwitch(st *battle.State, actor *battle.Combatant, action battle.Action) error {
	side := st.Sides[actor.Side]
	if action.SwitchTo < 0 || action.SwitchTo >= len(side.Party) {
		return errors.IllegalActionf("switch target %d is out of range", action.SwitchTo)
	}
	if action.SwitchTo == side.Active {
		return errors.IllegalActionf("%s is already on the field", actor.ID)
	}
	if !side.Party[action.SwitchTo].Healthy() {
		return errors.IllegalActionf("%s cannot battle", side.Party[action.SwitchTo].ID)
	}
	return nil
}

func (r *Resolver) validateItem(st *battle.State, actor *battle.Combatant, action battle.Action) error {
	item, err := r.catalog.Item(action.ItemID)
	if err != nil {
		return errors.IllegalActionf("unknown item %q", action.ItemID)
	}
	if !item.Bag {
		return errors.IllegalActionf("%s cannot be used from the bag", item.ID)
	}
	side := st.Sides[actor.Side]
	if action.ItemTarget < 0 || action.ItemTarget >= len(side.Party) {
		return errors.IllegalActionf("item target %d is out of range", action.ItemTarget)
	}
	return nil
}

// Missing lists the active combatants that still owe an action
func (r *Resolver) Missing(st *battle.State) []string {
	var out []string
	for _, c := range st.ActiveCombatants() {
		if !c.Healthy() {
			continue
		}
		found := false
		for _, a := range st.Pending {
			if a.CombatantID == c.ID {
				found = true
				break
			}
		}
		if !found {
			out = append(out, c.ID)
		}
	}
	return out
}

// Ready reports whether every active combatant has submitted
func (r *Resolver) Ready(st *battle.State) bool {
	return len(r.Missing(st)) == 0
}
