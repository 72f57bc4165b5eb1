package turn

import (
	"github.com/KirkDiggler/rpg-battle/internal/engine/effects"
	"github.com/KirkDiggler/rpg-battle/internal/engine/field"
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

func (r *Resolver) executeSwitch(st *battle.State, actor *battle.Combatant, a battle.Action) {
	failed := func(cause string) {
		reject(st,
			battle.Event{Kind: battle.EventSwitchFailed, Source: actor.ID, Side: actor.Side, Cause: cause},
			errors.RuleViolationf("%s cannot switch to %d: %s", actor.ID, a.SwitchTo, cause),
		)
	}
	if actor.HasVolatile(pokemon.VolatileBound) {
		failed(battle.CauseTrapped)
		return
	}
	side := st.Sides[actor.Side]
	if a.SwitchTo < 0 || a.SwitchTo >= len(side.Party) || a.SwitchTo == side.Active || !side.Party[a.SwitchTo].Healthy() {
		failed(battle.CauseFailed)
		return
	}
	r.switchIn(st, actor.Side, a.SwitchTo)
}

// switchIn swaps the active combatant of a side. The outgoing one runs its
// switch-out effects and loses everything that does not survive the bench.
func (r *Resolver) switchIn(st *battle.State, side, to int) {
	s := st.Sides[side]
	out := s.ActiveCombatant()
	if out != nil {
		if out.Healthy() {
			r.pipeline.Dispatch(effects.NewContext(pokemon.TriggerSwitchOut, st, out, nil, nil))
		}
		out.ResetOnSwitch()
	}

	s.Active = to
	in := s.Party[to]
	e := battle.Event{Kind: battle.EventSwitched, Target: in.ID, Side: side}
	if out != nil {
		e.Source = out.ID
	}
	st.Emit(e)
	r.enter(st, in)
}

// enter applies entry hazards, then switch-in effects
func (r *Resolver) enter(st *battle.State, c *battle.Combatant) {
	field.ApplyEntryHazards(st, c, r.chart, r.pipeline)
	if !c.Healthy() {
		return
	}
	r.pipeline.Dispatch(effects.NewContext(pokemon.TriggerSwitchIn, st, c, st.Opponent(c), nil))
	if c.Healthy() {
		r.pipeline.Dispatch(effects.NewContext(pokemon.TriggerHPChanged, st, c, nil, nil))
	}
}

func (r *Resolver) executeItem(st *battle.State, actor *battle.Combatant, a battle.Action) {
	side := st.Sides[actor.Side]
	item, err := r.catalog.Item(a.ItemID)
	if err != nil || a.ItemTarget < 0 || a.ItemTarget >= len(side.Party) {
		st.Emit(battle.Event{Kind: battle.EventItemFailed, Source: actor.ID, Detail: a.ItemID, Cause: battle.CauseFailed})
		return
	}
	target := side.Party[a.ItemTarget]
	st.Emit(battle.Event{Kind: battle.EventItemUsed, Source: actor.ID, Target: target.ID, Detail: item.ID})
	if !r.pipeline.UseItem(st, target, item) {
		st.Emit(battle.Event{Kind: battle.EventItemFailed, Source: actor.ID, Target: target.ID, Detail: item.ID, Cause: battle.CauseFailed})
	}
}
