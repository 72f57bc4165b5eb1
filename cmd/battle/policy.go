package main

import (
	"github.com/KirkDiggler/rpg-battle/internal/engine/turn"
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/rng"
)

// randomPolicy plays both sides by picking a move with PP left at random.
// It draws from its own source so the battle stream stays untouched.
type randomPolicy struct {
	src *rng.Source
}

func newRandomPolicy(seed int64) *randomPolicy {
	return &randomPolicy{src: rng.New(^seed)}
}

// choose returns one action per active combatant that has not acted yet
func (p *randomPolicy) choose(st *battle.State) []battle.Action {
	queued := make(map[string]bool, len(st.Pending))
	for _, a := range st.Pending {
		queued[a.CombatantID] = true
	}

	var actions []battle.Action
	for _, side := range st.Sides {
		c := side.ActiveCombatant()
		if c == nil || !c.Healthy() || queued[c.ID] {
			continue
		}
		actions = append(actions, battle.Action{
			Kind:        battle.ActionMove,
			CombatantID: c.ID,
			MoveID:      p.pickMove(c),
		})
	}
	return actions
}

func (p *randomPolicy) pickMove(c *battle.Combatant) string {
	// the resolver replaces whatever a charging combatant submits
	if c.HasVolatile(pokemon.VolatileCharging) && len(c.Moves) > 0 {
		return c.Moves[0].ID
	}

	var usable []string
	for _, slot := range c.Moves {
		if slot.PP > 0 {
			usable = append(usable, slot.ID)
		}
	}
	if len(usable) == 0 {
		return turn.StruggleID
	}
	return usable[p.src.Roll(len(usable))-1]
}
