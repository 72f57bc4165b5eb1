package effects

import (
	"github.com/KirkDiggler/rpg-battle/internal/engine/field"
	"github.com/KirkDiggler/rpg-battle/internal/engine/status"
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

var _ field.Inflicter = (*Pipeline)(nil)

// InflictStatus gates a non-volatile status on type, terrain and weather
// immunity, then on status_attempt handlers, and applies it. Anything that
// stops it is reported with a status_blocked event.
func (p *Pipeline) InflictStatus(st *battle.State, target *battle.Combatant, kind pokemon.StatusKind, source *battle.Combatant, cause string) bool {
	if target == nil || kind == pokemon.StatusNone {
		return false
	}
	blocked := battle.Event{
		Kind:   battle.EventStatusBlocked,
		Source: idOf(source),
		Target: target.ID,
		Status: kind,
		Cause:  cause,
	}

	if reason := status.Immune(st, target, kind); reason != "" {
		if reason != status.ReasonFainted {
			blocked.Detail = reason
			st.Emit(blocked)
		}
		return false
	}

	attempt := NewContext(pokemon.TriggerStatusAttempt, st, source, target, nil)
	attempt.Status = kind
	p.Dispatch(attempt)
	if attempt.Blocked {
		blocked.Detail = attempt.BlockedBy
		st.Emit(blocked)
		return false
	}

	status.Apply(st, target, kind, idOf(source), cause)

	after := NewContext(pokemon.TriggerStatusInflict, st, target, source, nil)
	after.Status = kind
	p.Dispatch(after)
	return true
}

// InflictVolatile gates and starts a volatile status
func (p *Pipeline) InflictVolatile(st *battle.State, target *battle.Combatant, kind pokemon.VolatileKind, source *battle.Combatant, cause string) bool {
	if target == nil || status.VolatileImmune(target, kind) {
		return false
	}

	attempt := NewContext(pokemon.TriggerStatusAttempt, st, source, target, nil)
	attempt.Volatile = kind
	p.Dispatch(attempt)
	if attempt.Blocked {
		st.Emit(battle.Event{
			Kind:     battle.EventStatusBlocked,
			Source:   idOf(source),
			Target:   target.ID,
			Volatile: kind,
			Cause:    cause,
			Detail:   attempt.BlockedBy,
		})
		return false
	}

	status.StartVolatile(st, target, kind, source, cause)

	after := NewContext(pokemon.TriggerStatusInflict, st, target, source, nil)
	after.Volatile = kind
	p.Dispatch(after)
	return true
}

// ChangeStats applies stage deltas in stat order and returns how many stats
// moved. Drops from an opponent go through stat_drop first; any lowered stat
// dispatches stat_lowered afterwards.
func (p *Pipeline) ChangeStats(st *battle.State, target *battle.Combatant, boosts map[pokemon.Stat]int, source *battle.Combatant, cause string) int {
	if target == nil || !target.Healthy() || len(boosts) == 0 {
		return 0
	}
	byOpponent := source != nil && source.Side != target.Side

	dropping := false
	for _, d := range boosts {
		if d < 0 {
			dropping = true
		}
	}
	if dropping && byOpponent {
		guard := NewContext(pokemon.TriggerStatDrop, st, source, target, nil)
		guard.Stats = boosts
		guard.ByOpponent = true
		p.Dispatch(guard)
		if guard.Blocked {
			kept := make(map[pokemon.Stat]int, len(boosts))
			for stat, d := range boosts {
				if d > 0 {
					kept[stat] = d
				}
			}
			boosts = kept
		}
	}

	applied := 0
	lowered := false
	for _, stat := range pokemon.StageStats {
		delta, ok := boosts[stat]
		if !ok || delta == 0 {
			continue
		}
		got := target.ChangeStage(stat, delta)
		e := battle.Event{
			Kind:   battle.EventStatChanged,
			Source: idOf(source),
			Target: target.ID,
			Stat:   stat,
			Amount: got,
			Cause:  cause,
		}
		if got == 0 {
			e.Detail = "at_limit"
		}
		st.Emit(e)
		if got != 0 {
			applied++
		}
		if got < 0 {
			lowered = true
		}
	}

	if lowered {
		after := NewContext(pokemon.TriggerStatLowered, st, target, source, nil)
		after.ByOpponent = byOpponent
		p.Dispatch(after)
	}
	return applied
}

// UseItem runs a bag item's use effects on a party member. It reports whether
// anything happened.
func (p *Pipeline) UseItem(st *battle.State, target *battle.Combatant, item *pokemon.Item) bool {
	if target == nil || item == nil || target.Fainted {
		return false
	}
	ctx := NewContext(pokemon.TriggerUse, st, target, nil, nil)
	for _, e := range item.Effects {
		if e.Trigger != pokemon.TriggerUse {
			continue
		}
		h := handler{owner: target, source: sourceBag, id: item.ID, effect: e}
		if p.eligible(ctx, h) {
			p.fire(ctx, h)
		}
	}
	return ctx.Applied > 0
}

// SecondaryChance scales a secondary effect chance by the attacker's modifiers
func SecondaryChance(c *battle.Combatant, chance int) int {
	for _, e := range c.EffectsOfKind(pokemon.KindSecondaryChance) {
		if e.Multiplier > 0 {
			chance = int(float64(chance) * e.Multiplier)
		}
	}
	if chance > 100 {
		return 100
	}
	return chance
}

// SuppressesSecondaries reports whether the attacker forgoes secondary effects
func SuppressesSecondaries(c *battle.Combatant) bool {
	return c.HasEffect(pokemon.KindSuppressSecondary)
}

// AlwaysMaxHits reports whether multi-hit moves always land the maximum count
func AlwaysMaxHits(c *battle.Combatant) bool {
	return c.HasEffect(pokemon.KindMaxHits)
}
