package effects

import (
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-battle/internal/engine/field"
	"github.com/KirkDiggler/rpg-battle/internal/engine/status"
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

// apply runs one effect and reports whether it changed anything
func (p *Pipeline) apply(ctx *Context, h handler) bool {
	st := ctx.State
	e := h.effect
	owner := h.owner
	cause := h.cause()

	switch e.Kind {
	case pokemon.KindSetWeather:
		return field.SetWeather(st, e.Weather, owner)

	case pokemon.KindSetTerrain:
		return field.SetTerrain(st, e.Terrain, owner)

	case pokemon.KindStatStage:
		if ctx.Trigger == pokemon.TriggerStatLowered && !ctx.ByOpponent {
			return false
		}
		target := owner
		if e.Target == pokemon.TargetOpponent {
			target = st.Opponent(owner)
		}
		if target == nil {
			return false
		}
		var source *battle.Combatant
		if target != owner {
			source = owner
		}
		return p.ChangeStats(st, target, e.Boosts, source, cause) != 0

	case pokemon.KindTypeImmunity:
		ctx.Block(cause)
		if e.Fraction > 0 {
			st.Heal(owner, battle.FractionOfMax(owner, e.Fraction), battle.Event{Source: owner.ID, Cause: cause})
		}
		if len(e.Boosts) > 0 {
			p.ChangeStats(st, owner, e.Boosts, nil, cause)
		}
		return true

	case pokemon.KindWonderGuard:
		if ctx.Move == nil || !ctx.Move.Damaging() {
			return false
		}
		ctx.ImmuneUnlessSuperEffective = true
		return ctx.Effectiveness <= 1

	case pokemon.KindBlockMove:
		ctx.Block(cause)
		return true

	case pokemon.KindBlockStatusMoves:
		if ctx.Move == nil || ctx.Move.Category != pokemon.CategoryStatus {
			return false
		}
		ctx.Block(cause)
		return true

	case pokemon.KindStatusImmunity:
		if ctx.Status != pokemon.StatusNone && (len(e.Statuses) == 0 && len(e.Volatiles) == 0 || containsStatus(e.Statuses, ctx.Status)) {
			ctx.Block(cause)
			return true
		}
		if ctx.Volatile != "" && containsVolatile(e.Volatiles, ctx.Volatile) {
			ctx.Block(cause)
			return true
		}
		return false

	case pokemon.KindPreventStatLoss:
		ctx.Block(cause)
		return true

	case pokemon.KindRestoreStats:
		restored := false
		for _, stat := range pokemon.StageStats {
			if stage := owner.Stage(stat); stage < 0 {
				owner.ChangeStage(stat, -stage)
				st.Emit(battle.Event{Kind: battle.EventStatChanged, Target: owner.ID, Stat: stat, Amount: -stage, Cause: cause})
				restored = true
			}
		}
		return restored

	case pokemon.KindPowerMultiplier:
		if h.source == sourceItem {
			ctx.ItemMultiplier *= e.Multiplier
		} else {
			ctx.AbilityMultiplier *= e.Multiplier
		}
		return true

	case pokemon.KindStabMultiplier:
		if ctx.Move == nil || !owner.HasType(ctx.Move.Type) {
			return false
		}
		ctx.STAB = e.Multiplier
		return true

	case pokemon.KindIgnoreBurn:
		ctx.IgnoreBurn = true
		return true

	case pokemon.KindDamageReduction:
		ctx.DamageMultiplier *= e.Multiplier
		return true

	case pokemon.KindCritStage:
		ctx.CritStages += e.Stages
		return true

	case pokemon.KindCritMultiplier:
		ctx.CritMultiplier = e.Multiplier
		return true

	case pokemon.KindCritImmunity:
		ctx.CritBlocked = true
		return true

	case pokemon.KindSpeedMultiplier:
		ctx.SpeedMultiplier *= e.Multiplier
		return true

	case pokemon.KindPriorityBoost:
		ctx.PriorityDelta += e.Amount
		return true

	case pokemon.KindAccuracyBoost:
		ctx.AccuracyMultiplier *= e.Multiplier
		return true

	case pokemon.KindEvasionBoost:
		if e.Multiplier <= 0 {
			return false
		}
		ctx.AccuracyMultiplier /= e.Multiplier
		return true

	case pokemon.KindAlwaysHit:
		ctx.AlwaysHit = true
		return true

	case pokemon.KindIgnoreEvasion:
		ctx.IgnoreEvasion = true
		return true

	case pokemon.KindContactStatus:
		target := ctx.Attacker
		if target == nil || target == owner {
			return false
		}
		kind := e.Status
		if len(e.Statuses) > 0 {
			kind = e.Statuses[st.RNG.Roll(len(e.Statuses))-1]
		}
		return p.InflictStatus(st, target, kind, owner, cause)

	case pokemon.KindContactDamage:
		target := ctx.Attacker
		if target == nil || target == owner || !target.Healthy() {
			return false
		}
		return st.Damage(target, battle.FractionOfMax(target, e.Fraction), battle.Event{Source: owner.ID, Cause: cause}) > 0

	case pokemon.KindSurviveHit:
		if owner.HP <= 0 || ctx.Damage < owner.HP {
			return false
		}
		ctx.Damage = owner.HP - 1
		return true

	case pokemon.KindHeal:
		amount := e.Amount
		if e.Fraction > 0 {
			amount = battle.FractionOfMax(owner, e.Fraction)
		}
		return st.Heal(owner, amount, battle.Event{Source: owner.ID, Cause: cause}) > 0

	case pokemon.KindSelfDamage:
		return st.Damage(owner, battle.FractionOfMax(owner, e.Fraction), battle.Event{Source: owner.ID, Cause: cause}) > 0

	case pokemon.KindHealFromDamage:
		if ctx.DamageDealt <= 0 {
			return false
		}
		amount := int(math.Floor(float64(ctx.DamageDealt) * e.Fraction))
		if amount < 1 {
			amount = 1
		}
		return st.Heal(owner, amount, battle.Event{Source: owner.ID, Cause: cause}) > 0

	case pokemon.KindInflictSelfStatus:
		if owner.Status != pokemon.StatusNone {
			return false
		}
		return p.InflictStatus(st, owner, e.Status, owner, cause)

	case pokemon.KindCureStatus:
		cured := false
		if owner.Status != pokemon.StatusNone && (len(e.Statuses) == 0 && len(e.Volatiles) == 0 || containsStatus(e.Statuses, owner.Status)) {
			cured = status.Cure(st, owner, cause)
		}
		for _, v := range e.Volatiles {
			if owner.HasVolatile(v) {
				status.EndVolatile(st, owner, v, cause)
				cured = true
			}
		}
		return cured

	case pokemon.KindWeatherImmunity:
		ctx.Block(cause)
		return true

	case pokemon.KindMoveLock:
		if ctx.Move == nil {
			return false
		}
		if owner.LockedMoveID == "" {
			owner.LockedMoveID = ctx.Move.ID
			return false
		}
		if owner.LockedMoveID != ctx.Move.ID {
			ctx.Block(cause)
			return true
		}
		return false

	case pokemon.KindSkipCharge:
		ctx.SkipCharge = true
		return true

	default:
		slog.Warn("Effect kind has no handler at this trigger",
			"kind", e.Kind,
			"trigger", ctx.Trigger,
			"source", cause,
		)
		return false
	}
}

func containsStatus(list []pokemon.StatusKind, s pokemon.StatusKind) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsVolatile(list []pokemon.VolatileKind, v pokemon.VolatileKind) bool {
	for _, k := range list {
		if k == v {
			return true
		}
	}
	return false
}
