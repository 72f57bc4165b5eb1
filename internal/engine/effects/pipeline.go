// Package effects dispatches trigger points to the ability, held item and status
// handlers of the combatants involved. Handlers run in a fixed precedence:
// attacker ability, defender ability, attacker item, defender item, then
// attacker and defender statuses. A terminal handler that blocks stops the pass.
package effects

import (
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

// defaultLowPower is the power at or below which low_power holds
const defaultLowPower = 60

type sourceKind int

const (
	sourceAbility sourceKind = iota
	sourceItem
	sourceStatus
	sourceBag
)

type role int

const (
	roleSubject role = iota
	roleDefender
	roleAny
)

// handler is one effect bound to the combatant that owns it
type handler struct {
	owner  *battle.Combatant
	source sourceKind
	id     string
	effect pokemon.Effect
}

func (h handler) cause() string {
	switch h.source {
	case sourceAbility:
		return battle.AbilityCause(h.id)
	case sourceItem, sourceBag:
		return battle.ItemCause(h.id)
	default:
		return h.id
	}
}

// statusHandlers are the built-in effects of non-volatile statuses
var statusHandlers = map[pokemon.StatusKind][]pokemon.Effect{
	pokemon.StatusParalysis: {
		{Trigger: pokemon.TriggerModifySpeed, Kind: pokemon.KindSpeedMultiplier, Multiplier: 0.5},
	},
}

// volatileHandlers are the built-in effects of volatile statuses, in dispatch order
var volatileHandlers = []struct {
	kind    pokemon.VolatileKind
	effects []pokemon.Effect
}{
	{pokemon.VolatileProtect, []pokemon.Effect{{Trigger: pokemon.TriggerTryHit, Kind: pokemon.KindBlockMove}}},
	{pokemon.VolatileSubstitute, []pokemon.Effect{{Trigger: pokemon.TriggerTryHit, Kind: pokemon.KindBlockStatusMoves}}},
	{pokemon.VolatileTaunt, []pokemon.Effect{{Trigger: pokemon.TriggerBeforeMove, Kind: pokemon.KindBlockStatusMoves}}},
	{pokemon.VolatileFocusEnergy, []pokemon.Effect{{Trigger: pokemon.TriggerModifyCrit, Kind: pokemon.KindCritStage, Stages: 2}}},
}

// announced kinds emit an effect_activated event when they fire
var announced = map[pokemon.EffectKind]bool{
	pokemon.KindTypeImmunity:     true,
	pokemon.KindWonderGuard:      true,
	pokemon.KindBlockMove:        true,
	pokemon.KindBlockStatusMoves: true,
	pokemon.KindStatusImmunity:   true,
	pokemon.KindPreventStatLoss:  true,
	pokemon.KindSurviveHit:       true,
	pokemon.KindRestoreStats:     true,
	pokemon.KindSkipCharge:       true,
	pokemon.KindMoveLock:         true,
}

// Pipeline is stateless; every call works on the state it is handed
type Pipeline struct {
	chart pokemon.TypeChart
}

// NewPipeline returns a pipeline using the given type chart for hazard math
func NewPipeline(chart pokemon.TypeChart) *Pipeline {
	if chart == nil {
		chart = pokemon.StandardChart()
	}
	return &Pipeline{chart: chart}
}

// Chart returns the type chart the pipeline was built with
func (p *Pipeline) Chart() pokemon.TypeChart {
	return p.chart
}

// Dispatch runs every eligible handler for the context's trigger
func (p *Pipeline) Dispatch(ctx *Context) {
	for _, h := range p.collect(ctx) {
		if ctx.Blocked {
			return
		}
		if !p.eligible(ctx, h) {
			continue
		}
		p.fire(ctx, h)
	}
}

func (p *Pipeline) participants(ctx *Context) []*battle.Combatant {
	var out []*battle.Combatant
	if ctx.Attacker != nil {
		out = append(out, ctx.Attacker)
	}
	if ctx.Defender != nil && ctx.Defender != ctx.Attacker {
		out = append(out, ctx.Defender)
	}
	return out
}

func (p *Pipeline) collect(ctx *Context) []handler {
	who := p.participants(ctx)
	var out []handler

	for _, c := range who {
		if a := c.Ability(); a != nil {
			for _, e := range a.Effects {
				if e.Trigger == ctx.Trigger {
					out = append(out, handler{owner: c, source: sourceAbility, id: a.ID, effect: e})
				}
			}
		}
	}
	for _, c := range who {
		if it := c.HeldItem(); it != nil {
			for _, e := range it.Effects {
				if e.Trigger == ctx.Trigger {
					out = append(out, handler{owner: c, source: sourceItem, id: it.ID, effect: e})
				}
			}
		}
	}
	for _, c := range who {
		for _, e := range statusHandlers[c.Status] {
			if e.Trigger == ctx.Trigger {
				out = append(out, handler{owner: c, source: sourceStatus, id: string(c.Status), effect: e})
			}
		}
		for _, vh := range volatileHandlers {
			if !c.HasVolatile(vh.kind) {
				continue
			}
			for _, e := range vh.effects {
				if e.Trigger == ctx.Trigger {
					out = append(out, handler{owner: c, source: sourceStatus, id: battle.MoveCause(string(vh.kind)), effect: e})
				}
			}
		}
	}
	return out
}

// roleFor says which participant must own a handler for it to fire
func roleFor(trigger pokemon.Trigger, kind pokemon.EffectKind) role {
	switch trigger {
	case pokemon.TriggerTryHit,
		pokemon.TriggerModifyDamage,
		pokemon.TriggerSurviveHit,
		pokemon.TriggerHitReceived,
		pokemon.TriggerContact,
		pokemon.TriggerFaint,
		pokemon.TriggerStatusAttempt,
		pokemon.TriggerStatDrop:
		return roleDefender
	case pokemon.TriggerModifyAccuracy:
		switch kind {
		case pokemon.KindEvasionBoost:
			return roleDefender
		case pokemon.KindAlwaysHit:
			return roleAny
		}
	case pokemon.TriggerModifyCrit:
		if kind == pokemon.KindCritImmunity {
			return roleDefender
		}
	}
	return roleSubject
}

func (p *Pipeline) eligible(ctx *Context, h handler) bool {
	e := h.effect
	owner := h.owner

	switch roleFor(ctx.Trigger, e.Kind) {
	case roleSubject:
		if owner != ctx.Attacker {
			return false
		}
	case roleDefender:
		if owner != ctx.Defender {
			return false
		}
	}

	if owner.Fainted && ctx.Trigger != pokemon.TriggerFaint && ctx.Trigger != pokemon.TriggerContact {
		return false
	}
	switch h.source {
	case sourceItem:
		if owner.ItemConsumed {
			return false
		}
	case sourceAbility:
		if e.OneTime && owner.IsSpent(h.cause()) {
			return false
		}
	}

	if e.MoveType != pokemon.TypeNone && (ctx.Move == nil || ctx.Move.Type != e.MoveType) {
		return false
	}
	if e.Category != "" && (ctx.Move == nil || ctx.Move.Category != e.Category) {
		return false
	}
	if e.Kind != pokemon.KindSetWeather && e.Weather != pokemon.WeatherNone && ctx.State.Field.Weather != e.Weather {
		return false
	}
	if !conditionMet(ctx, h) {
		return false
	}
	if e.Percent > 0 && !ctx.State.RNG.Chance(e.Percent) {
		return false
	}
	return true
}

func conditionMet(ctx *Context, h handler) bool {
	e := h.effect
	owner := h.owner
	switch e.Condition {
	case pokemon.ConditionNone:
		return true
	case pokemon.ConditionSuperEffective:
		return ctx.Effectiveness > 1
	case pokemon.ConditionHPBelow:
		return owner.HP > 0 && float64(owner.HP) <= e.Threshold*float64(owner.MaxHP())
	case pokemon.ConditionFullHP:
		return owner.HP == owner.MaxHP()
	case pokemon.ConditionStatused:
		return owner.Status != pokemon.StatusNone
	case pokemon.ConditionContact:
		return ctx.Move != nil && ctx.Move.HasFlag(pokemon.FlagContact)
	case pokemon.ConditionLowPower:
		limit := defaultLowPower
		if e.Amount > 0 {
			limit = e.Amount
		}
		return ctx.Move != nil && ctx.Move.Power > 0 && ctx.Move.Power <= limit
	case pokemon.ConditionHolderType:
		return owner.HasType(e.HolderType)
	case pokemon.ConditionNotHolderType:
		return !owner.HasType(e.HolderType)
	case pokemon.ConditionHasSecondary:
		return ctx.Move != nil && ctx.Move.HasSecondaries()
	default:
		return false
	}
}

// fire applies one handler and, when it changed something, consumes one-time
// sources in the same step. A deferred context holds the consumption back
// until Commit.
func (p *Pipeline) fire(ctx *Context, h handler) {
	if !p.apply(ctx, h) {
		return
	}
	ctx.Applied++

	if ctx.Deferred {
		ctx.held = append(ctx.held, h)
		return
	}
	p.settle(ctx.State, h)
}

// Commit announces and consumes what a deferred dispatch applied. It is a
// no-op for nil or already committed contexts.
func (p *Pipeline) Commit(ctx *Context) {
	if ctx == nil {
		return
	}
	held := ctx.held
	ctx.held = nil
	for _, h := range held {
		p.settle(ctx.State, h)
	}
}

func (p *Pipeline) settle(st *battle.State, h handler) {
	if h.source != sourceStatus && h.source != sourceBag && (announced[h.effect.Kind] || h.effect.OneTime) {
		st.Emit(battle.Event{
			Kind:   battle.EventEffectActivated,
			Source: h.owner.ID,
			Cause:  h.cause(),
			Detail: string(h.effect.Kind),
		})
	}
	if !h.effect.OneTime {
		return
	}
	switch h.source {
	case sourceItem:
		h.owner.ItemConsumed = true
		st.Emit(battle.Event{
			Kind:   battle.EventItemConsumed,
			Target: h.owner.ID,
			Cause:  h.cause(),
		})
	case sourceAbility:
		h.owner.MarkSpent(h.cause())
	}
}

func idOf(c *battle.Combatant) string {
	if c == nil {
		return ""
	}
	return c.ID
}
