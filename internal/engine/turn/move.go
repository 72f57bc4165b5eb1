package turn

import (
	"math"

	"github.com/KirkDiggler/rpg-battle/internal/engine/damage"
	"github.com/KirkDiggler/rpg-battle/internal/engine/effects"
	"github.com/KirkDiggler/rpg-battle/internal/engine/field"
	"github.com/KirkDiggler/rpg-battle/internal/engine/status"
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// maxProtectDenominator caps the 1/3^n odds of consecutive protection
const maxProtectDenominator = 729

// selectMove resolves the move that will actually be used. A charging move or
// an encore overrides the submitted choice.
func (r *Resolver) selectMove(c *battle.Combatant, moveID string) (*pokemon.Move, *battle.MoveSlot) {
	if v := c.Volatile(pokemon.VolatileCharging); v != nil {
		if slot := c.MoveSlot(v.MoveID); slot != nil {
			return slot.Move(), slot
		}
	}
	if v := c.Volatile(pokemon.VolatileEncore); v != nil {
		if slot := c.MoveSlot(v.MoveID); slot != nil && slot.PP > 0 {
			return slot.Move(), slot
		}
	}
	if moveID == StruggleID {
		return struggle, nil
	}
	slot := c.MoveSlot(moveID)
	if slot == nil || slot.PP <= 0 {
		return nil, nil
	}
	return slot.Move(), slot
}

func (r *Resolver) executeMove(st *battle.State, attacker *battle.Combatant, q queued) {
	a := q.action
	move, slot := r.selectMove(attacker, a.MoveID)
	if move == nil {
		st.Emit(battle.Event{Kind: battle.EventMoveFailed, Source: attacker.ID, Move: a.MoveID, Cause: battle.CauseNoPP})
		return
	}
	priority := q.priority
	if move != q.move {
		// an encore started after ordering swapped the move
		priority = r.priority(st, attacker, move)
	}

	if !status.BeforeAction(st, attacker) {
		attacker.RemoveVolatile(pokemon.VolatileCharging)
		attacker.ProtectStreak = 0
		return
	}

	pre := effects.NewContext(pokemon.TriggerBeforeMove, st, attacker, st.Opponent(attacker), move)
	r.pipeline.Dispatch(pre)
	if pre.Blocked {
		st.Emit(battle.Event{Kind: battle.EventMoveFailed, Source: attacker.ID, Move: move.ID, Cause: pre.BlockedBy})
		return
	}

	// skip holds a charge skip whose item or ability is spent only once the move connects
	var skip *effects.Context
	if attacker.HasVolatile(pokemon.VolatileCharging) {
		attacker.RemoveVolatile(pokemon.VolatileCharging)
	} else {
		if slot != nil {
			slot.PP--
		}
		if move.Charge != nil {
			var skipped bool
			if skipped, skip = r.skipsCharge(st, attacker, move); !skipped {
				attacker.SetVolatile(pokemon.VolatileCharging, &battle.Volatile{MoveID: move.ID})
				attacker.LastMoveID = move.ID
				st.Emit(battle.Event{Kind: battle.EventMoveUsed, Source: attacker.ID, Move: move.ID, Detail: "charging"})
				return
			}
		}
	}

	attacker.LastMoveID = move.ID
	if !isProtection(move) {
		attacker.ProtectStreak = 0
	}
	st.Emit(battle.Event{Kind: battle.EventMoveUsed, Source: attacker.ID, Move: move.ID})

	switch move.Aim() {
	case pokemon.TargetSelf, pokemon.TargetField:
		r.pipeline.Commit(skip)
		if !r.applyMoveEffects(st, attacker, nil, move, false) {
			st.Emit(battle.Event{Kind: battle.EventMoveFailed, Source: attacker.ID, Move: move.ID, Cause: battle.CauseFailed})
		}
	default:
		r.useOnOpponent(st, attacker, move, priority, skip)
	}

	if attacker.Healthy() {
		r.pipeline.Dispatch(effects.NewContext(pokemon.TriggerHPChanged, st, attacker, nil, nil))
	}
}

func isProtection(move *pokemon.Move) bool {
	for _, e := range move.Effects {
		if e.Kind == pokemon.MoveEffectProtect || e.Kind == pokemon.MoveEffectEndure {
			return true
		}
	}
	return false
}

// skipsCharge reports whether the charge turn is skipped. A skip granted by a
// handler comes back as a deferred context for the caller to commit.
func (r *Resolver) skipsCharge(st *battle.State, c *battle.Combatant, move *pokemon.Move) (bool, *effects.Context) {
	if w := move.Charge.SkipWeather; w != pokemon.WeatherNone && st.Field.Weather == w {
		return true, nil
	}
	ctx := effects.NewContext(pokemon.TriggerChargeTurn, st, c, nil, move)
	ctx.Deferred = true
	r.pipeline.Dispatch(ctx)
	if !ctx.SkipCharge {
		return false, nil
	}
	return true, ctx
}

// useOnOpponent runs the target gates, then accuracy and the hit. Nothing held
// in skip is spent when a gate stops the move.
func (r *Resolver) useOnOpponent(st *battle.State, attacker *battle.Combatant, move *pokemon.Move, priority int, skip *effects.Context) {
	defender := st.Opponent(attacker)
	failed := func(cause string) {
		e := battle.Event{Kind: battle.EventMoveFailed, Source: attacker.ID, Move: move.ID, Cause: cause}
		if defender != nil {
			e.Target = defender.ID
		}
		reject(st, e, errors.RuleViolationf("%s cannot use %s: %s", attacker.ID, move.ID, cause))
	}
	if defender == nil || !defender.Healthy() {
		failed(battle.CauseNoTarget)
		return
	}

	if st.Field.Terrain == pokemon.TerrainPsychic && defender.Grounded() && priority > 0 {
		failed(battle.CauseTerrain)
		return
	}

	eff := 1.0
	if move.Damaging() {
		eff = r.chart.Effectiveness(move.Type, defender.Types)
	}
	hit := effects.NewContext(pokemon.TriggerTryHit, st, attacker, defender, move)
	hit.Effectiveness = eff
	r.pipeline.Dispatch(hit)
	if hit.Blocked {
		failed(hit.BlockedBy)
		return
	}
	if move.Damaging() {
		eff = damage.Effectiveness(r.chart, move.Type, defender.Types, hit.ImmuneUnlessSuperEffective)
		if eff == 0 {
			failed(battle.CauseImmune)
			return
		}
	}
	r.pipeline.Commit(skip)

	if !r.hits(st, attacker, defender, move, eff) {
		st.Emit(battle.Event{Kind: battle.EventMoveMissed, Source: attacker.ID, Target: defender.ID, Move: move.ID})
		return
	}

	if move.Damaging() {
		r.damagingMove(st, attacker, defender, move, eff)
		return
	}
	if !r.applyMoveEffects(st, attacker, defender, move, false) {
		failed(battle.CauseFailed)
	}
}

// hits runs the accuracy check. A move without accuracy always hits.
func (r *Resolver) hits(st *battle.State, attacker, defender *battle.Combatant, move *pokemon.Move, eff float64) bool {
	ctx := effects.NewContext(pokemon.TriggerModifyAccuracy, st, attacker, defender, move)
	ctx.Effectiveness = eff
	r.pipeline.Dispatch(ctx)
	if move.Accuracy == nil || ctx.AlwaysHit {
		return true
	}
	evasion := defender.Stage(pokemon.StatEvasion)
	if ctx.IgnoreEvasion && evasion > 0 {
		evasion = 0
	}
	threshold := damage.AccuracyThreshold(*move.Accuracy, attacker.Stage(pokemon.StatAccuracy), evasion, ctx.AccuracyMultiplier)
	return st.RNG.Roll(100) <= threshold
}

func (r *Resolver) damagingMove(st *battle.State, attacker, defender *battle.Combatant, move *pokemon.Move, eff float64) {
	hits := 1
	if mh := move.MultiHit; mh != nil {
		hits = damage.HitCount(st.RNG, mh.Min, mh.Max, effects.AlwaysMaxHits(attacker))
	}
	shielded := defender.HasVolatile(pokemon.VolatileSubstitute) && !move.HasFlag(pokemon.FlagSound)

	total, landed := 0, 0
	for i := 0; i < hits; i++ {
		if !defender.Healthy() || !attacker.Healthy() {
			break
		}
		total += r.strike(st, attacker, defender, move, eff)
		landed++
	}
	if move.MultiHit != nil {
		st.Emit(battle.Event{
			Kind:   battle.EventEffectActivated,
			Source: attacker.ID,
			Target: defender.ID,
			Move:   move.ID,
			Amount: landed,
			Detail: "hits",
		})
	}

	for _, e := range move.Effects {
		if total <= 0 {
			break
		}
		switch e.Kind {
		case pokemon.MoveEffectDrain:
			st.Heal(attacker, shareOf(total, e.Percent), battle.Event{Source: defender.ID, Move: move.ID, Cause: battle.CauseDrain})
		case pokemon.MoveEffectRecoil:
			st.Damage(attacker, shareOf(total, e.Percent), battle.Event{Move: move.ID, Cause: battle.CauseRecoil})
		}
	}
	if move.ID == StruggleID {
		st.Damage(attacker, battle.FractionOfMax(attacker, 0.25), battle.Event{Move: move.ID, Cause: battle.CauseRecoil})
	}

	if total > 0 && attacker.Healthy() {
		dealt := effects.NewContext(pokemon.TriggerHitDealt, st, attacker, defender, move)
		dealt.DamageDealt = total
		dealt.Effectiveness = eff
		r.pipeline.Dispatch(dealt)
	}

	if !shielded {
		r.applyMoveEffects(st, attacker, defender, move, true)
	}

	if defender.Fainted {
		r.pipeline.Dispatch(effects.NewContext(pokemon.TriggerFaint, st, attacker, defender, move))
	}
}

// shareOf returns percent of amount, at least 1
func shareOf(amount, percent int) int {
	v := int(math.Floor(float64(amount) * float64(percent) / 100))
	if v < 1 {
		return 1
	}
	return v
}

// strike lands one hit and returns the HP removed
func (r *Resolver) strike(st *battle.State, attacker, defender *battle.Combatant, move *pokemon.Move, eff float64) int {
	cc := effects.NewContext(pokemon.TriggerModifyCrit, st, attacker, defender, move)
	cc.CritStages = move.CritStage
	r.pipeline.Dispatch(cc)
	crit := !cc.CritBlocked && st.RNG.OneIn(damage.CritDenominator(cc.CritStages))

	pc := effects.NewContext(pokemon.TriggerModifyPower, st, attacker, defender, move)
	pc.Effectiveness = eff
	if move.Type != pokemon.TypeNone && attacker.HasType(move.Type) {
		pc.STAB = damage.DefaultSTAB
	}
	r.pipeline.Dispatch(pc)

	weather := damage.WeatherMultiplier(st.Field.Weather, move.Type) *
		damage.TerrainMultiplier(st.Field.Terrain, move.Type, attacker.Grounded(), defender.Grounded())

	dmg := damage.Calculate(damage.Input{
		Level:             attacker.Level,
		Power:             move.Power,
		Attack:            damage.AttackStat(attacker, move.Category, crit),
		Defense:           damage.DefenseStat(defender, move.Category, crit),
		STAB:              pc.STAB,
		Effectiveness:     eff,
		Critical:          crit,
		CritMultiplier:    cc.CritMultiplier,
		Burned:            attacker.Status == pokemon.StatusBurn && move.Category == pokemon.CategoryPhysical && !pc.IgnoreBurn,
		WeatherMultiplier: weather,
		ItemMultiplier:    pc.ItemMultiplier,
		AbilityMultiplier: pc.AbilityMultiplier,
		Spread:            st.RNG.Between(damage.MinSpread, damage.MaxSpread),
	})

	if !crit && screened(st, defender.Side, move.Category) {
		dmg = damage.Scale(dmg, damage.ScreenReduction)
	}
	mc := effects.NewContext(pokemon.TriggerModifyDamage, st, attacker, defender, move)
	mc.Effectiveness = eff
	r.pipeline.Dispatch(mc)
	dmg = damage.Scale(dmg, mc.DamageMultiplier)

	if sub := defender.Volatile(pokemon.VolatileSubstitute); sub != nil && !move.HasFlag(pokemon.FlagSound) {
		sub.Counter -= dmg
		st.Emit(battle.Event{
			Kind:          battle.EventEffectActivated,
			Source:        attacker.ID,
			Target:        defender.ID,
			Move:          move.ID,
			Amount:        dmg,
			Effectiveness: eff,
			Critical:      crit,
			Detail:        string(pokemon.VolatileSubstitute),
		})
		if sub.Counter <= 0 {
			status.EndVolatile(st, defender, pokemon.VolatileSubstitute, "broken")
		}
		return 0
	}

	if dmg >= defender.HP {
		if defender.HasVolatile(pokemon.VolatileEndure) {
			dmg = defender.HP - 1
		} else {
			sc := effects.NewContext(pokemon.TriggerSurviveHit, st, attacker, defender, move)
			sc.Damage = dmg
			sc.Effectiveness = eff
			r.pipeline.Dispatch(sc)
			dmg = sc.Damage
		}
	}

	dealt := st.Damage(defender, dmg, battle.Event{
		Source:        attacker.ID,
		Move:          move.ID,
		Effectiveness: eff,
		Critical:      crit,
	})

	if dealt > 0 && defender.Healthy() {
		r.pipeline.Dispatch(effects.NewContext(pokemon.TriggerHPChanged, st, defender, nil, nil))
		received := effects.NewContext(pokemon.TriggerHitReceived, st, attacker, defender, move)
		received.Effectiveness = eff
		received.DamageDealt = dealt
		r.pipeline.Dispatch(received)
	}
	if move.HasFlag(pokemon.FlagContact) {
		r.pipeline.Dispatch(effects.NewContext(pokemon.TriggerContact, st, attacker, defender, move))
	}
	return dealt
}

func screened(st *battle.State, side int, category pokemon.Category) bool {
	switch category {
	case pokemon.CategoryPhysical:
		return st.Field.Screen(side, pokemon.ScreenReflect) > 0
	case pokemon.CategorySpecial:
		return st.Field.Screen(side, pokemon.ScreenLightScreen) > 0
	}
	return false
}

// applyMoveEffects applies every effect except drain and recoil and reports
// whether any took hold. On damaging moves only chance-based secondaries roll.
func (r *Resolver) applyMoveEffects(st *battle.State, attacker, defender *battle.Combatant, move *pokemon.Move, damaging bool) bool {
	suppressed := damaging && effects.SuppressesSecondaries(attacker)
	applied := false
	for _, e := range move.Effects {
		if e.Kind == pokemon.MoveEffectDrain || e.Kind == pokemon.MoveEffectRecoil {
			continue
		}
		target := attacker
		if e.Aim() == pokemon.TargetOpponent {
			target = defender
			if target == nil {
				target = st.Opponent(attacker)
			}
		}
		if e.Secondary() {
			if suppressed {
				continue
			}
			if !st.RNG.Chance(effects.SecondaryChance(attacker, e.Chance)) {
				continue
			}
		}
		if target != nil && !target.Healthy() {
			continue
		}
		if r.applyMoveEffect(st, attacker, target, move, e) {
			applied = true
		}
	}
	return applied
}

func (r *Resolver) applyMoveEffect(st *battle.State, attacker, target *battle.Combatant, move *pokemon.Move, e pokemon.MoveEffect) bool {
	cause := battle.MoveCause(move.ID)
	switch e.Kind {
	case pokemon.MoveEffectStatus:
		return r.pipeline.InflictStatus(st, target, e.Status, attacker, cause)
	case pokemon.MoveEffectVolatile:
		return r.pipeline.InflictVolatile(st, target, e.Volatile, attacker, cause)
	case pokemon.MoveEffectBoost:
		return r.pipeline.ChangeStats(st, target, map[pokemon.Stat]int{e.Stat: e.Stages}, attacker, cause) > 0
	case pokemon.MoveEffectWeather:
		return field.SetWeather(st, e.Weather, attacker)
	case pokemon.MoveEffectTerrain:
		return field.SetTerrain(st, e.Terrain, attacker)
	case pokemon.MoveEffectHazard:
		return field.AddHazard(st, 1-attacker.Side, e.Hazard)
	case pokemon.MoveEffectScreen:
		return field.SetScreen(st, attacker.Side, e.Screen, attacker)
	case pokemon.MoveEffectTrickRoom:
		return field.ToggleTrickRoom(st, attacker)
	case pokemon.MoveEffectHeal:
		if target == nil {
			return false
		}
		return st.Heal(target, battle.FractionOfMax(target, float64(e.Percent)/100), battle.Event{Source: attacker.ID, Move: move.ID, Cause: cause}) > 0
	case pokemon.MoveEffectProtect:
		return r.protect(st, attacker, pokemon.VolatileProtect, cause)
	case pokemon.MoveEffectEndure:
		return r.protect(st, attacker, pokemon.VolatileEndure, cause)
	case pokemon.MoveEffectCure:
		if target == nil {
			return false
		}
		return status.Cure(st, target, cause)
	case pokemon.MoveEffectSubstitute:
		return r.substitute(st, attacker, move, cause)
	default:
		return false
	}
}

// protect succeeds with probability 1/3^n for n consecutive successes
func (r *Resolver) protect(st *battle.State, c *battle.Combatant, kind pokemon.VolatileKind, cause string) bool {
	den := 1
	for i := 0; i < c.ProtectStreak && den < maxProtectDenominator; i++ {
		den *= 3
	}
	if !st.RNG.OneIn(den) {
		c.ProtectStreak = 0
		return false
	}
	status.StartVolatile(st, c, kind, c, cause)
	c.ProtectStreak++
	return true
}

func (r *Resolver) substitute(st *battle.State, c *battle.Combatant, move *pokemon.Move, cause string) bool {
	cost := c.MaxHP() / 4
	if cost < 1 || c.HP <= cost || c.HasVolatile(pokemon.VolatileSubstitute) {
		return false
	}
	st.Damage(c, cost, battle.Event{Source: c.ID, Move: move.ID, Cause: cause})
	v := status.StartVolatile(st, c, pokemon.VolatileSubstitute, c, cause)
	v.Counter = cost
	return true
}
