// Package turn collects one action per active combatant, orders them, executes
// them strictly in sequence and runs the end-of-turn pass.
package turn

import (
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-battle/internal/catalog"
	"github.com/KirkDiggler/rpg-battle/internal/engine/effects"
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Config configures a Resolver
type Config struct {
	Catalog catalog.Catalog
}

// Validate validates the config
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	return vb.Build()
}

// Resolver runs turns. It holds no battle state and may be shared between battles.
type Resolver struct {
	catalog  catalog.Catalog
	chart    pokemon.TypeChart
	pipeline *effects.Pipeline
}

// NewResolver creates a resolver
func NewResolver(cfg *Config) (*Resolver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	chart := cfg.Catalog.TypeChart()
	return &Resolver{
		catalog:  cfg.Catalog,
		chart:    chart,
		pipeline: effects.NewPipeline(chart),
	}, nil
}

// Start announces the battle and runs the leads' switch-in effects in speed order
func (r *Resolver) Start(st *battle.State) []battle.Event {
	st.Emit(battle.Event{Kind: battle.EventBattleStarted})
	leads := r.bySpeed(st)
	for _, c := range leads {
		st.Emit(battle.Event{Kind: battle.EventSwitched, Target: c.ID, Side: c.Side, Detail: "lead"})
	}
	for _, c := range leads {
		r.enter(st, c)
	}
	return st.Drain()
}

// Resolve runs one full turn and returns its events in order
func (r *Resolver) Resolve(st *battle.State) ([]battle.Event, error) {
	if st.Outcome.Decided() {
		return nil, errors.FailedPreconditionf("battle %s is over", st.ID)
	}
	if missing := r.Missing(st); len(missing) > 0 {
		return nil, errors.FailedPreconditionf("waiting on actions for %s", strings.Join(missing, ", "))
	}

	st.Turn++
	st.Emit(battle.Event{Kind: battle.EventTurnStarted})

	ordered := r.order(st, st.Pending)
	st.Pending = nil
	for _, q := range ordered {
		r.execute(st, q)
	}
	r.endOfTurn(st)

	events := st.Drain()
	slog.Debug("Turn resolved",
		"battle_id", st.ID,
		"turn", st.Turn,
		"events", len(events),
		"outcome", st.Outcome,
	)
	return events, nil
}

func (r *Resolver) execute(st *battle.State, q queued) {
	a := q.action
	actor := st.Combatant(a.CombatantID)
	if actor == nil {
		return
	}
	if !actor.Healthy() || !st.IsActive(actor) {
		st.Emit(battle.Event{Kind: battle.EventActionSkipped, Source: actor.ID, Cause: battle.CauseFainted})
		return
	}
	switch a.Kind {
	case battle.ActionMove:
		r.executeMove(st, actor, q)
	case battle.ActionSwitch:
		r.executeSwitch(st, actor, a)
	case battle.ActionItem:
		r.executeItem(st, actor, a)
	}
}

// endOfTurn runs weather, terrain, status damage, periodic effects, duration
// countdowns and the faint check, in that order
func (r *Resolver) endOfTurn(st *battle.State) {
	order := r.bySpeed(st)

	if w := st.Field.Weather; w != pokemon.WeatherNone {
		for _, c := range order {
			if !c.Healthy() {
				continue
			}
			ctx := effects.NewContext(pokemon.TriggerWeatherActive, st, c, nil, nil)
			r.pipeline.Dispatch(ctx)
			if ctx.Blocked || !weatherHurts(w, c) {
				continue
			}
			st.Damage(c, battle.FractionOfMax(c, 1.0/16), battle.Event{Cause: battle.CauseWeather, Detail: string(w)})
		}
	}

	if st.Field.Terrain == pokemon.TerrainGrassy {
		for _, c := range order {
			if c.Healthy() && c.Grounded() {
				st.Heal(c, battle.FractionOfMax(c, 1.0/16), battle.Event{Cause: battle.CauseTerrain, Detail: string(pokemon.TerrainGrassy)})
			}
		}
	}

	for _, c := range order {
		r.residual(st, c)
	}

	for _, c := range order {
		if c.Healthy() {
			r.pipeline.Dispatch(effects.NewContext(pokemon.TriggerEndOfTurn, st, c, nil, nil))
		}
	}
	for _, c := range order {
		if c.Healthy() {
			r.pipeline.Dispatch(effects.NewContext(pokemon.TriggerHPChanged, st, c, nil, nil))
		}
	}

	r.countdown(st)
	r.settle(st)
}

// reject turns a rule violation into its failure event; the turn goes on
func reject(st *battle.State, e battle.Event, err error) {
	slog.Debug("Action rejected",
		"battle_id", st.ID,
		"turn", st.Turn,
		"error", err,
	)
	st.Emit(e)
}

func weatherHurts(w pokemon.Weather, c *battle.Combatant) bool {
	switch w {
	case pokemon.WeatherSandstorm:
		return !c.HasType(pokemon.TypeRock) && !c.HasType(pokemon.TypeGround) && !c.HasType(pokemon.TypeSteel)
	case pokemon.WeatherHail:
		return !c.HasType(pokemon.TypeIce)
	default:
		return false
	}
}

// settle decides the outcome, sends in replacements for fainted actives and
// closes the turn
func (r *Resolver) settle(st *battle.State) {
	outcome := st.DecideOutcome()
	for attempt := 0; !outcome.Decided() && attempt < battle.MaxPartySize; attempt++ {
		replaced := false
		for side := range st.Sides {
			active := st.Active(side)
			if active == nil || active.Healthy() {
				continue
			}
			if to := st.Sides[side].FirstReserve(); to >= 0 {
				r.switchIn(st, side, to)
				replaced = true
			}
		}
		outcome = st.DecideOutcome()
		if !replaced {
			break
		}
	}

	st.Outcome = outcome
	st.Emit(battle.Event{Kind: battle.EventTurnEnded})
	if outcome.Decided() {
		st.Emit(battle.Event{Kind: battle.EventBattleEnded, Outcome: outcome})
		slog.Info("Battle ended",
			"battle_id", st.ID,
			"turn", st.Turn,
			"outcome", outcome,
		)
	}
}
