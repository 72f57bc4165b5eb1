// Package rpgtoolkit provides the concrete implementation of the engine interface using rpg-toolkit modules.
package rpgtoolkit

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-battle/internal/catalog"
	"github.com/KirkDiggler/rpg-battle/internal/engine"
	"github.com/KirkDiggler/rpg-battle/internal/engine/turn"
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/rng"
)

// Toolkit event types published on the bus
const (
	EventTypeBattleStarted = "battle.started"
	EventTypeTurnResolved  = "battle.turn_resolved"
	EventTypeBattleEnded   = "battle.ended"
)

// Adapter implements the engine.Engine interface using rpg-toolkit
type Adapter struct {
	eventBus   events.EventBus
	diceRoller dice.Roller
	catalog    catalog.Catalog
	resolver   *turn.Resolver
}

// AdapterConfig contains dependencies for the adapter
type AdapterConfig struct {
	EventBus events.EventBus
	Catalog  catalog.Catalog
	// DiceRoller replaces the seeded source. Battles built with it replay
	// nothing and cannot be snapshotted.
	DiceRoller dice.Roller
}

// Validate ensures all required dependencies are present
func (c *AdapterConfig) Validate() error {
	if c.EventBus == nil {
		return errors.InvalidArgument("event bus is required")
	}
	if c.Catalog == nil {
		return errors.InvalidArgument("catalog is required")
	}
	return nil
}

// NewAdapter creates a new rpg-toolkit engine adapter
func NewAdapter(cfg *AdapterConfig) (*Adapter, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	resolver, err := turn.NewResolver(&turn.Config{Catalog: cfg.Catalog})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create turn resolver")
	}

	return &Adapter{
		eventBus:   cfg.EventBus,
		diceRoller: cfg.DiceRoller,
		catalog:    cfg.Catalog,
		resolver:   resolver,
	}, nil
}

// Verify that Adapter implements engine.Engine interface
var _ engine.Engine = (*Adapter)(nil)

// NewBattle builds both sides, runs the leads' entry and announces the battle
func (a *Adapter) NewBattle(ctx context.Context, input *engine.NewBattleInput) (*engine.NewBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument("battle id is required")
	}

	st, err := battle.NewState(input.ID, input.Seed, input.Sides, a.catalog)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build battle %s", input.ID)
	}
	if a.diceRoller != nil {
		st.RNG = rng.FromRoller(a.diceRoller)
	}

	evts := a.resolver.Start(st)
	a.publish(ctx, EventTypeBattleStarted, st, nil)

	slog.Info("Battle started",
		"battle_id", st.ID,
		"seed", st.Seed,
		"side_one", st.Sides[0].Name,
		"side_two", st.Sides[1].Name,
	)

	return &engine.NewBattleOutput{State: st, Events: evts}, nil
}

// SubmitAction validates and queues one action
func (a *Adapter) SubmitAction(_ context.Context, input *engine.SubmitActionInput) (*engine.SubmitActionOutput, error) {
	if input == nil || input.State == nil {
		return nil, errors.InvalidArgument("state is required")
	}

	if err := a.resolver.Submit(input.State, input.Action); err != nil {
		return nil, err
	}

	missing := a.resolver.Missing(input.State)
	return &engine.SubmitActionOutput{
		Pending: len(input.State.Pending),
		Missing: missing,
		Ready:   len(missing) == 0,
	}, nil
}

// ResolveTurn runs the queued turn and publishes its completion
func (a *Adapter) ResolveTurn(ctx context.Context, input *engine.ResolveTurnInput) (*engine.ResolveTurnOutput, error) {
	if input == nil || input.State == nil {
		return nil, errors.InvalidArgument("state is required")
	}
	st := input.State

	evts, err := a.resolver.Resolve(st)
	if err != nil {
		return nil, err
	}

	a.publish(ctx, EventTypeTurnResolved, st, nil)
	if st.Outcome.Decided() {
		a.publish(ctx, EventTypeBattleEnded, st, winner(st))
	}

	return &engine.ResolveTurnOutput{
		Turn:    st.Turn,
		Events:  evts,
		Outcome: st.Outcome,
	}, nil
}

// Restore re-resolves species, moves, abilities and items on a decoded snapshot
func (a *Adapter) Restore(_ context.Context, input *engine.RestoreInput) (*engine.RestoreOutput, error) {
	if input == nil || input.State == nil {
		return nil, errors.InvalidArgument("state is required")
	}
	if err := input.State.Hydrate(a.catalog); err != nil {
		return nil, errors.Wrapf(err, "failed to restore battle %s", input.State.ID)
	}
	return &engine.RestoreOutput{State: input.State}, nil
}

// publish notifies bus subscribers. Delivery failures never fail the battle.
func (a *Adapter) publish(ctx context.Context, eventType string, st *battle.State, target *SideEntity) {
	var tgt core.Entity
	if target != nil {
		tgt = target
	}
	evt := events.NewGameEvent(eventType, wrapBattle(st), tgt)
	if err := a.eventBus.Publish(ctx, evt); err != nil {
		slog.Warn("Failed to publish battle event",
			"battle_id", st.ID,
			"event_type", eventType,
			"error", err,
		)
	}
}
