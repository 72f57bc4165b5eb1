// Package encounter implements the battle orchestrator: it owns live battles,
// serializes access to each one and snapshots them between turns
package encounter

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-battle/internal/engine"
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-battle/internal/repositories/battles"
)

// Service defines the interface for battle operations
type Service interface {
	// StartBattle builds a battle from two rosters and stores its first snapshot
	StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error)

	// SubmitAction queues one action for the next turn
	SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error)

	// ResolveTurn runs the pending turn and snapshots the result
	ResolveTurn(ctx context.Context, input *ResolveTurnInput) (*ResolveTurnOutput, error)

	// GetBattle returns the battle from memory, the live store or the archive
	GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error)

	// ResumeBattle loads a stored snapshot back into memory
	ResumeBattle(ctx context.Context, input *ResumeBattleInput) (*ResumeBattleOutput, error)
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	Engine      engine.Engine
	BattleRepo  battles.Repository
	IDGenerator idgen.Generator
	// Archive receives the final snapshot of finished battles. Optional.
	Archive battles.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.BattleRepo == nil {
		vb.RequiredField("BattleRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	engine     engine.Engine
	battleRepo battles.Repository
	archive    battles.Repository
	idGen      idgen.Generator

	mu   sync.Mutex
	live map[string]*liveBattle
}

// liveBattle guards one battle; its state is only touched with mu held
type liveBattle struct {
	mu    sync.Mutex
	state *battle.State
}

// NewOrchestrator creates a new battle orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		engine:     cfg.Engine,
		battleRepo: cfg.BattleRepo,
		archive:    cfg.Archive,
		idGen:      cfg.IDGenerator,
		live:       make(map[string]*liveBattle),
	}, nil
}

// StartBattle builds a battle from two rosters and stores its first snapshot
func (o *orchestrator) StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var seed int64
	if input.Seed != nil {
		seed = *input.Seed
	} else {
		s, err := rng.NewSeed()
		if err != nil {
			return nil, errors.Wrap(err, "failed to draw battle seed")
		}
		seed = s
	}

	battleID := o.idGen.Generate()
	out, err := o.engine.NewBattle(ctx, &engine.NewBattleInput{
		ID:    battleID,
		Seed:  seed,
		Sides: input.Sides,
	})
	if err != nil {
		return nil, err
	}

	if err := o.save(ctx, o.battleRepo, out.State); err != nil {
		return nil, err
	}

	view, err := o.copyState(ctx, out.State)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.live[battleID] = &liveBattle{state: out.State}
	o.mu.Unlock()

	slog.Info("Battle stored",
		"battle_id", battleID,
		"seed", seed,
	)

	return &StartBattleOutput{
		BattleID: battleID,
		Seed:     seed,
		State:    view,
		Events:   out.Events,
	}, nil
}

// SubmitAction queues one action for the next turn
func (o *orchestrator) SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	lb, err := o.acquire(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}
	defer lb.mu.Unlock()

	out, err := o.engine.SubmitAction(ctx, &engine.SubmitActionInput{
		State:  lb.state,
		Action: input.Action,
	})
	if err != nil {
		return nil, err
	}

	return &SubmitActionOutput{
		Pending: out.Pending,
		Missing: out.Missing,
		Ready:   out.Ready,
	}, nil
}

// ResolveTurn runs the pending turn on a copy and makes it live only once the
// snapshot is stored, so a failed save leaves the battle where it was. A
// finished battle is archived and dropped from memory.
func (o *orchestrator) ResolveTurn(ctx context.Context, input *ResolveTurnInput) (*ResolveTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	lb, err := o.acquire(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}
	defer lb.mu.Unlock()

	next, err := o.copyState(ctx, lb.state)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.ResolveTurn(ctx, &engine.ResolveTurnInput{State: next})
	if err != nil {
		return nil, err
	}

	if err := o.save(ctx, o.battleRepo, next); err != nil {
		slog.Warn("Turn discarded",
			"battle_id", input.BattleID,
			"turn", next.Turn,
			"error", err,
		)
		return nil, err
	}
	lb.state = next

	if out.Outcome.Decided() {
		if o.archive != nil {
			// the live store already holds the final snapshot
			if err := o.save(ctx, o.archive, next); err != nil {
				slog.Error("Failed to archive battle",
					"battle_id", input.BattleID,
					"error", err,
				)
			}
		}
		o.mu.Lock()
		delete(o.live, input.BattleID)
		o.mu.Unlock()

		slog.Info("Battle finished",
			"battle_id", input.BattleID,
			"turn", out.Turn,
			"outcome", out.Outcome,
		)
	}

	return &ResolveTurnOutput{
		Turn:    out.Turn,
		Events:  out.Events,
		Outcome: out.Outcome,
	}, nil
}

// GetBattle returns a copy of the battle from memory, the live store or the archive
func (o *orchestrator) GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	o.mu.Lock()
	lb, ok := o.live[input.BattleID]
	o.mu.Unlock()
	if ok {
		lb.mu.Lock()
		var st *battle.State
		var err error
		if lb.state != nil {
			st, err = o.copyState(ctx, lb.state)
		}
		lb.mu.Unlock()
		if err != nil {
			return nil, err
		}
		if st != nil {
			return &GetBattleOutput{State: st}, nil
		}
	}

	st, err := o.load(ctx, o.battleRepo, input.BattleID)
	if errors.IsNotFound(err) && o.archive != nil {
		st, err = o.load(ctx, o.archive, input.BattleID)
	}
	if err != nil {
		return nil, err
	}
	return &GetBattleOutput{State: st}, nil
}

// ResumeBattle loads a stored snapshot back into memory. Resuming a battle
// that is already live is a no-op. The returned state is a copy.
func (o *orchestrator) ResumeBattle(ctx context.Context, input *ResumeBattleInput) (*ResumeBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	lb, err := o.acquire(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}
	defer lb.mu.Unlock()

	st, err := o.copyState(ctx, lb.state)
	if err != nil {
		return nil, err
	}
	return &ResumeBattleOutput{State: st}, nil
}

// acquire returns the live battle locked, loading it from the store first if needed
func (o *orchestrator) acquire(ctx context.Context, battleID string) (*liveBattle, error) {
	if battleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	o.mu.Lock()
	lb, ok := o.live[battleID]
	if !ok {
		lb = &liveBattle{}
		o.live[battleID] = lb
	}
	o.mu.Unlock()
	lb.mu.Lock()

	if lb.state != nil {
		return lb, nil
	}

	st, err := o.load(ctx, o.battleRepo, battleID)
	if err != nil {
		lb.mu.Unlock()
		o.mu.Lock()
		if o.live[battleID] == lb {
			delete(o.live, battleID)
		}
		o.mu.Unlock()
		return nil, err
	}
	if st.Outcome.Decided() {
		lb.mu.Unlock()
		o.mu.Lock()
		delete(o.live, battleID)
		o.mu.Unlock()
		return nil, errors.FailedPreconditionf("battle %s is over", battleID)
	}

	lb.state = st
	slog.Info("Battle resumed",
		"battle_id", battleID,
		"turn", st.Turn,
	)
	return lb, nil
}

func (o *orchestrator) load(ctx context.Context, repo battles.Repository, battleID string) (*battle.State, error) {
	got, err := repo.Get(ctx, &battles.GetInput{BattleID: battleID})
	if err != nil {
		return nil, err
	}
	return o.decode(ctx, got.Record.Snapshot)
}

// decode rebuilds a state from snapshot bytes with catalog references attached
func (o *orchestrator) decode(ctx context.Context, data []byte) (*battle.State, error) {
	st, err := engine.UnmarshalState(data)
	if err != nil {
		return nil, err
	}
	restored, err := o.engine.Restore(ctx, &engine.RestoreInput{State: st})
	if err != nil {
		return nil, err
	}
	return restored.State, nil
}

func (o *orchestrator) save(ctx context.Context, repo battles.Repository, st *battle.State) error {
	data, err := engine.MarshalState(st)
	if err != nil {
		return err
	}
	_, err = repo.Save(ctx, &battles.SaveInput{Record: &battles.Record{
		ID:       st.ID,
		Turn:     st.Turn,
		Outcome:  string(st.Outcome),
		Snapshot: data,
	}})
	if err != nil {
		return errors.Wrapf(err, "failed to save battle %s", st.ID)
	}
	return nil
}

// copyState detaches a state from the live battle so callers never share it
func (o *orchestrator) copyState(ctx context.Context, st *battle.State) (*battle.State, error) {
	data, err := engine.MarshalState(st)
	if err != nil {
		return nil, err
	}
	return o.decode(ctx, data)
}
