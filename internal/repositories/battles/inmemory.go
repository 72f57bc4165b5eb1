package battles

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Record
	clock clock.Clock
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*Record),
		clock: clock.New(),
	}
}

// Save stores a snapshot
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateRecord(input); err != nil {
		return nil, err
	}

	rec := copyRecord(input.Record)
	rec.UpdatedAt = r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[rec.ID] = rec

	return &SaveOutput{Record: copyRecord(rec)}, nil
}

// Get retrieves a snapshot by battle ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateID(input.BattleID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, exists := r.store[input.BattleID]
	if !exists {
		return nil, errors.NotFoundf("battle %s not found", input.BattleID)
	}

	// Return a copy to prevent external modification
	return &GetOutput{Record: copyRecord(rec)}, nil
}

// Delete removes a snapshot
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateID(input.BattleID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.BattleID]; !exists {
		return nil, errors.NotFoundf("battle %s not found", input.BattleID)
	}
	delete(r.store, input.BattleID)

	return &DeleteOutput{}, nil
}
