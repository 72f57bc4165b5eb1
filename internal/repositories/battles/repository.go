// Package battles stores battle snapshots between turns
package battles

//go:generate mockgen -destination=mock/mock_repository.go -package=battlemock github.com/KirkDiggler/rpg-battle/internal/repositories/battles Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Repository defines the storage interface for battle snapshots
type Repository interface {
	// Save creates or replaces a snapshot
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves a snapshot by battle ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes a snapshot
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// Record is one stored snapshot. Snapshot holds the encoded battle state.
type Record struct {
	ID        string    `json:"id"`
	Turn      int       `json:"turn"`
	Outcome   string    `json:"outcome"`
	Snapshot  []byte    `json:"snapshot"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveInput contains the snapshot to store
type SaveInput struct {
	Record *Record
}

// SaveOutput contains the stored record
type SaveOutput struct {
	Record *Record
}

// GetInput identifies the snapshot to load
type GetInput struct {
	BattleID string
}

// GetOutput contains the loaded record
type GetOutput struct {
	Record *Record
}

// DeleteInput identifies the snapshot to remove
type DeleteInput struct {
	BattleID string
}

// DeleteOutput is empty on success
type DeleteOutput struct{}

func validateRecord(input *SaveInput) error {
	if input == nil || input.Record == nil {
		return errors.InvalidArgument("record is required")
	}
	if input.Record.ID == "" {
		return errors.InvalidArgument("battle ID is required")
	}
	if len(input.Record.Snapshot) == 0 {
		return errors.InvalidArgument("snapshot is required")
	}
	return nil
}

func validateID(id string) error {
	if id == "" {
		return errors.InvalidArgument("battle ID is required")
	}
	return nil
}

func copyRecord(r *Record) *Record {
	out := *r
	out.Snapshot = append([]byte(nil), r.Snapshot...)
	return &out
}
