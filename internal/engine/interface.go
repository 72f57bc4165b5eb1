// Package engine is the battle engine surface. Implementations live in
// subpackages; rpgtoolkit backs it with rpg-toolkit dice and events.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/rpg-battle/internal/engine Engine

import (
	"context"
)

// Engine creates battles and resolves their turns. Every call operates on the
// state it is handed; callers serialize access to a single battle.
type Engine interface {
	// NewBattle builds the battle state from two rosters and runs the leads' switch-in
	NewBattle(ctx context.Context, input *NewBattleInput) (*NewBattleOutput, error)

	// SubmitAction queues one action; duplicates and malformed actions are IllegalAction
	SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error)

	// ResolveTurn runs a full turn once every active combatant has an action
	ResolveTurn(ctx context.Context, input *ResolveTurnInput) (*ResolveTurnOutput, error)

	// Restore re-attaches catalog references to a state loaded from a snapshot
	Restore(ctx context.Context, input *RestoreInput) (*RestoreOutput, error)
}
