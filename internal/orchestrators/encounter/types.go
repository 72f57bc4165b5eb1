package encounter

import (
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
)

// StartBattleInput defines the request for starting a battle.
// A nil Seed draws a fresh one.
type StartBattleInput struct {
	Seed  *int64
	Sides [2]battle.SideInput
}

// StartBattleOutput defines the response for starting a battle
type StartBattleOutput struct {
	BattleID string
	Seed     int64
	State    *battle.State
	Events   []battle.Event
}

// SubmitActionInput defines the request for queueing one action
type SubmitActionInput struct {
	BattleID string
	Action   battle.Action
}

// SubmitActionOutput reports what the turn is still waiting on
type SubmitActionOutput struct {
	Pending int
	Missing []string
	Ready   bool
}

// ResolveTurnInput defines the request for resolving the pending turn
type ResolveTurnInput struct {
	BattleID string
}

// ResolveTurnOutput contains the turn's events in order
type ResolveTurnOutput struct {
	Turn    int
	Events  []battle.Event
	Outcome battle.Outcome
}

// GetBattleInput defines the request for reading a battle
type GetBattleInput struct {
	BattleID string
}

// GetBattleOutput contains the battle state
type GetBattleOutput struct {
	State *battle.State
}

// ResumeBattleInput defines the request for loading a stored battle
type ResumeBattleInput struct {
	BattleID string
}

// ResumeBattleOutput contains the restored state
type ResumeBattleOutput struct {
	State *battle.State
}
