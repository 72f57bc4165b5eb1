package engine

import (
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
)

// NewBattleInput contains the rosters and seed for a new battle
type NewBattleInput struct {
	ID    string
	Seed  int64
	Sides [2]battle.SideInput
}

// NewBattleOutput contains the fresh state and the opening events
type NewBattleOutput struct {
	State  *battle.State
	Events []battle.Event
}

// SubmitActionInput contains the action to queue
type SubmitActionInput struct {
	State  *battle.State
	Action battle.Action
}

// SubmitActionOutput reports what the turn is still waiting on
type SubmitActionOutput struct {
	Pending int
	Missing []string
	Ready   bool
}

// ResolveTurnInput contains the battle to advance
type ResolveTurnInput struct {
	State *battle.State
}

// ResolveTurnOutput contains the turn's events in order
type ResolveTurnOutput struct {
	Turn    int
	Events  []battle.Event
	Outcome battle.Outcome
}

// RestoreInput contains a state decoded from a snapshot
type RestoreInput struct {
	State *battle.State
}

// RestoreOutput contains the state ready to resolve
type RestoreOutput struct {
	State *battle.State
}
