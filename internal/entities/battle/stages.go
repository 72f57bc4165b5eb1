package battle

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

// Stage bounds
const (
	MinStage = -6
	MaxStage = 6
)

// ClampStage forces a stage into [MinStage, MaxStage]
func ClampStage(stage int) int {
	if stage < MinStage {
		return MinStage
	}
	if stage > MaxStage {
		return MaxStage
	}
	return stage
}

// StageMultiplier is the stat multiplier for attack, defense, special and speed stages
func StageMultiplier(stage int) float64 {
	stage = ClampStage(stage)
	if stage >= 0 {
		return float64(2+stage) / 2
	}
	return 2 / float64(2-stage)
}

// AccuracyStageMultiplier is the multiplier for accuracy and evasion stages
func AccuracyStageMultiplier(stage int) float64 {
	stage = ClampStage(stage)
	if stage >= 0 {
		return float64(3+stage) / 3
	}
	return 3 / float64(3-stage)
}

// Stage returns the current stage of a stat
func (c *Combatant) Stage(stat pokemon.Stat) int {
	return c.Stages[stat]
}

// ChangeStage applies delta and returns the change actually applied after clamping
func (c *Combatant) ChangeStage(stat pokemon.Stat, delta int) int {
	if c.Stages == nil {
		c.Stages = make(map[pokemon.Stat]int)
	}
	before := c.Stages[stat]
	if before != ClampStage(before) {
		slog.Warn("Stat stage out of range clamped",
			"combatant_id", c.ID,
			"stat", stat,
			"stage", before,
		)
		before = ClampStage(before)
	}
	after := ClampStage(before + delta)
	c.Stages[stat] = after
	return after - before
}

// ResetStages clears every stage
func (c *Combatant) ResetStages() {
	c.Stages = make(map[pokemon.Stat]int)
}
