package effects

import (
	"github.com/KirkDiggler/rpg-battle/internal/engine/damage"
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

// Context carries one dispatch. Attacker is the acting or affected combatant
// for triggers with a single subject (switch-in, end of turn, hp changed...).
// Handlers write only the fields that belong to their trigger.
type Context struct {
	Trigger  pokemon.Trigger
	State    *battle.State
	Attacker *battle.Combatant
	Defender *battle.Combatant
	Move     *pokemon.Move

	// hit context
	Effectiveness float64
	Damage        int
	DamageDealt   int
	ByOpponent    bool

	// modify_power
	STAB              float64
	IgnoreBurn        bool
	ItemMultiplier    float64
	AbilityMultiplier float64

	// modify_damage
	DamageMultiplier float64

	// modify_crit
	CritStages     int
	CritMultiplier float64
	CritBlocked    bool

	// modify_accuracy
	AccuracyMultiplier float64
	AlwaysHit          bool
	IgnoreEvasion      bool

	// modify_speed, modify_priority
	SpeedMultiplier float64
	PriorityDelta   int

	// try_hit
	ImmuneUnlessSuperEffective bool

	// status_attempt, status_inflicted
	Status   pokemon.StatusKind
	Volatile pokemon.VolatileKind

	// stat_drop, stat_lowered
	Stats map[pokemon.Stat]int

	// charge_turn
	SkipCharge bool

	// Blocked is set by a terminal handler; BlockedBy names the source
	Blocked   bool
	BlockedBy string

	// Applied counts handlers that changed something
	Applied int

	// Deferred holds back announcements and one-time consumption until
	// Pipeline.Commit, for effects that only count once the move lands
	Deferred bool
	held     []handler
}

// NewContext returns a context with neutral multipliers
func NewContext(trigger pokemon.Trigger, st *battle.State, attacker, defender *battle.Combatant, move *pokemon.Move) *Context {
	return &Context{
		Trigger:            trigger,
		State:              st,
		Attacker:           attacker,
		Defender:           defender,
		Move:               move,
		Effectiveness:      1,
		STAB:               1,
		ItemMultiplier:     1,
		AbilityMultiplier:  1,
		DamageMultiplier:   1,
		CritMultiplier:     damage.DefaultCrit,
		AccuracyMultiplier: 1,
		SpeedMultiplier:    1,
	}
}

// Block marks the context blocked by a source
func (c *Context) Block(by string) {
	c.Blocked = true
	c.BlockedBy = by
}
