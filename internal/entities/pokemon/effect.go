package pokemon

// Trigger is a named point in turn resolution where ability, item and status
// effects may fire.
type Trigger string

// Trigger points
const (
	TriggerSwitchIn       Trigger = "switch_in"
	TriggerSwitchOut      Trigger = "switch_out"
	TriggerBeforeMove     Trigger = "before_move"
	TriggerChargeTurn     Trigger = "charge_turn"
	TriggerModifyPriority Trigger = "modify_priority"
	TriggerModifySpeed    Trigger = "modify_speed"
	TriggerModifyAccuracy Trigger = "modify_accuracy"
	TriggerTryHit         Trigger = "try_hit"
	TriggerModifyCrit     Trigger = "modify_crit"
	TriggerModifyPower    Trigger = "modify_power"
	TriggerModifyDamage   Trigger = "modify_damage"
	TriggerSurviveHit     Trigger = "survive_hit"
	TriggerHitReceived    Trigger = "hit_received"
	TriggerHitDealt       Trigger = "hit_dealt"
	TriggerContact        Trigger = "contact"
	TriggerFaint          Trigger = "faint"
	TriggerStatusAttempt  Trigger = "status_attempt"
	TriggerStatusInflict  Trigger = "status_inflicted"
	TriggerStatDrop       Trigger = "stat_drop"
	TriggerStatLowered    Trigger = "stat_lowered"
	TriggerHPChanged      Trigger = "hp_changed"
	TriggerWeatherActive  Trigger = "weather_active"
	TriggerEndOfTurn      Trigger = "end_of_turn"
	TriggerUse            Trigger = "use"
)

// EffectKind is the closed set of behaviors an ability, item or status can have.
// Each kind reads only the parameters it needs from Effect.
type EffectKind string

// Effect kinds
const (
	KindSetWeather        EffectKind = "set_weather"
	KindSetTerrain        EffectKind = "set_terrain"
	KindStatStage         EffectKind = "stat_stage"
	KindTypeImmunity      EffectKind = "type_immunity"
	KindWonderGuard       EffectKind = "wonder_guard"
	KindBlockMove         EffectKind = "block_move"
	KindBlockStatusMoves  EffectKind = "block_status_moves"
	KindStatusImmunity    EffectKind = "status_immunity"
	KindPreventStatLoss   EffectKind = "prevent_stat_loss"
	KindRestoreStats      EffectKind = "restore_stats"
	KindPowerMultiplier   EffectKind = "power_multiplier"
	KindStabMultiplier    EffectKind = "stab_multiplier"
	KindIgnoreBurn        EffectKind = "ignore_burn"
	KindDamageReduction   EffectKind = "damage_reduction"
	KindCritStage         EffectKind = "crit_stage"
	KindCritMultiplier    EffectKind = "crit_multiplier"
	KindCritImmunity      EffectKind = "crit_immunity"
	KindSpeedMultiplier   EffectKind = "speed_multiplier"
	KindPriorityBoost     EffectKind = "priority_boost"
	KindAccuracyBoost     EffectKind = "accuracy_multiplier"
	KindEvasionBoost      EffectKind = "evasion_multiplier"
	KindAlwaysHit         EffectKind = "always_hit"
	KindIgnoreEvasion     EffectKind = "ignore_evasion"
	KindContactStatus     EffectKind = "contact_status"
	KindContactDamage     EffectKind = "contact_damage"
	KindSurviveHit        EffectKind = "survive_hit"
	KindHeal              EffectKind = "heal"
	KindSelfDamage        EffectKind = "self_damage"
	KindHealFromDamage    EffectKind = "heal_from_damage"
	KindInflictSelfStatus EffectKind = "inflict_self_status"
	KindCureStatus        EffectKind = "cure_status"
	KindWeatherImmunity   EffectKind = "weather_immunity"
	KindMoveLock          EffectKind = "move_lock"
	KindSkipCharge        EffectKind = "skip_charge"

	// Queried directly rather than dispatched
	KindHazardImmunity    EffectKind = "hazard_immunity"
	KindExtendDuration    EffectKind = "extend_duration"
	KindMaxHits           EffectKind = "max_hits"
	KindSecondaryChance   EffectKind = "secondary_chance"
	KindSuppressSecondary EffectKind = "suppress_secondary"
	KindUngrounded        EffectKind = "ungrounded"
)

// Condition gates an effect on battle context
type Condition string

// Conditions
const (
	ConditionNone           Condition = ""
	ConditionSuperEffective Condition = "super_effective"
	ConditionHPBelow        Condition = "hp_below"
	ConditionFullHP         Condition = "full_hp"
	ConditionStatused       Condition = "statused"
	ConditionContact        Condition = "contact"
	ConditionLowPower       Condition = "low_power"
	ConditionHolderType     Condition = "holder_type"
	ConditionNotHolderType  Condition = "not_holder_type"
	ConditionHasSecondary   Condition = "has_secondary"
)

// Effect is one behavior of an ability or held item.
//
// Fraction is a share of max HP (or of damage dealt for heal_from_damage).
// Percent is a chance. MoveType and Category filter the move in context when set,
// and Weather gates every kind except set_weather on the active weather.
type Effect struct {
	Trigger    Trigger        `yaml:"trigger,omitempty" json:"trigger,omitempty"`
	Kind       EffectKind     `yaml:"kind" json:"kind"`
	Condition  Condition      `yaml:"condition,omitempty" json:"condition,omitempty"`
	Target     Target         `yaml:"target,omitempty" json:"target,omitempty"`
	Boosts     map[Stat]int   `yaml:"boosts,omitempty" json:"boosts,omitempty"`
	Multiplier float64        `yaml:"multiplier,omitempty" json:"multiplier,omitempty"`
	Threshold  float64        `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	Fraction   float64        `yaml:"fraction,omitempty" json:"fraction,omitempty"`
	Amount     int            `yaml:"amount,omitempty" json:"amount,omitempty"`
	Percent    int            `yaml:"percent,omitempty" json:"percent,omitempty"`
	Stages     int            `yaml:"stages,omitempty" json:"stages,omitempty"`
	Duration   int            `yaml:"duration,omitempty" json:"duration,omitempty"`
	MoveType   Type           `yaml:"move_type,omitempty" json:"move_type,omitempty"`
	Category   Category       `yaml:"category,omitempty" json:"category,omitempty"`
	Status     StatusKind     `yaml:"status,omitempty" json:"status,omitempty"`
	Statuses   []StatusKind   `yaml:"statuses,omitempty" json:"statuses,omitempty"`
	Volatiles  []VolatileKind `yaml:"volatiles,omitempty" json:"volatiles,omitempty"`
	Weather    Weather        `yaml:"weather,omitempty" json:"weather,omitempty"`
	Terrain    Terrain        `yaml:"terrain,omitempty" json:"terrain,omitempty"`
	Screen     Screen         `yaml:"screen,omitempty" json:"screen,omitempty"`
	HolderType Type           `yaml:"holder_type,omitempty" json:"holder_type,omitempty"`
	OneTime    bool           `yaml:"one_time,omitempty" json:"one_time,omitempty"`
}

// Ability is a fixed per-battle trait
type Ability struct {
	ID      string   `yaml:"id" json:"id"`
	Name    string   `yaml:"name" json:"name"`
	Effects []Effect `yaml:"effects" json:"effects"`
}

// Item is a held item or, when Bag is set, an item used from the bag as an action
type Item struct {
	ID      string   `yaml:"id" json:"id"`
	Name    string   `yaml:"name" json:"name"`
	Bag     bool     `yaml:"bag,omitempty" json:"bag,omitempty"`
	Effects []Effect `yaml:"effects" json:"effects"`
}

// Species is the static stat and type line a combatant is built from
type Species struct {
	ID        string `yaml:"id" json:"id"`
	Name      string `yaml:"name" json:"name"`
	Types     []Type `yaml:"types" json:"types"`
	BaseStats Stats  `yaml:"base_stats" json:"base_stats"`
}

// HasEffect reports whether any effect in the list is of the given kind
func HasEffect(effects []Effect, kind EffectKind) bool {
	for _, e := range effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
