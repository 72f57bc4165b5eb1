package battle

import "github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"

// EventKind names a battle event
type EventKind string

// Event kinds
const (
	EventBattleStarted   EventKind = "battle_started"
	EventTurnStarted     EventKind = "turn_started"
	EventMoveUsed        EventKind = "move_used"
	EventSwitched        EventKind = "switched"
	EventItemUsed        EventKind = "item_used"
	EventItemFailed      EventKind = "item_failed"
	EventMoveFailed      EventKind = "move_failed"
	EventMoveMissed      EventKind = "move_missed"
	EventSwitchFailed    EventKind = "switch_failed"
	EventActionSkipped   EventKind = "action_skipped"
	EventDamage          EventKind = "damage_dealt"
	EventHeal            EventKind = "healed"
	EventStatusInflicted EventKind = "status_inflicted"
	EventStatusCured     EventKind = "status_cured"
	EventStatusBlocked   EventKind = "status_blocked"
	EventVolatileStarted EventKind = "volatile_started"
	EventVolatileEnded   EventKind = "volatile_ended"
	EventStatChanged     EventKind = "stat_changed"
	EventFainted         EventKind = "fainted"
	EventFieldChanged    EventKind = "field_changed"
	EventEffectActivated EventKind = "effect_activated"
	EventItemConsumed    EventKind = "item_consumed"
	EventTurnEnded       EventKind = "turn_ended"
	EventBattleEnded     EventKind = "battle_ended"
)

// Event is one observable thing that happened during resolution.
// Source and Target are combatant ids.
type Event struct {
	Turn          int                  `json:"turn"`
	Kind          EventKind            `json:"kind"`
	Source        string               `json:"source,omitempty"`
	Target        string               `json:"target,omitempty"`
	Move          string               `json:"move,omitempty"`
	Status        pokemon.StatusKind   `json:"status,omitempty"`
	Volatile      pokemon.VolatileKind `json:"volatile,omitempty"`
	Stat          pokemon.Stat         `json:"stat,omitempty"`
	Amount        int                  `json:"amount,omitempty"`
	HP            int                  `json:"hp,omitempty"`
	Effectiveness float64              `json:"effectiveness,omitempty"`
	Critical      bool                 `json:"critical,omitempty"`
	Cause         string               `json:"cause,omitempty"`
	Side          int                  `json:"side,omitempty"`
	Detail        string               `json:"detail,omitempty"`
	Outcome       Outcome              `json:"outcome,omitempty"`
}

// Causes attached to events
const (
	CauseWeather   = "weather"
	CauseTerrain   = "terrain"
	CauseHazard    = "hazard"
	CauseRecoil    = "recoil"
	CauseDrain     = "drain"
	CauseConfusion = "confusion"
	CauseNoTarget  = "no_target"
	CauseImmune    = "immune"
	CauseNoPP      = "no_pp"
	CauseFainted   = "fainted"
	CauseTrapped   = "trapped"
	CauseFailed    = "failed"
)

// ItemCause formats the cause for an item-sourced event
func ItemCause(id string) string {
	return "item:" + id
}

// AbilityCause formats the cause for an ability-sourced event
func AbilityCause(id string) string {
	return "ability:" + id
}

// MoveCause formats the cause for a move-sourced event
func MoveCause(id string) string {
	return "move:" + id
}
