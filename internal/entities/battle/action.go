package battle

// ActionKind is what a combatant does with its turn
type ActionKind string

// Action kinds
const (
	ActionMove   ActionKind = "move"
	ActionSwitch ActionKind = "switch"
	ActionItem   ActionKind = "item"
)

// Bracket orders action kinds ahead of priority and speed
func (k ActionKind) Bracket() int {
	switch k {
	case ActionSwitch:
		return 3
	case ActionItem:
		return 2
	default:
		return 1
	}
}

// Action is one submitted choice for the active combatant of a side.
// SwitchTo and ItemTarget are party positions.
type Action struct {
	Kind        ActionKind `json:"kind" yaml:"kind"`
	CombatantID string     `json:"combatant_id" yaml:"combatant_id"`
	MoveID      string     `json:"move_id,omitempty" yaml:"move_id,omitempty"`
	SwitchTo    int        `json:"switch_to,omitempty" yaml:"switch_to,omitempty"`
	ItemID      string     `json:"item_id,omitempty" yaml:"item_id,omitempty"`
	ItemTarget  int        `json:"item_target,omitempty" yaml:"item_target,omitempty"`
}
