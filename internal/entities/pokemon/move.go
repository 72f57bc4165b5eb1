package pokemon

// MoveFlag is a behavioral flag other effects key off
type MoveFlag string

// Move flags
const (
	FlagContact MoveFlag = "contact"
	FlagSound   MoveFlag = "sound"
	FlagPunch   MoveFlag = "punch"
	FlagBite    MoveFlag = "bite"
	FlagPowder  MoveFlag = "powder"
)

// Target says who a move or move effect is aimed at
type Target string

// Targets
const (
	TargetOpponent Target = "opponent"
	TargetSelf     Target = "self"
	// TargetField moves touch the field only and skip protection and accuracy
	TargetField Target = "field"
)

// Move describes a move as the catalog stores it
type Move struct {
	ID        string       `yaml:"id" json:"id"`
	Name      string       `yaml:"name" json:"name"`
	Type      Type         `yaml:"type" json:"type"`
	Category  Category     `yaml:"category" json:"category"`
	Power     int          `yaml:"power" json:"power"`
	Accuracy  *int         `yaml:"accuracy,omitempty" json:"accuracy,omitempty"`
	PP        int          `yaml:"pp" json:"pp"`
	Priority  int          `yaml:"priority" json:"priority"`
	CritStage int          `yaml:"crit_stage" json:"crit_stage"`
	Target    Target       `yaml:"target" json:"target"`
	Flags     []MoveFlag   `yaml:"flags" json:"flags"`
	Effects   []MoveEffect `yaml:"effects" json:"effects"`
	MultiHit  *MultiHit    `yaml:"multi_hit,omitempty" json:"multi_hit,omitempty"`
	Charge    *Charge      `yaml:"charge,omitempty" json:"charge,omitempty"`
}

// HasFlag reports whether the move carries a flag
func (m *Move) HasFlag(flag MoveFlag) bool {
	for _, f := range m.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Damaging reports whether the move goes through the damage calculator
func (m *Move) Damaging() bool {
	return m.Category != CategoryStatus && m.Power > 0
}

// Aim returns the move target, defaulting to the opponent
func (m *Move) Aim() Target {
	if m.Target == "" {
		return TargetOpponent
	}
	return m.Target
}

// HasSecondaries reports whether any effect is a chance-based secondary
func (m *Move) HasSecondaries() bool {
	for _, e := range m.Effects {
		if e.Secondary() {
			return true
		}
	}
	return false
}

// MultiHit strikes between Min and Max times
type MultiHit struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Charge marks a two-turn move. SkipWeather lets it fire immediately.
type Charge struct {
	SkipWeather Weather `yaml:"skip_weather,omitempty" json:"skip_weather,omitempty"`
}

// MoveEffectKind enumerates what a move effect does
type MoveEffectKind string

// Move effect kinds
const (
	MoveEffectStatus     MoveEffectKind = "status"
	MoveEffectVolatile   MoveEffectKind = "volatile"
	MoveEffectBoost      MoveEffectKind = "boost"
	MoveEffectWeather    MoveEffectKind = "weather"
	MoveEffectTerrain    MoveEffectKind = "terrain"
	MoveEffectHazard     MoveEffectKind = "hazard"
	MoveEffectScreen     MoveEffectKind = "screen"
	MoveEffectTrickRoom  MoveEffectKind = "trick_room"
	MoveEffectHeal       MoveEffectKind = "heal"
	MoveEffectDrain      MoveEffectKind = "drain"
	MoveEffectRecoil     MoveEffectKind = "recoil"
	MoveEffectProtect    MoveEffectKind = "protect"
	MoveEffectEndure     MoveEffectKind = "endure"
	MoveEffectCure       MoveEffectKind = "cure"
	MoveEffectSubstitute MoveEffectKind = "substitute"
)

// MoveEffect is one primary or secondary effect of a move.
// Chance is a percentage; 0 and 100 both mean the effect always applies.
type MoveEffect struct {
	Kind     MoveEffectKind `yaml:"kind" json:"kind"`
	Chance   int            `yaml:"chance,omitempty" json:"chance,omitempty"`
	Target   Target         `yaml:"target,omitempty" json:"target,omitempty"`
	Status   StatusKind     `yaml:"status,omitempty" json:"status,omitempty"`
	Volatile VolatileKind   `yaml:"volatile,omitempty" json:"volatile,omitempty"`
	Stat     Stat           `yaml:"stat,omitempty" json:"stat,omitempty"`
	Stages   int            `yaml:"stages,omitempty" json:"stages,omitempty"`
	Weather  Weather        `yaml:"weather,omitempty" json:"weather,omitempty"`
	Terrain  Terrain        `yaml:"terrain,omitempty" json:"terrain,omitempty"`
	Hazard   Hazard         `yaml:"hazard,omitempty" json:"hazard,omitempty"`
	Screen   Screen         `yaml:"screen,omitempty" json:"screen,omitempty"`
	Percent  int            `yaml:"percent,omitempty" json:"percent,omitempty"`
}

// Secondary reports whether the effect is rolled for
func (e MoveEffect) Secondary() bool {
	return e.Chance > 0 && e.Chance < 100
}

// Aim returns the effect target, defaulting to the opponent
func (e MoveEffect) Aim() Target {
	if e.Target == "" {
		return TargetOpponent
	}
	return e.Target
}
