// Package pokemon holds the immutable descriptors the battle engine reads from
// the catalog: types, moves, abilities, items and species.
package pokemon

// Type is an elemental type
type Type string

// Types
const (
	TypeNone     Type = ""
	TypeNormal   Type = "normal"
	TypeFire     Type = "fire"
	TypeWater    Type = "water"
	TypeElectric Type = "electric"
	TypeGrass    Type = "grass"
	TypeIce      Type = "ice"
	TypeFighting Type = "fighting"
	TypePoison   Type = "poison"
	TypeGround   Type = "ground"
	TypeFlying   Type = "flying"
	TypePsychic  Type = "psychic"
	TypeBug      Type = "bug"
	TypeRock     Type = "rock"
	TypeGhost    Type = "ghost"
	TypeDragon   Type = "dragon"
	TypeDark     Type = "dark"
	TypeSteel    Type = "steel"
	TypeFairy    Type = "fairy"
)

// Category is the damage class of a move
type Category string

// Categories
const (
	CategoryPhysical Category = "physical"
	CategorySpecial  Category = "special"
	CategoryStatus   Category = "status"
)

// Stat identifies a battle stat. Accuracy and evasion only exist as stages.
type Stat string

// Stats
const (
	StatHP        Stat = "hp"
	StatAttack    Stat = "attack"
	StatDefense   Stat = "defense"
	StatSpAttack  Stat = "sp_attack"
	StatSpDefense Stat = "sp_defense"
	StatSpeed     Stat = "speed"
	StatAccuracy  Stat = "accuracy"
	StatEvasion   Stat = "evasion"
)

// StageStats lists every stat that carries a stage, in a fixed order
var StageStats = []Stat{
	StatAttack, StatDefense, StatSpAttack, StatSpDefense, StatSpeed, StatAccuracy, StatEvasion,
}

// Stats is a full stat block
type Stats struct {
	HP        int `yaml:"hp" json:"hp"`
	Attack    int `yaml:"attack" json:"attack"`
	Defense   int `yaml:"defense" json:"defense"`
	SpAttack  int `yaml:"sp_attack" json:"sp_attack"`
	SpDefense int `yaml:"sp_defense" json:"sp_defense"`
	Speed     int `yaml:"speed" json:"speed"`
}

// Get returns the value of a stat. Accuracy and evasion have no base value.
func (s Stats) Get(stat Stat) int {
	switch stat {
	case StatHP:
		return s.HP
	case StatAttack:
		return s.Attack
	case StatDefense:
		return s.Defense
	case StatSpAttack:
		return s.SpAttack
	case StatSpDefense:
		return s.SpDefense
	case StatSpeed:
		return s.Speed
	default:
		return 0
	}
}

// StatusKind is a non-volatile status. At most one is active per combatant.
type StatusKind string

// Non-volatile statuses
const (
	StatusNone      StatusKind = ""
	StatusBurn      StatusKind = "burn"
	StatusPoison    StatusKind = "poison"
	StatusToxic     StatusKind = "toxic"
	StatusParalysis StatusKind = "paralysis"
	StatusSleep     StatusKind = "sleep"
	StatusFreeze    StatusKind = "freeze"
)

// VolatileKind is a volatile status; any number may be active and each keeps its own counter.
type VolatileKind string

// Volatile statuses
const (
	VolatileConfusion   VolatileKind = "confusion"
	VolatileInfatuation VolatileKind = "infatuation"
	VolatileTaunt       VolatileKind = "taunt"
	VolatileEncore      VolatileKind = "encore"
	VolatileBound       VolatileKind = "bound"
	VolatileLeechSeed   VolatileKind = "leech_seed"
	VolatileSubstitute  VolatileKind = "substitute"
	VolatileFlinch      VolatileKind = "flinch"
	VolatileProtect     VolatileKind = "protect"
	VolatileEndure      VolatileKind = "endure"
	VolatileFocusEnergy VolatileKind = "focus_energy"
	VolatileCharging    VolatileKind = "charging"
)

// Weather is the battle-wide weather
type Weather string

// Weathers
const (
	WeatherNone      Weather = ""
	WeatherSun       Weather = "sun"
	WeatherRain      Weather = "rain"
	WeatherSandstorm Weather = "sandstorm"
	WeatherHail      Weather = "hail"
)

// Terrain is the battle-wide terrain
type Terrain string

// Terrains
const (
	TerrainNone     Terrain = ""
	TerrainElectric Terrain = "electric"
	TerrainGrassy   Terrain = "grassy"
	TerrainPsychic  Terrain = "psychic"
	TerrainMisty    Terrain = "misty"
)

// Hazard is an entry hazard laid on one side of the field
type Hazard string

// Hazards
const (
	HazardStealthRock Hazard = "stealth_rock"
	HazardSpikes      Hazard = "spikes"
	HazardToxicSpikes Hazard = "toxic_spikes"
	HazardStickyWeb   Hazard = "sticky_web"
)

// MaxLayers returns how many layers of a hazard one side can hold
func (h Hazard) MaxLayers() int {
	switch h {
	case HazardSpikes:
		return 3
	case HazardToxicSpikes:
		return 2
	case HazardStealthRock, HazardStickyWeb:
		return 1
	default:
		return 0
	}
}

// Screen is a timed per-side condition
type Screen string

// Screens
const (
	ScreenReflect     Screen = "reflect"
	ScreenLightScreen Screen = "light_screen"
	ScreenTailwind    Screen = "tailwind"
)

// DefaultTurns is how long a screen lasts without an extending item
func (s Screen) DefaultTurns() int {
	if s == ScreenTailwind {
		return 4
	}
	return 5
}
