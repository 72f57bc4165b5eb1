// Package damage holds the pure battle arithmetic: the damage formula and its
// ordered modifiers, type effectiveness, critical hits, accuracy and speed.
// Nothing here mutates battle state or draws randomness on its own.
package damage

import (
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

// Multipliers
const (
	DefaultSTAB       = 1.5
	DefaultCrit       = 1.5
	BurnPenalty       = 0.5
	ScreenReduction   = 0.5
	MinSpread         = 85
	MaxSpread         = 100
	ConfusionPower    = 40
	WeatherBoost      = 1.5
	WeatherPenalty    = 0.5
	TerrainBoost      = 1.3
	MistyDragonFactor = 0.5
)

// Input is everything the formula needs for one hit. Zero multipliers are read as 1.
type Input struct {
	Level             int
	Power             int
	Attack            int
	Defense           int
	STAB              float64
	Effectiveness     float64
	Critical          bool
	CritMultiplier    float64
	Burned            bool
	WeatherMultiplier float64
	ItemMultiplier    float64
	AbilityMultiplier float64
	// Spread is the random factor as a percentage in [85, 100]
	Spread int
}

// Base computes floor(((2*level/5+2)*power*atk/def)/50 + 2)
func Base(level, power, attack, defense int) int {
	if defense <= 0 {
		slog.Warn("Non-positive defense clamped", "defense", defense)
		defense = 1
	}
	if power <= 0 || attack <= 0 {
		return 0
	}
	v := ((2*float64(level)/5+2)*float64(power)*float64(attack)/float64(defense))/50 + 2
	return int(math.Floor(v))
}

// Calculate applies the modifiers in order: STAB, effectiveness, critical hit,
// burn, weather, item, ability, random spread. The result is at least 1 unless
// the move has no effect.
func Calculate(in Input) int {
	if in.Effectiveness <= 0 {
		return 0
	}
	base := Base(in.Level, in.Power, in.Attack, in.Defense)
	if base == 0 {
		return 0
	}

	v := float64(base)
	v *= orOne(in.STAB)
	v *= in.Effectiveness
	if in.Critical {
		v *= orDefault(in.CritMultiplier, DefaultCrit)
	}
	if in.Burned {
		v *= BurnPenalty
	}
	v *= orOne(in.WeatherMultiplier)
	v *= orOne(in.ItemMultiplier)
	v *= orOne(in.AbilityMultiplier)
	v *= float64(clampSpread(in.Spread)) / 100

	dmg := int(math.Floor(v))
	if dmg < 1 {
		return 1
	}
	return dmg
}

// Scale multiplies an already computed amount, keeping any hit at 1 or more
func Scale(amount int, multiplier float64) int {
	if amount <= 0 {
		return 0
	}
	v := int(math.Floor(float64(amount) * multiplier))
	if v < 1 && multiplier > 0 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}

func clampSpread(spread int) int {
	switch {
	case spread == 0:
		return MaxSpread
	case spread < MinSpread:
		slog.Warn("Damage spread clamped", "spread", spread)
		return MinSpread
	case spread > MaxSpread:
		slog.Warn("Damage spread clamped", "spread", spread)
		return MaxSpread
	}
	return spread
}

func orOne(v float64) float64 {
	return orDefault(v, 1)
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// Effectiveness is the product of the chart multipliers against each defending
// type. With wonderGuard, anything short of super effective becomes 0.
func Effectiveness(chart pokemon.TypeChart, moveType pokemon.Type, defender []pokemon.Type, wonderGuard bool) float64 {
	eff := chart.Effectiveness(moveType, defender)
	if wonderGuard && eff <= 1 {
		return 0
	}
	return eff
}

// WeatherMultiplier returns the weather factor for a move type
func WeatherMultiplier(weather pokemon.Weather, moveType pokemon.Type) float64 {
	switch weather {
	case pokemon.WeatherSun:
		switch moveType {
		case pokemon.TypeFire:
			return WeatherBoost
		case pokemon.TypeWater:
			return WeatherPenalty
		}
	case pokemon.WeatherRain:
		switch moveType {
		case pokemon.TypeWater:
			return WeatherBoost
		case pokemon.TypeFire:
			return WeatherPenalty
		}
	}
	return 1
}

// TerrainMultiplier returns the terrain factor. Boosts need a grounded attacker;
// misty terrain weakens dragon moves against a grounded target.
func TerrainMultiplier(terrain pokemon.Terrain, moveType pokemon.Type, attackerGrounded, defenderGrounded bool) float64 {
	switch terrain {
	case pokemon.TerrainElectric:
		if moveType == pokemon.TypeElectric && attackerGrounded {
			return TerrainBoost
		}
	case pokemon.TerrainGrassy:
		if moveType == pokemon.TypeGrass && attackerGrounded {
			return TerrainBoost
		}
	case pokemon.TerrainPsychic:
		if moveType == pokemon.TypePsychic && attackerGrounded {
			return TerrainBoost
		}
	case pokemon.TerrainMisty:
		if moveType == pokemon.TypeDragon && defenderGrounded {
			return MistyDragonFactor
		}
	}
	return 1
}

// critDenominators maps a crit stage to 1/n odds
var critDenominators = []int{24, 8, 2, 1}

// CritDenominator returns n for a 1/n critical hit chance at the given stage
func CritDenominator(stage int) int {
	if stage < 0 {
		stage = 0
	}
	if stage >= len(critDenominators) {
		stage = len(critDenominators) - 1
	}
	return critDenominators[stage]
}

// AttackStat is the attacker's effective offensive stat. A critical hit
// ignores negative stages.
func AttackStat(c *battle.Combatant, category pokemon.Category, critical bool) int {
	stat := pokemon.StatAttack
	if category == pokemon.CategorySpecial {
		stat = pokemon.StatSpAttack
	}
	stage := c.Stage(stat)
	if critical && stage < 0 {
		stage = 0
	}
	return staged(c.Stats.Get(stat), stage)
}

// DefenseStat is the defender's effective defensive stat. A critical hit
// ignores positive stages.
func DefenseStat(c *battle.Combatant, category pokemon.Category, critical bool) int {
	stat := pokemon.StatDefense
	if category == pokemon.CategorySpecial {
		stat = pokemon.StatSpDefense
	}
	stage := c.Stage(stat)
	if critical && stage > 0 {
		stage = 0
	}
	return staged(c.Stats.Get(stat), stage)
}

// Speed is the staged speed before ability, item, status and field modifiers
func Speed(c *battle.Combatant) int {
	return staged(c.Stats.Speed, c.Stage(pokemon.StatSpeed))
}

func staged(value, stage int) int {
	v := int(math.Floor(float64(value) * battle.StageMultiplier(stage)))
	if v < 1 {
		return 1
	}
	return v
}

// AccuracyThreshold is the highest d100 roll that still hits
func AccuracyThreshold(accuracy, accuracyStage, evasionStage int, multiplier float64) int {
	stage := battle.ClampStage(accuracyStage - evasionStage)
	v := float64(accuracy) * battle.AccuracyStageMultiplier(stage) * orOne(multiplier)
	return int(math.Floor(v))
}

// ConfusionDamage is the typeless self-hit a confused combatant deals itself
func ConfusionDamage(c *battle.Combatant, spread int) int {
	return Calculate(Input{
		Level:         c.Level,
		Power:         ConfusionPower,
		Attack:        AttackStat(c, pokemon.CategoryPhysical, false),
		Defense:       DefenseStat(c, pokemon.CategoryPhysical, false),
		Effectiveness: 1,
		Spread:        spread,
	})
}
