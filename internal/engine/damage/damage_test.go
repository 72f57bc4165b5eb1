package damage_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/rpg-battle/internal/engine/damage"
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/rng"
)

type DamageTestSuite struct {
	suite.Suite
	chart pokemon.TypeChart
}

func TestDamageSuite(t *testing.T) {
	suite.Run(t, new(DamageTestSuite))
}

func (s *DamageTestSuite) SetupSuite() {
	s.chart = pokemon.StandardChart()
}

func (s *DamageTestSuite) TestBase() {
	// (2*50/5+2) * 40 * 120/120 / 50 + 2 = 19.6
	s.Equal(19, damage.Base(50, 40, 120, 120))
	s.Equal(86, damage.Base(100, 100, 100, 100))
	s.Equal(0, damage.Base(50, 0, 120, 120))
	s.Equal(damage.Base(50, 40, 120, 1), damage.Base(50, 40, 120, 0))
}

func (s *DamageTestSuite) TestModifierOrder() {
	in := damage.Input{Level: 50, Power: 40, Attack: 120, Defense: 120, Effectiveness: 1, Spread: 100}

	testCases := []struct {
		name   string
		modify func(*damage.Input)
		want   int
	}{
		{name: "plain", modify: func(*damage.Input) {}, want: 19},
		{name: "stab and super effective", modify: func(i *damage.Input) { i.STAB = 1.5; i.Effectiveness = 2 }, want: 57},
		{name: "lowest spread", modify: func(i *damage.Input) { i.STAB = 1.5; i.Effectiveness = 2; i.Spread = 85 }, want: 48},
		{name: "critical", modify: func(i *damage.Input) { i.Critical = true }, want: 28},
		{name: "critical with custom multiplier", modify: func(i *damage.Input) { i.Critical = true; i.CritMultiplier = 2 }, want: 38},
		{name: "burned", modify: func(i *damage.Input) { i.Burned = true }, want: 9},
		{name: "weather boost", modify: func(i *damage.Input) { i.WeatherMultiplier = 1.5 }, want: 28},
		{name: "item and ability", modify: func(i *damage.Input) { i.ItemMultiplier = 1.5; i.AbilityMultiplier = 2 }, want: 57},
		{name: "immune", modify: func(i *damage.Input) { i.Effectiveness = 0 }, want: 0},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cp := in
			tc.modify(&cp)
			s.Equal(tc.want, damage.Calculate(cp))
		})
	}
}

func (s *DamageTestSuite) TestMinimumOne() {
	got := damage.Calculate(damage.Input{Level: 1, Power: 10, Attack: 1, Defense: 500, Effectiveness: 0.25, Spread: 85})
	s.Equal(1, got)
	s.Equal(1, damage.Scale(1, 0.5))
	s.Equal(0, damage.Scale(0, 2))
}

func (s *DamageTestSuite) TestEffectiveness() {
	testCases := []struct {
		name    string
		move    pokemon.Type
		defense []pokemon.Type
		guard   bool
		want    float64
	}{
		{name: "neutral", move: pokemon.TypeNormal, defense: []pokemon.Type{pokemon.TypeWater}, want: 1},
		{name: "immune", move: pokemon.TypeNormal, defense: []pokemon.Type{pokemon.TypeGhost}, want: 0},
		{name: "double weakness", move: pokemon.TypeFire, defense: []pokemon.Type{pokemon.TypeGrass, pokemon.TypeSteel}, want: 4},
		{name: "double resist", move: pokemon.TypeWater, defense: []pokemon.Type{pokemon.TypeWater, pokemon.TypeGrass}, want: 0.25},
		{name: "immunity wins over weakness", move: pokemon.TypeGround, defense: []pokemon.Type{pokemon.TypeFire, pokemon.TypeFlying}, want: 0},
		{name: "typeless", move: pokemon.TypeNone, defense: []pokemon.Type{pokemon.TypeGhost}, want: 1},
		{name: "wonder guard blocks neutral", move: pokemon.TypeNormal, defense: []pokemon.Type{pokemon.TypeBug, pokemon.TypeGhost}, guard: true, want: 0},
		{name: "wonder guard lets super effective through", move: pokemon.TypeFire, defense: []pokemon.Type{pokemon.TypeBug, pokemon.TypeGhost}, guard: true, want: 2},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.want, damage.Effectiveness(s.chart, tc.move, tc.defense, tc.guard))
		})
	}
}

func (s *DamageTestSuite) TestWeatherAndTerrain() {
	s.Equal(damage.WeatherBoost, damage.WeatherMultiplier(pokemon.WeatherRain, pokemon.TypeWater))
	s.Equal(damage.WeatherPenalty, damage.WeatherMultiplier(pokemon.WeatherRain, pokemon.TypeFire))
	s.Equal(damage.WeatherBoost, damage.WeatherMultiplier(pokemon.WeatherSun, pokemon.TypeFire))
	s.Equal(1.0, damage.WeatherMultiplier(pokemon.WeatherSandstorm, pokemon.TypeRock))

	s.Equal(damage.TerrainBoost, damage.TerrainMultiplier(pokemon.TerrainElectric, pokemon.TypeElectric, true, false))
	s.Equal(1.0, damage.TerrainMultiplier(pokemon.TerrainElectric, pokemon.TypeElectric, false, true))
	s.Equal(damage.MistyDragonFactor, damage.TerrainMultiplier(pokemon.TerrainMisty, pokemon.TypeDragon, false, true))
}

func (s *DamageTestSuite) TestCritDenominator() {
	s.Equal(24, damage.CritDenominator(0))
	s.Equal(8, damage.CritDenominator(1))
	s.Equal(2, damage.CritDenominator(2))
	s.Equal(1, damage.CritDenominator(3))
	s.Equal(1, damage.CritDenominator(9))
	s.Equal(24, damage.CritDenominator(-1))
}

func (s *DamageTestSuite) TestCriticalIgnoresUnfavorableStages() {
	atk := &battle.Combatant{Stats: pokemon.Stats{Attack: 100}}
	atk.ChangeStage(pokemon.StatAttack, -2)
	s.Equal(50, damage.AttackStat(atk, pokemon.CategoryPhysical, false))
	s.Equal(100, damage.AttackStat(atk, pokemon.CategoryPhysical, true))

	def := &battle.Combatant{Stats: pokemon.Stats{SpDefense: 100}}
	def.ChangeStage(pokemon.StatSpDefense, 2)
	s.Equal(200, damage.DefenseStat(def, pokemon.CategorySpecial, false))
	s.Equal(100, damage.DefenseStat(def, pokemon.CategorySpecial, true))
}

func (s *DamageTestSuite) TestAccuracyThreshold() {
	s.Equal(100, damage.AccuracyThreshold(100, 0, 0, 1))
	s.Equal(75, damage.AccuracyThreshold(100, 0, 1, 1))
	s.Equal(133, damage.AccuracyThreshold(100, 1, 0, 1))
	s.Equal(150, damage.AccuracyThreshold(100, 0, 0, 1.5))
}

func (s *DamageTestSuite) TestHitCount() {
	src := rng.New(3)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		n := damage.HitCount(src, 2, 5, false)
		s.GreaterOrEqual(n, 2)
		s.LessOrEqual(n, 5)
		seen[n] = true
	}
	s.Len(seen, 4)
	s.Equal(5, damage.HitCount(src, 2, 5, true))
	s.Equal(2, damage.HitCount(src, 2, 2, false))
}

func TestCalculateBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := damage.Input{
			Level:         rapid.IntRange(1, 100).Draw(t, "level"),
			Power:         rapid.IntRange(1, 250).Draw(t, "power"),
			Attack:        rapid.IntRange(1, 999).Draw(t, "attack"),
			Defense:       rapid.IntRange(1, 999).Draw(t, "defense"),
			Effectiveness: rapid.SampledFrom([]float64{0.25, 0.5, 1, 2, 4}).Draw(t, "eff"),
			Burned:        rapid.Bool().Draw(t, "burned"),
		}
		low, high := in, in
		low.Spread = damage.MinSpread
		high.Spread = damage.MaxSpread

		lo, hi := damage.Calculate(low), damage.Calculate(high)
		if lo < 1 {
			t.Fatalf("damage %d below one", lo)
		}
		if lo > hi {
			t.Fatalf("low roll %d above high roll %d", lo, hi)
		}
	})
}
