package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-battle/internal/catalog"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

// Fixture species. Each has a single type so type math stays easy to follow.
const (
	SpeciesNormal = "normie"
	SpeciesFire   = "emberling"
	SpeciesWater  = "puddle"
	SpeciesGrass  = "sprout"
	SpeciesPoison = "toxling"
	SpeciesRock   = "pebble"
	SpeciesGhost  = "wisp"
	SpeciesFlying = "skyling"
	SpeciesSteel  = "ironclad"
	SpeciesIce    = "glacier"
)

func acc(v int) *int {
	return &v
}

// FixtureData returns the raw fixture tables
func FixtureData() *catalog.Data {
	base := pokemon.Stats{HP: 100, Attack: 100, Defense: 100, SpAttack: 100, SpDefense: 100, Speed: 100}
	species := func(id string, types ...pokemon.Type) pokemon.Species {
		return pokemon.Species{ID: id, Name: id, Types: types, BaseStats: base}
	}

	return &catalog.Data{
		Species: []pokemon.Species{
			species(SpeciesNormal, pokemon.TypeNormal),
			species(SpeciesFire, pokemon.TypeFire),
			species(SpeciesWater, pokemon.TypeWater),
			species(SpeciesGrass, pokemon.TypeGrass),
			species(SpeciesPoison, pokemon.TypePoison),
			species(SpeciesRock, pokemon.TypeRock),
			species(SpeciesGhost, pokemon.TypeGhost),
			species(SpeciesFlying, pokemon.TypeFlying),
			species(SpeciesSteel, pokemon.TypeSteel),
			species(SpeciesIce, pokemon.TypeIce),
		},
		Moves: []pokemon.Move{
			{ID: "tackle", Name: "Tackle", Type: pokemon.TypeNormal, Category: pokemon.CategoryPhysical, Power: 40, Accuracy: acc(100), PP: 35, Flags: []pokemon.MoveFlag{pokemon.FlagContact}},
			{ID: "quick_attack", Name: "Quick Attack", Type: pokemon.TypeNormal, Category: pokemon.CategoryPhysical, Power: 40, Accuracy: acc(100), PP: 30, Priority: 1, Flags: []pokemon.MoveFlag{pokemon.FlagContact}},
			{ID: "swift", Name: "Swift", Type: pokemon.TypeNormal, Category: pokemon.CategorySpecial, Power: 60, PP: 20},
			{ID: "ember", Name: "Ember", Type: pokemon.TypeFire, Category: pokemon.CategorySpecial, Power: 40, Accuracy: acc(100), PP: 25},
			{ID: "water_gun", Name: "Water Gun", Type: pokemon.TypeWater, Category: pokemon.CategorySpecial, Power: 40, Accuracy: acc(100), PP: 25},
			{ID: "earthquake", Name: "Earthquake", Type: pokemon.TypeGround, Category: pokemon.CategoryPhysical, Power: 100, Accuracy: acc(100), PP: 10},
			{ID: "double_kick", Name: "Double Kick", Type: pokemon.TypeFighting, Category: pokemon.CategoryPhysical, Power: 30, Accuracy: acc(100), PP: 30, MultiHit: &pokemon.MultiHit{Min: 2, Max: 2}},
			{ID: "bullet_seed", Name: "Bullet Seed", Type: pokemon.TypeGrass, Category: pokemon.CategoryPhysical, Power: 25, Accuracy: acc(100), PP: 30, MultiHit: &pokemon.MultiHit{Min: 2, Max: 5}},
			{ID: "solar_beam", Name: "Solar Beam", Type: pokemon.TypeGrass, Category: pokemon.CategorySpecial, Power: 120, Accuracy: acc(100), PP: 10, Charge: &pokemon.Charge{SkipWeather: pokemon.WeatherSun}},
			{ID: "will_o_wisp", Name: "Will-O-Wisp", Type: pokemon.TypeFire, Category: pokemon.CategoryStatus, Accuracy: acc(100), PP: 15, Effects: []pokemon.MoveEffect{{Kind: pokemon.MoveEffectStatus, Status: pokemon.StatusBurn}}},
			{ID: "toxic", Name: "Toxic", Type: pokemon.TypePoison, Category: pokemon.CategoryStatus, Accuracy: acc(100), PP: 10, Effects: []pokemon.MoveEffect{{Kind: pokemon.MoveEffectStatus, Status: pokemon.StatusToxic}}},
			{ID: "thunder_wave", Name: "Thunder Wave", Type: pokemon.TypeElectric, Category: pokemon.CategoryStatus, Accuracy: acc(100), PP: 20, Effects: []pokemon.MoveEffect{{Kind: pokemon.MoveEffectStatus, Status: pokemon.StatusParalysis}}},
			{ID: "confuse_ray", Name: "Confuse Ray", Type: pokemon.TypeGhost, Category: pokemon.CategoryStatus, Accuracy: acc(100), PP: 10, Effects: []pokemon.MoveEffect{{Kind: pokemon.MoveEffectVolatile, Volatile: pokemon.VolatileConfusion}}},
			{ID: "leech_seed", Name: "Leech Seed", Type: pokemon.TypeGrass, Category: pokemon.CategoryStatus, Accuracy: acc(100), PP: 10, Effects: []pokemon.MoveEffect{{Kind: pokemon.MoveEffectVolatile, Volatile: pokemon.VolatileLeechSeed}}},
			{ID: "growl", Name: "Growl", Type: pokemon.TypeNormal, Category: pokemon.CategoryStatus, Accuracy: acc(100), PP: 40, Effects: []pokemon.MoveEffect{{Kind: pokemon.MoveEffectBoost, Stat: pokemon.StatAttack, Stages: -1}}},
			{ID: "swords_dance", Name: "Swords Dance", Type: pokemon.TypeNormal, Category: pokemon.CategoryStatus, PP: 20, Target: pokemon.TargetSelf, Effects: []pokemon.MoveEffect{{Kind: pokemon.MoveEffectBoost, Target: pokemon.TargetSelf, Stat: pokemon.StatAttack, Stages: 2}}},
			{ID: "splash", Name: "Splash", Type: pokemon.TypeNormal, Category: pokemon.CategoryStatus, PP: 40, Target: pokemon.TargetSelf},
			{ID: "protect", Name: "Protect", Type: pokemon.TypeNormal, Category: pokemon.CategoryStatus, PP: 10, Priority: 4, Target: pokemon.TargetSelf, Effects: []pokemon.MoveEffect{{Kind: pokemon.MoveEffectProtect, Target: pokemon.TargetSelf}}},
			{ID: "substitute", Name: "Substitute", Type: pokemon.TypeNormal, Category: pokemon.CategoryStatus, PP: 10, Target: pokemon.TargetSelf, Effects: []pokemon.MoveEffect{{Kind: pokemon.MoveEffectSubstitute, Target: pokemon.TargetSelf}}},
			{ID: "rain_dance", Name: "Rain Dance", Type: pokemon.TypeWater, Category: pokemon.CategoryStatus, PP: 5, Target: pokemon.TargetField, Effects: []pokemon.MoveEffect{{Kind: pokemon.MoveEffectWeather, Weather: pokemon.WeatherRain}}},
			{ID: "sandstorm", Name: "Sandstorm", Type: pokemon.TypeRock, Category: pokemon.CategoryStatus, PP: 10, Target: pokemon.TargetField, Effects: []pokemon.MoveEffect{{Kind: pokemon.MoveEffectWeather, Weather: pokemon.WeatherSandstorm}}},
			{ID: "toxic_spikes", Name: "Toxic Spikes", Type: pokemon.TypePoison, Category: pokemon.CategoryStatus, PP: 20, Target: pokemon.TargetField, Effects: []pokemon.MoveEffect{{Kind: pokemon.MoveEffectHazard, Hazard: pokemon.HazardToxicSpikes}}},
			{ID: "stealth_rock", Name: "Stealth Rock", Type: pokemon.TypeRock, Category: pokemon.CategoryStatus, PP: 20, Target: pokemon.TargetField, Effects: []pokemon.MoveEffect{{Kind: pokemon.MoveEffectHazard, Hazard: pokemon.HazardStealthRock}}},
			{ID: "reflect", Name: "Reflect", Type: pokemon.TypePsychic, Category: pokemon.CategoryStatus, PP: 20, Target: pokemon.TargetField, Effects: []pokemon.MoveEffect{{Kind: pokemon.MoveEffectScreen, Screen: pokemon.ScreenReflect}}},
			{ID: "trick_room", Name: "Trick Room", Type: pokemon.TypePsychic, Category: pokemon.CategoryStatus, PP: 5, Priority: -7, Target: pokemon.TargetField, Effects: []pokemon.MoveEffect{{Kind: pokemon.MoveEffectTrickRoom}}},
		},
		Abilities: []pokemon.Ability{
			{ID: "intimidate", Name: "Intimidate", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerSwitchIn, Kind: pokemon.KindStatStage, Target: pokemon.TargetOpponent, Boosts: map[pokemon.Stat]int{pokemon.StatAttack: -1}},
			}},
			{ID: "clear_body", Name: "Clear Body", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerStatDrop, Kind: pokemon.KindPreventStatLoss},
			}},
			{ID: "defiant", Name: "Defiant", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerStatLowered, Kind: pokemon.KindStatStage, Boosts: map[pokemon.Stat]int{pokemon.StatAttack: 2}},
			}},
			{ID: "levitate", Name: "Levitate", Effects: []pokemon.Effect{
				{Kind: pokemon.KindUngrounded},
				{Trigger: pokemon.TriggerTryHit, Kind: pokemon.KindTypeImmunity, MoveType: pokemon.TypeGround},
			}},
			{ID: "wonder_guard", Name: "Wonder Guard", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerTryHit, Kind: pokemon.KindWonderGuard},
			}},
			{ID: "sturdy", Name: "Sturdy", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerSurviveHit, Kind: pokemon.KindSurviveHit, Condition: pokemon.ConditionFullHP},
			}},
			{ID: "drizzle", Name: "Drizzle", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerSwitchIn, Kind: pokemon.KindSetWeather, Weather: pokemon.WeatherRain},
			}},
			{ID: "prankster", Name: "Prankster", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerModifyPriority, Kind: pokemon.KindPriorityBoost, Amount: 1, Category: pokemon.CategoryStatus},
			}},
			{ID: "skill_link", Name: "Skill Link", Effects: []pokemon.Effect{
				{Kind: pokemon.KindMaxHits},
			}},
			{ID: "limber", Name: "Limber", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerStatusAttempt, Kind: pokemon.KindStatusImmunity, Statuses: []pokemon.StatusKind{pokemon.StatusParalysis}},
			}},
			{ID: "rain_dish", Name: "Rain Dish", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerEndOfTurn, Kind: pokemon.KindHeal, Fraction: 0.0625, Weather: pokemon.WeatherRain},
			}},
			{ID: "adaptability", Name: "Adaptability", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerModifyPower, Kind: pokemon.KindStabMultiplier, Multiplier: 2},
			}},
			{ID: "sniper", Name: "Sniper", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerModifyCrit, Kind: pokemon.KindCritMultiplier, Multiplier: 2.25},
			}},
			{ID: "guts", Name: "Guts", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerModifyPower, Kind: pokemon.KindPowerMultiplier, Multiplier: 1.5, Condition: pokemon.ConditionStatused, Category: pokemon.CategoryPhysical},
				{Trigger: pokemon.TriggerModifyPower, Kind: pokemon.KindIgnoreBurn, Condition: pokemon.ConditionStatused},
			}},
			{ID: "regenerator", Name: "Regenerator", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerSwitchOut, Kind: pokemon.KindHeal, Fraction: 0.3333},
			}},
		},
		Items: []pokemon.Item{
			{ID: "leftovers", Name: "Leftovers", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerEndOfTurn, Kind: pokemon.KindHeal, Fraction: 0.0625},
			}},
			{ID: "focus_sash", Name: "Focus Sash", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerSurviveHit, Kind: pokemon.KindSurviveHit, Condition: pokemon.ConditionFullHP, OneTime: true},
			}},
			{ID: "sitrus_berry", Name: "Sitrus Berry", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerHPChanged, Kind: pokemon.KindHeal, Fraction: 0.25, Condition: pokemon.ConditionHPBelow, Threshold: 0.5, OneTime: true},
			}},
			{ID: "damp_rock", Name: "Damp Rock", Effects: []pokemon.Effect{
				{Kind: pokemon.KindExtendDuration, Weather: pokemon.WeatherRain, Duration: 8},
			}},
			{ID: "choice_scarf", Name: "Choice Scarf", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerModifySpeed, Kind: pokemon.KindSpeedMultiplier, Multiplier: 1.5},
				{Trigger: pokemon.TriggerBeforeMove, Kind: pokemon.KindMoveLock},
			}},
			{ID: "life_orb", Name: "Life Orb", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerModifyPower, Kind: pokemon.KindPowerMultiplier, Multiplier: 1.3},
				{Trigger: pokemon.TriggerHitDealt, Kind: pokemon.KindSelfDamage, Fraction: 0.1},
			}},
			{ID: "heavy_duty_boots", Name: "Heavy-Duty Boots", Effects: []pokemon.Effect{
				{Kind: pokemon.KindHazardImmunity},
			}},
			{ID: "white_herb", Name: "White Herb", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerStatLowered, Kind: pokemon.KindRestoreStats, OneTime: true},
			}},
			{ID: "lum_berry", Name: "Lum Berry", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerStatusInflict, Kind: pokemon.KindCureStatus, OneTime: true},
			}},
			{ID: "power_herb", Name: "Power Herb", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerChargeTurn, Kind: pokemon.KindSkipCharge, OneTime: true},
			}},
			{ID: "quick_claw", Name: "Quick Claw", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerModifyPriority, Kind: pokemon.KindPriorityBoost, Amount: 1, Percent: 20},
			}},
			// keen_lens always lands critical hits
			{ID: "keen_lens", Name: "Keen Lens", Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerModifyCrit, Kind: pokemon.KindCritStage, Stages: 3},
			}},
			{ID: "potion", Name: "Potion", Bag: true, Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerUse, Kind: pokemon.KindHeal, Amount: 20},
			}},
			{ID: "full_heal", Name: "Full Heal", Bag: true, Effects: []pokemon.Effect{
				{Trigger: pokemon.TriggerUse, Kind: pokemon.KindCureStatus},
			}},
		},
	}
}

// Catalog returns the fixture tables as a catalog
func Catalog(t testing.TB) *catalog.Memory {
	t.Helper()
	cat, err := catalog.New(FixtureData())
	require.NoError(t, err)
	return cat
}
