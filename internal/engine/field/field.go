// Package field manages battle-wide and per-side conditions: weather, terrain,
// trick room, entry hazards and timed screens.
package field

import (
	"fmt"

	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

// Durations
const (
	DefaultDuration   = 5
	TrickRoomDuration = 5
)

// Kinds of field change reported in Event.Cause
const (
	CauseScreen    = "screen"
	CauseTrickRoom = "trick_room"
)

var screenOrder = []pokemon.Screen{pokemon.ScreenReflect, pokemon.ScreenLightScreen, pokemon.ScreenTailwind}

// Inflicter applies statuses and stat changes through the effect pipeline so
// ability and item gates still apply to hazard effects
type Inflicter interface {
	InflictStatus(st *battle.State, target *battle.Combatant, kind pokemon.StatusKind, source *battle.Combatant, cause string) bool
	ChangeStats(st *battle.State, target *battle.Combatant, boosts map[pokemon.Stat]int, source *battle.Combatant, cause string) int
}

// duration returns the setter's extended duration for a condition, or DefaultDuration
func duration(setter *battle.Combatant, def int, match func(pokemon.Effect) bool) int {
	if setter == nil {
		return def
	}
	for _, e := range setter.EffectsOfKind(pokemon.KindExtendDuration) {
		if match(e) && e.Duration > def {
			return e.Duration
		}
	}
	return def
}

// SetWeather replaces the weather. It fails when the same weather is already up.
func SetWeather(st *battle.State, weather pokemon.Weather, setter *battle.Combatant) bool {
	if weather == pokemon.WeatherNone || st.Field.Weather == weather {
		return false
	}
	turns := duration(setter, DefaultDuration, func(e pokemon.Effect) bool {
		return e.Weather == weather
	})
	st.Field.Weather = weather
	st.Field.WeatherTurns = turns
	st.Emit(battle.Event{
		Kind:   battle.EventFieldChanged,
		Source: idOf(setter),
		Cause:  battle.CauseWeather,
		Detail: string(weather),
		Amount: turns,
	})
	return true
}

// SetTerrain replaces the terrain. It fails when the same terrain is already up.
func SetTerrain(st *battle.State, terrain pokemon.Terrain, setter *battle.Combatant) bool {
	if terrain == pokemon.TerrainNone || st.Field.Terrain == terrain {
		return false
	}
	turns := duration(setter, DefaultDuration, func(e pokemon.Effect) bool {
		return e.Terrain == terrain
	})
	st.Field.Terrain = terrain
	st.Field.TerrainTurns = turns
	st.Emit(battle.Event{
		Kind:   battle.EventFieldChanged,
		Source: idOf(setter),
		Cause:  battle.CauseTerrain,
		Detail: string(terrain),
		Amount: turns,
	})
	return true
}

// AddHazard lays one layer on a side. It fails at the layer cap.
func AddHazard(st *battle.State, side int, hazard pokemon.Hazard) bool {
	sf := &st.Field.Sides[side]
	if sf.Hazards[hazard] >= hazard.MaxLayers() {
		return false
	}
	if sf.Hazards == nil {
		sf.Hazards = make(map[pokemon.Hazard]int)
	}
	sf.Hazards[hazard]++
	st.Emit(battle.Event{
		Kind:   battle.EventFieldChanged,
		Cause:  battle.CauseHazard,
		Side:   side,
		Detail: string(hazard),
		Amount: sf.Hazards[hazard],
	})
	return true
}

// RemoveHazardLayer takes one layer off a side
func RemoveHazardLayer(st *battle.State, side int, hazard pokemon.Hazard) {
	sf := &st.Field.Sides[side]
	if sf.Hazards[hazard] <= 0 {
		return
	}
	sf.Hazards[hazard]--
	if sf.Hazards[hazard] == 0 {
		delete(sf.Hazards, hazard)
	}
	st.Emit(battle.Event{
		Kind:   battle.EventFieldChanged,
		Cause:  battle.CauseHazard,
		Side:   side,
		Detail: string(hazard),
		Amount: sf.Hazards[hazard],
	})
}

// SetScreen raises a timed side condition. It fails while one is already up.
func SetScreen(st *battle.State, side int, screen pokemon.Screen, setter *battle.Combatant) bool {
	sf := &st.Field.Sides[side]
	if sf.Screens[screen] > 0 {
		return false
	}
	if sf.Screens == nil {
		sf.Screens = make(map[pokemon.Screen]int)
	}
	turns := duration(setter, screen.DefaultTurns(), func(e pokemon.Effect) bool {
		return e.Screen == screen
	})
	sf.Screens[screen] = turns
	st.Emit(battle.Event{
		Kind:   battle.EventFieldChanged,
		Source: idOf(setter),
		Cause:  CauseScreen,
		Side:   side,
		Detail: string(screen),
		Amount: turns,
	})
	return true
}

// ToggleTrickRoom starts trick room, or ends it when already active
func ToggleTrickRoom(st *battle.State, setter *battle.Combatant) bool {
	if st.Field.TrickRoomTurns > 0 {
		st.Field.TrickRoomTurns = 0
	} else {
		st.Field.TrickRoomTurns = TrickRoomDuration
	}
	st.Emit(battle.Event{
		Kind:   battle.EventFieldChanged,
		Source: idOf(setter),
		Cause:  CauseTrickRoom,
		Amount: st.Field.TrickRoomTurns,
	})
	return true
}

// Decrement counts every timed condition down by one and clears the ones that
// reach zero. It runs once per end-of-turn pass.
func Decrement(st *battle.State) {
	f := &st.Field
	if f.Weather != pokemon.WeatherNone && f.WeatherTurns > 0 {
		f.WeatherTurns--
		if f.WeatherTurns == 0 {
			st.Emit(ended(battle.CauseWeather, string(f.Weather), 0))
			f.Weather = pokemon.WeatherNone
		}
	}
	if f.Terrain != pokemon.TerrainNone && f.TerrainTurns > 0 {
		f.TerrainTurns--
		if f.TerrainTurns == 0 {
			st.Emit(ended(battle.CauseTerrain, string(f.Terrain), 0))
			f.Terrain = pokemon.TerrainNone
		}
	}
	if f.TrickRoomTurns > 0 {
		f.TrickRoomTurns--
		if f.TrickRoomTurns == 0 {
			st.Emit(ended(CauseTrickRoom, "", 0))
		}
	}
	for side := range f.Sides {
		sf := &f.Sides[side]
		for _, screen := range screenOrder {
			if sf.Screens[screen] <= 0 {
				continue
			}
			sf.Screens[screen]--
			if sf.Screens[screen] == 0 {
				delete(sf.Screens, screen)
				st.Emit(ended(CauseScreen, string(screen), side))
			}
		}
	}
}

func ended(cause, what string, side int) battle.Event {
	return battle.Event{
		Kind:   battle.EventFieldChanged,
		Cause:  cause,
		Side:   side,
		Detail: fmt.Sprintf("%s_ended", what),
	}
}

func idOf(c *battle.Combatant) string {
	if c == nil {
		return ""
	}
	return c.ID
}
