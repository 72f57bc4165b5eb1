// Package status implements the non-volatile and volatile status lifecycle:
// immunity checks, application, cures, the per-action prevention rolls and the
// end-of-turn residual damage. Ability and item gates are layered on top by the
// effect pipeline.
package status

import (
	"github.com/KirkDiggler/rpg-battle/internal/engine/damage"
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

// Per-turn odds, as percentages
const (
	FreezeThawChance       = 20
	ParalysisFailChance    = 25
	ConfusionSelfHitChance = 33
	InfatuationChance      = 50
	MaxToxicCounter        = 15
)

// Immunity reasons
const (
	ReasonAlready = "already_statused"
	ReasonType    = "type"
	ReasonTerrain = "terrain"
	ReasonWeather = "weather"
	ReasonFainted = "fainted"
)

// wakeChances is the wake chance by turns spent asleep. The last entry is 100
// so sleep always ends.
var wakeChances = []int{33, 50, 66, 100}

// WakeChance returns the percent chance to wake on the given sleep turn (1-based)
func WakeChance(turn int) int {
	if turn < 1 {
		turn = 1
	}
	if turn > len(wakeChances) {
		turn = len(wakeChances)
	}
	return wakeChances[turn-1]
}

// Immune reports whether kind cannot be applied to c from type, terrain, weather
// or an existing status. The reason is empty when not immune.
func Immune(st *battle.State, c *battle.Combatant, kind pokemon.StatusKind) string {
	switch {
	case c.Fainted:
		return ReasonFainted
	case c.Status != pokemon.StatusNone:
		return ReasonAlready
	}

	switch kind {
	case pokemon.StatusBurn:
		if c.HasType(pokemon.TypeFire) {
			return ReasonType
		}
	case pokemon.StatusPoison, pokemon.StatusToxic:
		if c.HasType(pokemon.TypePoison) || c.HasType(pokemon.TypeSteel) {
			return ReasonType
		}
	case pokemon.StatusParalysis:
		if c.HasType(pokemon.TypeElectric) {
			return ReasonType
		}
	case pokemon.StatusFreeze:
		if c.HasType(pokemon.TypeIce) {
			return ReasonType
		}
		if st.Field.Weather == pokemon.WeatherSun {
			return ReasonWeather
		}
	}

	if c.Grounded() {
		switch st.Field.Terrain {
		case pokemon.TerrainMisty:
			return ReasonTerrain
		case pokemon.TerrainElectric:
			if kind == pokemon.StatusSleep {
				return ReasonTerrain
			}
		}
	}
	return ""
}

// Apply sets the status without any immunity check
func Apply(st *battle.State, c *battle.Combatant, kind pokemon.StatusKind, source, cause string) {
	c.Status = kind
	c.StatusCounter = 0
	if kind == pokemon.StatusToxic {
		c.StatusCounter = 1
	}
	st.Emit(battle.Event{
		Kind:   battle.EventStatusInflicted,
		Source: source,
		Target: c.ID,
		Status: kind,
		Cause:  cause,
	})
}

// Cure clears the non-volatile status. It reports false when there was none.
func Cure(st *battle.State, c *battle.Combatant, cause string) bool {
	if c.Status == pokemon.StatusNone {
		return false
	}
	cured := c.Status
	c.Status = pokemon.StatusNone
	c.StatusCounter = 0
	st.Emit(battle.Event{
		Kind:   battle.EventStatusCured,
		Target: c.ID,
		Status: cured,
		Cause:  cause,
	})
	return true
}

// BeforeAction rolls sleep, freeze, flinch, confusion, paralysis and
// infatuation in that order. It reports whether c may act; every prevention
// emits an event.
func BeforeAction(st *battle.State, c *battle.Combatant) bool {
	switch c.Status {
	case pokemon.StatusSleep:
		c.StatusCounter++
		if st.RNG.Chance(WakeChance(c.StatusCounter)) {
			Cure(st, c, "woke_up")
		} else {
			skip(st, c, string(pokemon.StatusSleep))
			return false
		}
	case pokemon.StatusFreeze:
		if st.RNG.Chance(FreezeThawChance) {
			Cure(st, c, "thawed")
		} else {
			skip(st, c, string(pokemon.StatusFreeze))
			return false
		}
	}

	if c.HasVolatile(pokemon.VolatileFlinch) {
		skip(st, c, string(pokemon.VolatileFlinch))
		return false
	}

	if v := c.Volatile(pokemon.VolatileConfusion); v != nil {
		v.Turns--
		if v.Turns <= 0 {
			EndVolatile(st, c, pokemon.VolatileConfusion, "")
		} else if st.RNG.Chance(ConfusionSelfHitChance) {
			dmg := damage.ConfusionDamage(c, st.RNG.Between(damage.MinSpread, damage.MaxSpread))
			st.Damage(c, dmg, battle.Event{Source: c.ID, Cause: battle.CauseConfusion})
			return false
		}
	}

	if c.Status == pokemon.StatusParalysis && st.RNG.Chance(ParalysisFailChance) {
		skip(st, c, string(pokemon.StatusParalysis))
		return false
	}

	if v := c.Volatile(pokemon.VolatileInfatuation); v != nil {
		if src := st.Combatant(v.SourceID); src == nil || !st.IsActive(src) {
			EndVolatile(st, c, pokemon.VolatileInfatuation, "")
		} else if st.RNG.Chance(InfatuationChance) {
			skip(st, c, string(pokemon.VolatileInfatuation))
			return false
		}
	}
	return true
}

func skip(st *battle.State, c *battle.Combatant, cause string) {
	st.Emit(battle.Event{Kind: battle.EventActionSkipped, Source: c.ID, Cause: cause})
}

// Residual deals end-of-turn damage from burn, poison and toxic, then binding
// and leech seed. Leech seed heals the opponent by the amount drained.
func Residual(st *battle.State, c *battle.Combatant) {
	if !c.Healthy() {
		return
	}

	switch c.Status {
	case pokemon.StatusBurn:
		st.Damage(c, battle.FractionOfMax(c, 1.0/16), battle.Event{Status: c.Status, Cause: string(c.Status)})
	case pokemon.StatusPoison:
		st.Damage(c, battle.FractionOfMax(c, 1.0/8), battle.Event{Status: c.Status, Cause: string(c.Status)})
	case pokemon.StatusToxic:
		n := c.StatusCounter
		if n < 1 {
			n = 1
		}
		st.Damage(c, battle.FractionOfMax(c, float64(n)/16), battle.Event{Status: c.Status, Cause: string(c.Status)})
		if c.StatusCounter < MaxToxicCounter {
			c.StatusCounter = n + 1
		}
	}

	if c.HasVolatile(pokemon.VolatileBound) && c.Healthy() {
		st.Damage(c, battle.FractionOfMax(c, 1.0/8), battle.Event{Volatile: pokemon.VolatileBound, Cause: string(pokemon.VolatileBound)})
	}

	if c.HasVolatile(pokemon.VolatileLeechSeed) && c.Healthy() {
		drained := st.Damage(c, battle.FractionOfMax(c, 1.0/8), battle.Event{Volatile: pokemon.VolatileLeechSeed, Cause: string(pokemon.VolatileLeechSeed)})
		if opp := st.Opponent(c); opp != nil && opp.Healthy() {
			st.Heal(opp, drained, battle.Event{Source: c.ID, Cause: battle.CauseDrain})
		}
	}
}
