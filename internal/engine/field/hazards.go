package field

import (
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

// spikesFractions is the share of max HP spikes deal by layer count
var spikesFractions = []float64{0, 1.0 / 8, 1.0 / 6, 1.0 / 4}

// ApplyEntryHazards runs the hazards on c's side as it enters the field
func ApplyEntryHazards(st *battle.State, c *battle.Combatant, chart pokemon.TypeChart, inf Inflicter) {
	if !c.Healthy() || c.HasEffect(pokemon.KindHazardImmunity) {
		return
	}
	side := c.Side
	grounded := c.Grounded()
	hazardEvent := func(h pokemon.Hazard) battle.Event {
		return battle.Event{Cause: battle.CauseHazard, Detail: string(h), Side: side}
	}

	if st.Field.Layers(side, pokemon.HazardStealthRock) > 0 {
		eff := chart.Effectiveness(pokemon.TypeRock, c.Types)
		if eff > 0 {
			st.Damage(c, battle.FractionOfMax(c, eff/8), hazardEvent(pokemon.HazardStealthRock))
		}
	}

	if layers := st.Field.Layers(side, pokemon.HazardSpikes); layers > 0 && grounded && c.Healthy() {
		if layers >= len(spikesFractions) {
			layers = len(spikesFractions) - 1
		}
		st.Damage(c, battle.FractionOfMax(c, spikesFractions[layers]), hazardEvent(pokemon.HazardSpikes))
	}

	if layers := st.Field.Layers(side, pokemon.HazardToxicSpikes); layers > 0 && grounded && c.Healthy() {
		switch {
		case c.HasType(pokemon.TypePoison):
			RemoveHazardLayer(st, side, pokemon.HazardToxicSpikes)
		case layers >= 2:
			inf.InflictStatus(st, c, pokemon.StatusToxic, nil, battle.CauseHazard)
		default:
			inf.InflictStatus(st, c, pokemon.StatusPoison, nil, battle.CauseHazard)
		}
	}

	if st.Field.Layers(side, pokemon.HazardStickyWeb) > 0 && grounded && c.Healthy() {
		inf.ChangeStats(st, c, map[pokemon.Stat]int{pokemon.StatSpeed: -1}, nil, battle.CauseHazard)
	}
}
