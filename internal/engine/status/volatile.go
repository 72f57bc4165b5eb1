package status

import (
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

// volatileOrder fixes the order volatiles are ticked in
var volatileOrder = []pokemon.VolatileKind{
	pokemon.VolatileConfusion,
	pokemon.VolatileInfatuation,
	pokemon.VolatileTaunt,
	pokemon.VolatileEncore,
	pokemon.VolatileBound,
	pokemon.VolatileLeechSeed,
	pokemon.VolatileSubstitute,
	pokemon.VolatileFlinch,
	pokemon.VolatileProtect,
	pokemon.VolatileEndure,
	pokemon.VolatileFocusEnergy,
	pokemon.VolatileCharging,
}

// singleTurn volatiles vanish at the end of the turn they were set
var singleTurn = map[pokemon.VolatileKind]bool{
	pokemon.VolatileFlinch:  true,
	pokemon.VolatileProtect: true,
	pokemon.VolatileEndure:  true,
}

// Duration draws the turn count for a new volatile. 0 means until switch-out.
func Duration(st *battle.State, kind pokemon.VolatileKind) int {
	switch kind {
	case pokemon.VolatileConfusion:
		return st.RNG.Between(2, 5)
	case pokemon.VolatileBound:
		return st.RNG.Between(4, 5)
	case pokemon.VolatileTaunt, pokemon.VolatileEncore:
		return 3
	case pokemon.VolatileFlinch, pokemon.VolatileProtect, pokemon.VolatileEndure:
		return 1
	default:
		return 0
	}
}

// VolatileImmune reports whether a volatile cannot start on c. Volatiles never stack.
func VolatileImmune(c *battle.Combatant, kind pokemon.VolatileKind) bool {
	if c.Fainted || c.HasVolatile(kind) {
		return true
	}
	switch kind {
	case pokemon.VolatileLeechSeed:
		return c.HasType(pokemon.TypeGrass)
	case pokemon.VolatileEncore:
		return c.LastMoveID == ""
	}
	return false
}

// StartVolatile adds the volatile with a freshly drawn duration
func StartVolatile(st *battle.State, c *battle.Combatant, kind pokemon.VolatileKind, source *battle.Combatant, cause string) *battle.Volatile {
	v := &battle.Volatile{Turns: Duration(st, kind)}
	if source != nil {
		v.SourceID = source.ID
	}
	if kind == pokemon.VolatileEncore {
		v.MoveID = c.LastMoveID
	}
	c.SetVolatile(kind, v)

	e := battle.Event{Kind: battle.EventVolatileStarted, Target: c.ID, Volatile: kind, Cause: cause}
	if source != nil {
		e.Source = source.ID
	}
	st.Emit(e)
	return v
}

// EndVolatile removes the volatile and emits its end
func EndVolatile(st *battle.State, c *battle.Combatant, kind pokemon.VolatileKind, cause string) {
	if !c.HasVolatile(kind) {
		return
	}
	c.RemoveVolatile(kind)
	st.Emit(battle.Event{Kind: battle.EventVolatileEnded, Target: c.ID, Volatile: kind, Cause: cause})
}

// TickVolatiles runs the end-of-turn countdown. Confusion counts down on action
// attempts instead and is left alone here.
func TickVolatiles(st *battle.State, c *battle.Combatant) {
	for _, kind := range volatileOrder {
		v := c.Volatile(kind)
		if v == nil {
			continue
		}
		if singleTurn[kind] {
			c.RemoveVolatile(kind)
			continue
		}
		if kind == pokemon.VolatileConfusion || v.Turns == 0 {
			continue
		}
		v.Turns--
		if v.Turns <= 0 {
			EndVolatile(st, c, kind, "")
		}
	}
	if v := c.Volatile(pokemon.VolatileBound); v != nil {
		if src := st.Combatant(v.SourceID); src == nil || !st.IsActive(src) {
			EndVolatile(st, c, pokemon.VolatileBound, "")
		}
	}
}
