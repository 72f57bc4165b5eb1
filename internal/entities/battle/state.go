// Package battle holds the battle aggregate: combatants, sides, field, pending
// actions and the random stream. It is mutated in place, one turn at a time.
package battle

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/rng"
)

// Outcome is the result of a battle
type Outcome string

// Outcomes
const (
	OutcomeOngoing Outcome = "ongoing"
	OutcomeSide1   Outcome = "side_1"
	OutcomeSide2   Outcome = "side_2"
	OutcomeDraw    Outcome = "draw"
)

// WinnerOutcome returns the outcome for a win by the given side index
func WinnerOutcome(side int) Outcome {
	if side == 0 {
		return OutcomeSide1
	}
	return OutcomeSide2
}

// Decided reports whether the battle is over
func (o Outcome) Decided() bool {
	return o != OutcomeOngoing && o != ""
}

// Side is one trainer's party
type Side struct {
	Name   string       `json:"name"`
	Party  []*Combatant `json:"party"`
	Active int          `json:"active"`
}

// ActiveCombatant returns the combatant on the field
func (s *Side) ActiveCombatant() *Combatant {
	if s.Active < 0 || s.Active >= len(s.Party) {
		return nil
	}
	return s.Party[s.Active]
}

// Defeated reports whether no party member can battle
func (s *Side) Defeated() bool {
	for _, c := range s.Party {
		if c.Healthy() {
			return false
		}
	}
	return true
}

// FirstReserve returns the first healthy benched position, or -1
func (s *Side) FirstReserve() int {
	for i, c := range s.Party {
		if i != s.Active && c.Healthy() {
			return i
		}
	}
	return -1
}

// SideField holds one side's hazards and timed screens
type SideField struct {
	Hazards map[pokemon.Hazard]int `json:"hazards,omitempty"`
	Screens map[pokemon.Screen]int `json:"screens,omitempty"`
}

// Field is the shared battlefield
type Field struct {
	Weather        pokemon.Weather `json:"weather,omitempty"`
	WeatherTurns   int             `json:"weather_turns,omitempty"`
	Terrain        pokemon.Terrain `json:"terrain,omitempty"`
	TerrainTurns   int             `json:"terrain_turns,omitempty"`
	TrickRoomTurns int             `json:"trick_room_turns,omitempty"`
	Sides          [2]SideField    `json:"sides"`
}

// Screen returns the remaining turns of a screen on a side
func (f *Field) Screen(side int, screen pokemon.Screen) int {
	return f.Sides[side].Screens[screen]
}

// Layers returns the hazard layers on a side
func (f *Field) Layers(side int, hazard pokemon.Hazard) int {
	return f.Sides[side].Hazards[hazard]
}

// State is the battle aggregate
type State struct {
	ID      string      `json:"id"`
	Seed    int64       `json:"seed"`
	Turn    int         `json:"turn"`
	Sides   [2]*Side    `json:"sides"`
	Field   Field       `json:"field"`
	Outcome Outcome     `json:"outcome"`
	Pending []Action    `json:"pending,omitempty"`
	RNG     *rng.Source `json:"rng"`

	events []Event
}

// Emit records an event stamped with the current turn
func (st *State) Emit(e Event) {
	e.Turn = st.Turn
	st.events = append(st.events, e)
}

// Drain returns and clears the recorded events
func (st *State) Drain() []Event {
	out := st.events
	st.events = nil
	return out
}

// Combatant finds a combatant by id
func (st *State) Combatant(id string) *Combatant {
	for _, side := range st.Sides {
		for _, c := range side.Party {
			if c.ID == id {
				return c
			}
		}
	}
	return nil
}

// Active returns the active combatant of a side
func (st *State) Active(side int) *Combatant {
	return st.Sides[side].ActiveCombatant()
}

// IsActive reports whether the combatant is on the field
func (st *State) IsActive(c *Combatant) bool {
	return st.Active(c.Side) == c
}

// Opponent returns the active combatant facing c
func (st *State) Opponent(c *Combatant) *Combatant {
	return st.Active(1 - c.Side)
}

// ActiveCombatants returns both active combatants in side order
func (st *State) ActiveCombatants() []*Combatant {
	var out []*Combatant
	for i := range st.Sides {
		if c := st.Active(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Damage lowers HP, clamping at zero, and faints the combatant when it reaches zero.
// The template supplies source, move and cause; the applied amount is returned.
func (st *State) Damage(c *Combatant, amount int, tmpl Event) int {
	if amount < 0 {
		slog.Warn("Negative damage clamped", "combatant_id", c.ID, "amount", amount)
		amount = 0
	}
	if c.Fainted || amount == 0 {
		return 0
	}
	dealt := amount
	if dealt > c.HP {
		dealt = c.HP
	}
	c.HP -= dealt

	tmpl.Kind = EventDamage
	tmpl.Target = c.ID
	tmpl.Amount = dealt
	tmpl.HP = c.HP
	st.Emit(tmpl)

	if c.HP == 0 {
		c.Fainted = true
		st.Emit(Event{Kind: EventFainted, Target: c.ID, Side: c.Side})
	}
	return dealt
}

// Heal raises HP up to max and returns the amount restored
func (st *State) Heal(c *Combatant, amount int, tmpl Event) int {
	if amount < 0 {
		slog.Warn("Negative heal clamped", "combatant_id", c.ID, "amount", amount)
		amount = 0
	}
	if c.Fainted || amount == 0 {
		return 0
	}
	healed := amount
	if missing := c.MaxHP() - c.HP; healed > missing {
		healed = missing
	}
	if healed <= 0 {
		return 0
	}
	c.HP += healed

	tmpl.Kind = EventHeal
	tmpl.Target = c.ID
	tmpl.Amount = healed
	tmpl.HP = c.HP
	st.Emit(tmpl)
	return healed
}

// FractionOfMax returns max(1, floor(maxHP * fraction))
func FractionOfMax(c *Combatant, fraction float64) int {
	v := int(float64(c.MaxHP()) * fraction)
	if v < 1 {
		return 1
	}
	return v
}

// DecideOutcome evaluates whether either side has been wiped out
func (st *State) DecideOutcome() Outcome {
	first := st.Sides[0].Defeated()
	second := st.Sides[1].Defeated()
	switch {
	case first && second:
		return OutcomeDraw
	case first:
		return OutcomeSide2
	case second:
		return OutcomeSide1
	default:
		return OutcomeOngoing
	}
}
