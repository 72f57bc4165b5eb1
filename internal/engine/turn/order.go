package turn

import (
	"math"
	"sort"

	"github.com/KirkDiggler/rpg-battle/internal/engine/damage"
	"github.com/KirkDiggler/rpg-battle/internal/engine/effects"
	"github.com/KirkDiggler/rpg-battle/internal/engine/field"
	"github.com/KirkDiggler/rpg-battle/internal/engine/status"
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

// tieRange bounds the random tie-break key drawn per action
const tieRange = 1 << 20

// queued is one action with the keys it was ordered by. The priority is
// kept so execution reuses it instead of dispatching modify_priority again.
type queued struct {
	action   battle.Action
	actor    *battle.Combatant
	move     *pokemon.Move
	bracket  int
	priority int
	speed    int
	tie      int
}

// Order sorts actions by kind bracket, then move priority, then effective
// speed (reversed under trick room), then a random tie-break key. Keys are drawn
// in side order so submission order never changes the result.
func (r *Resolver) Order(st *battle.State, actions []battle.Action) []battle.Action {
	entries := r.order(st, actions)
	out := make([]battle.Action, len(entries))
	for i, q := range entries {
		out[i] = q.action
	}
	return out
}

func (r *Resolver) order(st *battle.State, actions []battle.Action) []queued {
	entries := make([]queued, 0, len(actions))
	for _, a := range actions {
		actor := st.Combatant(a.CombatantID)
		if actor == nil {
			continue
		}
		entries = append(entries, queued{action: a, actor: actor, bracket: a.Kind.Bracket()})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].actor.Side != entries[j].actor.Side {
			return entries[i].actor.Side < entries[j].actor.Side
		}
		return entries[i].actor.Position < entries[j].actor.Position
	})

	for i := range entries {
		q := &entries[i]
		if q.action.Kind == battle.ActionMove {
			if move, _ := r.selectMove(q.actor, q.action.MoveID); move != nil {
				q.move = move
				q.priority = r.priority(st, q.actor, move)
			}
		}
		q.speed = r.Speed(st, q.actor)
		q.tie = st.RNG.Roll(tieRange)
	}

	trickRoom := st.Field.TrickRoomTurns > 0
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.bracket != b.bracket {
			return a.bracket > b.bracket
		}
		if a.priority != b.priority {
			return a.priority > b.priority
		}
		if a.speed != b.speed {
			if trickRoom {
				return a.speed < b.speed
			}
			return a.speed > b.speed
		}
		return a.tie < b.tie
	})
	return entries
}

// priority is the move's tier after modify_priority handlers
func (r *Resolver) priority(st *battle.State, c *battle.Combatant, move *pokemon.Move) int {
	ctx := effects.NewContext(pokemon.TriggerModifyPriority, st, c, nil, move)
	r.pipeline.Dispatch(ctx)
	return move.Priority + ctx.PriorityDelta
}

// Speed is the effective speed after stages, modify_speed handlers and tailwind
func (r *Resolver) Speed(st *battle.State, c *battle.Combatant) int {
	ctx := effects.NewContext(pokemon.TriggerModifySpeed, st, c, nil, nil)
	r.pipeline.Dispatch(ctx)
	v := float64(damage.Speed(c)) * ctx.SpeedMultiplier
	if st.Field.Screen(c.Side, pokemon.ScreenTailwind) > 0 {
		v *= 2
	}
	speed := int(math.Floor(v))
	if speed < 1 {
		return 1
	}
	return speed
}

// bySpeed returns the healthy active combatants fastest first, ties by side
func (r *Resolver) bySpeed(st *battle.State) []*battle.Combatant {
	var out []*battle.Combatant
	for _, c := range st.ActiveCombatants() {
		if c.Healthy() {
			out = append(out, c)
		}
	}
	speeds := make(map[string]int, len(out))
	for _, c := range out {
		speeds[c.ID] = r.Speed(st, c)
	}
	trickRoom := st.Field.TrickRoomTurns > 0
	sort.SliceStable(out, func(i, j int) bool {
		a, b := speeds[out[i].ID], speeds[out[j].ID]
		if a == b {
			return out[i].Side < out[j].Side
		}
		if trickRoom {
			return a < b
		}
		return a > b
	})
	return out
}

func (r *Resolver) residual(st *battle.State, c *battle.Combatant) {
	status.Residual(st, c)
}

func (r *Resolver) countdown(st *battle.State) {
	field.Decrement(st)
	for _, c := range st.ActiveCombatants() {
		status.TickVolatiles(st, c)
	}
}
