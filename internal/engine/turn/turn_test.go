package turn_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-battle/internal/engine/turn"
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/testutils"
	"github.com/KirkDiggler/rpg-battle/internal/testutils/builders"
)

type ResolverTestSuite struct {
	suite.Suite
	resolver *turn.Resolver
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

func (s *ResolverTestSuite) SetupTest() {
	r, err := turn.NewResolver(&turn.Config{Catalog: testutils.Catalog(s.T())})
	s.Require().NoError(err)
	s.resolver = r
}

// bulky combatants survive a few hits so ordering can be observed
func bulky(species string, speed int) *builders.RosterEntryBuilder {
	return builders.NewRosterEntryBuilder(species).WithStats(500, 100, speed)
}

func (s *ResolverTestSuite) newState(seed int64, red, blue battle.SideInput) *battle.State {
	st, err := battle.NewState("b", seed, [2]battle.SideInput{red, blue}, testutils.Catalog(s.T()))
	s.Require().NoError(err)
	s.resolver.Start(st)
	return st
}

func move(id, moveID string) battle.Action {
	return battle.Action{Kind: battle.ActionMove, CombatantID: id, MoveID: moveID}
}

func (s *ResolverTestSuite) play(st *battle.State, actions ...battle.Action) []battle.Event {
	for _, a := range actions {
		s.Require().NoError(s.resolver.Submit(st, a))
	}
	evts, err := s.resolver.Resolve(st)
	s.Require().NoError(err)
	return evts
}

// movers lists the sources of move_used events in order
func movers(evts []battle.Event) []string {
	var out []string
	for _, e := range evts {
		if e.Kind == battle.EventMoveUsed {
			out = append(out, e.Source)
		}
	}
	return out
}

func find(evts []battle.Event, match func(battle.Event) bool) (battle.Event, bool) {
	for _, e := range evts {
		if match(e) {
			return e, true
		}
	}
	return battle.Event{}, false
}

func (s *ResolverTestSuite) TestNewResolverValidation() {
	_, err := turn.NewResolver(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = turn.NewResolver(&turn.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *ResolverTestSuite) TestStartRunsLeadSwitchIns() {
	st, err := battle.NewState("b", 1, [2]battle.SideInput{
		builders.Side("red", bulky(testutils.SpeciesNormal, 100).WithAbility("intimidate")),
		builders.Side("blue", bulky(testutils.SpeciesWater, 50).WithAbility("drizzle")),
	}, testutils.Catalog(s.T()))
	s.Require().NoError(err)

	evts := s.resolver.Start(st)

	s.Equal(battle.EventBattleStarted, evts[0].Kind)
	s.Equal(-1, st.Active(1).Stage(pokemon.StatAttack))
	s.Equal(pokemon.WeatherRain, st.Field.Weather)
	s.Zero(st.Turn)
}

func (s *ResolverTestSuite) TestFasterMovesFirst() {
	st := s.newState(1,
		builders.Side("red", bulky(testutils.SpeciesNormal, 100)),
		builders.Side("blue", bulky(testutils.SpeciesNormal, 80).WithMoves("tackle", "quick_attack")),
	)

	evts := s.play(st, move("p2.1", "tackle"), move("p1.1", "tackle"))
	s.Equal([]string{"p1.1", "p2.1"}, movers(evts))

	evts = s.play(st, move("p1.1", "tackle"), move("p2.1", "quick_attack"))
	s.Equal([]string{"p2.1", "p1.1"}, movers(evts), "priority beats speed")
}

func (s *ResolverTestSuite) TestOrder() {
	st := s.newState(1,
		builders.Side("red", bulky(testutils.SpeciesNormal, 100)),
		builders.Side("blue",
			bulky(testutils.SpeciesNormal, 80).WithMoves("tackle", "quick_attack"),
			bulky(testutils.SpeciesNormal, 10),
		),
	)
	ids := func(actions []battle.Action) []string {
		var out []string
		for _, a := range actions {
			out = append(out, a.CombatantID+":"+string(a.Kind))
		}
		return out
	}

	s.Equal([]string{"p1.1:move", "p2.1:move"},
		ids(s.resolver.Order(st, []battle.Action{move("p2.1", "tackle"), move("p1.1", "tackle")})))

	st.Field.TrickRoomTurns = 3
	s.Equal([]string{"p2.1:move", "p1.1:move"},
		ids(s.resolver.Order(st, []battle.Action{move("p1.1", "tackle"), move("p2.1", "tackle")})),
		"trick room reverses speed")
	st.Field.TrickRoomTurns = 0

	s.Equal([]string{"p2.1:switch", "p1.1:move"},
		ids(s.resolver.Order(st, []battle.Action{
			move("p1.1", "tackle"),
			{Kind: battle.ActionSwitch, CombatantID: "p2.1", SwitchTo: 1},
		})),
		"switches go before any move")
}

func (s *ResolverTestSuite) TestSpeedModifiers() {
	st := s.newState(1,
		builders.Side("red", bulky(testutils.SpeciesNormal, 100).WithItem("choice_scarf")),
		builders.Side("blue", bulky(testutils.SpeciesNormal, 100)),
	)
	s.Equal(150, s.resolver.Speed(st, st.Active(0)))

	st.Active(1).Status = pokemon.StatusParalysis
	st.Active(1).ChangeStage(pokemon.StatSpeed, 2)
	s.Equal(100, s.resolver.Speed(st, st.Active(1)))

	st.Field.Sides[1].Screens = map[pokemon.Screen]int{pokemon.ScreenTailwind: 2}
	s.Equal(200, s.resolver.Speed(st, st.Active(1)))
}

func (s *ResolverTestSuite) TestSubmitValidation() {
	st := s.newState(1,
		builders.Side("red", bulky(testutils.SpeciesNormal, 100), bulky(testutils.SpeciesWater, 100)),
		builders.Side("blue", bulky(testutils.SpeciesNormal, 80)),
	)

	testCases := []struct {
		name   string
		action battle.Action
	}{
		{name: "unknown combatant", action: move("p9.1", "tackle")},
		{name: "benched combatant", action: move("p1.2", "tackle")},
		{name: "unknown move", action: move("p1.1", "ember")},
		{name: "struggle with pp left", action: move("p1.1", turn.StruggleID)},
		{name: "switch to self", action: battle.Action{Kind: battle.ActionSwitch, CombatantID: "p1.1", SwitchTo: 0}},
		{name: "switch out of range", action: battle.Action{Kind: battle.ActionSwitch, CombatantID: "p1.1", SwitchTo: 5}},
		{name: "held item from bag", action: battle.Action{Kind: battle.ActionItem, CombatantID: "p1.1", ItemID: "leftovers"}},
		{name: "unknown kind", action: battle.Action{Kind: "dance", CombatantID: "p1.1"}},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := s.resolver.Submit(st, tc.action)
			s.True(errors.IsIllegalAction(err), "got %v", err)
			s.Empty(st.Pending)
		})
	}
}

func (s *ResolverTestSuite) TestDuplicateActionIsIllegal() {
	st := s.newState(1,
		builders.Side("red", bulky(testutils.SpeciesNormal, 100)),
		builders.Side("blue", bulky(testutils.SpeciesNormal, 80)),
	)
	s.Require().NoError(s.resolver.Submit(st, move("p1.1", "tackle")))
	s.Equal([]string{"p2.1"}, s.resolver.Missing(st))
	s.False(s.resolver.Ready(st))

	err := s.resolver.Submit(st, move("p1.1", "tackle"))
	s.True(errors.IsIllegalAction(err))
	s.Len(st.Pending, 1)

	_, err = s.resolver.Resolve(st)
	s.True(errors.IsFailedPrecondition(err), "blue has not chosen yet")
	s.Zero(st.Turn)
}

func (s *ResolverTestSuite) TestEndOfTurnOrder() {
	testCases := []struct {
		name    string
		species string
		weather pokemon.Weather
		want    []int
		causes  []string
	}{
		{
			name: "sandstorm chips before burn and leftovers", species: testutils.SpeciesNormal, weather: pokemon.WeatherSandstorm,
			want:   []int{-10, -10, 10},
			causes: []string{battle.CauseWeather, string(pokemon.StatusBurn), battle.ItemCause("leftovers")},
		},
		{
			name: "rain deals nothing", species: testutils.SpeciesWater, weather: pokemon.WeatherRain,
			want:   []int{-10, 10},
			causes: []string{string(pokemon.StatusBurn), battle.ItemCause("leftovers")},
		},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			st := s.newState(1,
				builders.Side("red", builders.NewRosterEntryBuilder(tc.species).WithStats(160, 100, 100).WithItem("leftovers").WithMoves("splash")),
				builders.Side("blue", builders.NewRosterEntryBuilder(testutils.SpeciesSteel).WithStats(160, 100, 90).WithMoves("splash")),
			)
			st.Active(0).Status = pokemon.StatusBurn
			st.Field.Weather = tc.weather
			st.Field.WeatherTurns = 5

			evts := s.play(st, move("p1.1", "splash"), move("p2.1", "splash"))

			var deltas []int
			var causes []string
			for _, e := range evts {
				if e.Target != "p1.1" {
					continue
				}
				switch e.Kind {
				case battle.EventDamage:
					deltas = append(deltas, -e.Amount)
				case battle.EventHeal:
					deltas = append(deltas, e.Amount)
				default:
					continue
				}
				causes = append(causes, e.Cause)
			}
			s.Equal(tc.want, deltas)
			s.Equal(tc.causes, causes)
			s.Equal(4, st.Field.WeatherTurns)
		})
	}
}

func (s *ResolverTestSuite) TestSameSeedSameBattle() {
	run := func() []battle.Event {
		st := s.newState(42,
			builders.Side("red", bulky(testutils.SpeciesNormal, 100).WithMoves("tackle", "bullet_seed")),
			builders.Side("blue", bulky(testutils.SpeciesNormal, 100).WithMoves("tackle", "confuse_ray")),
		)
		var all []battle.Event
		all = append(all, s.play(st, move("p1.1", "bullet_seed"), move("p2.1", "confuse_ray"))...)
		all = append(all, s.play(st, move("p1.1", "tackle"), move("p2.1", "tackle"))...)
		all = append(all, s.play(st, move("p1.1", "bullet_seed"), move("p2.1", "tackle"))...)
		return all
	}
	s.Equal(run(), run())
}

func (s *ResolverTestSuite) TestFaintedActiveIsReplaced() {
	st := s.newState(1,
		builders.Side("red", bulky(testutils.SpeciesNormal, 100)),
		builders.Side("blue",
			builders.NewRosterEntryBuilder(testutils.SpeciesNormal).WithStats(1, 100, 50),
			bulky(testutils.SpeciesWater, 50),
		),
	)

	evts := s.play(st, move("p1.1", "tackle"), move("p2.1", "tackle"))

	skipped, ok := find(evts, func(e battle.Event) bool { return e.Kind == battle.EventActionSkipped })
	s.Require().True(ok)
	s.Equal("p2.1", skipped.Source)
	s.Equal(battle.CauseFainted, skipped.Cause)

	s.Equal("p2.2", st.Active(1).ID)
	s.Equal(battle.OutcomeOngoing, st.Outcome)
	s.Equal(battle.EventTurnEnded, evts[len(evts)-1].Kind)
}

func (s *ResolverTestSuite) TestLastFaintEndsTheBattle() {
	st := s.newState(1,
		builders.Side("red", bulky(testutils.SpeciesNormal, 100)),
		builders.Side("blue", builders.NewRosterEntryBuilder(testutils.SpeciesNormal).WithStats(1, 100, 50)),
	)

	evts := s.play(st, move("p1.1", "tackle"), move("p2.1", "tackle"))

	last := evts[len(evts)-1]
	s.Equal(battle.EventBattleEnded, last.Kind)
	s.Equal(battle.OutcomeSide1, last.Outcome)
	s.Equal(battle.OutcomeSide1, st.Outcome)

	s.True(errors.IsFailedPrecondition(s.resolver.Submit(st, move("p1.1", "tackle"))))
	_, err := s.resolver.Resolve(st)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *ResolverTestSuite) TestBagItemGoesFirst() {
	st := s.newState(1,
		builders.Side("red", bulky(testutils.SpeciesNormal, 10)),
		builders.Side("blue", bulky(testutils.SpeciesNormal, 100)),
	)
	st.Active(0).HP = 100

	evts := s.play(st,
		battle.Action{Kind: battle.ActionItem, CombatantID: "p1.1", ItemID: "potion"},
		move("p2.1", "tackle"),
	)

	s.Equal(battle.EventItemUsed, evts[1].Kind)
	healed, ok := find(evts, func(e battle.Event) bool { return e.Kind == battle.EventHeal })
	s.Require().True(ok)
	s.Equal(20, healed.Amount)
	s.Equal(battle.ItemCause("potion"), healed.Cause)
	s.Equal([]string{"p2.1"}, movers(evts))
}

func (s *ResolverTestSuite) TestSwitchTakesTheHit() {
	st := s.newState(1,
		builders.Side("red", bulky(testutils.SpeciesNormal, 100)),
		builders.Side("blue", bulky(testutils.SpeciesNormal, 80), bulky(testutils.SpeciesWater, 80)),
	)
	st.Active(1).ChangeStage(pokemon.StatAttack, 2)

	evts := s.play(st,
		move("p1.1", "tackle"),
		battle.Action{Kind: battle.ActionSwitch, CombatantID: "p2.1", SwitchTo: 1},
	)

	hit, ok := find(evts, func(e battle.Event) bool { return e.Kind == battle.EventDamage })
	s.Require().True(ok)
	s.Equal("p2.2", hit.Target)
	s.Zero(st.Sides[1].Party[0].Stage(pokemon.StatAttack), "stages reset on the bench")
}

func (s *ResolverTestSuite) TestStruggle() {
	st := s.newState(1,
		builders.Side("red", builders.NewRosterEntryBuilder(testutils.SpeciesNormal).WithStats(400, 100, 100)),
		builders.Side("blue", bulky(testutils.SpeciesNormal, 80).WithMoves("splash")),
	)
	st.Active(0).Moves[0].PP = 0

	s.True(errors.IsIllegalAction(s.resolver.Submit(st, move("p1.1", "tackle"))))
	evts := s.play(st, move("p1.1", turn.StruggleID), move("p2.1", "splash"))

	recoil, ok := find(evts, func(e battle.Event) bool {
		return e.Kind == battle.EventDamage && e.Cause == battle.CauseRecoil
	})
	s.Require().True(ok)
	s.Equal("p1.1", recoil.Target)
	s.Equal(100, recoil.Amount)
}

func (s *ResolverTestSuite) TestProtectBlocksTheHit() {
	st := s.newState(1,
		builders.Side("red", bulky(testutils.SpeciesNormal, 10).WithMoves("protect")),
		builders.Side("blue", bulky(testutils.SpeciesNormal, 100)),
	)

	evts := s.play(st, move("p1.1", "protect"), move("p2.1", "tackle"))

	s.Equal([]string{"p1.1", "p2.1"}, movers(evts))
	failed, ok := find(evts, func(e battle.Event) bool { return e.Kind == battle.EventMoveFailed })
	s.Require().True(ok)
	s.Equal("p2.1", failed.Source)
	s.Equal(battle.MoveCause(string(pokemon.VolatileProtect)), failed.Cause)
	s.Equal(st.Active(0).MaxHP(), st.Active(0).HP)
	s.False(st.Active(0).HasVolatile(pokemon.VolatileProtect), "protection lasts one turn")
}

func (s *ResolverTestSuite) TestChargeMove() {
	st := s.newState(1,
		builders.Side("red", bulky(testutils.SpeciesNormal, 100).WithMoves("solar_beam", "tackle")),
		builders.Side("blue", bulky(testutils.SpeciesNormal, 80).WithMoves("splash")),
	)
	attacker := st.Active(0)

	evts := s.play(st, move("p1.1", "solar_beam"), move("p2.1", "splash"))
	used, _ := find(evts, func(e battle.Event) bool { return e.Kind == battle.EventMoveUsed })
	s.Equal("charging", used.Detail)
	s.True(attacker.HasVolatile(pokemon.VolatileCharging))

	evts = s.play(st, move("p1.1", "tackle"), move("p2.1", "splash"))
	hit, ok := find(evts, func(e battle.Event) bool { return e.Kind == battle.EventDamage })
	s.Require().True(ok)
	s.Equal("solar_beam", hit.Move, "the charged move overrides the choice")
	s.Equal(9, attacker.MoveSlot("solar_beam").PP)
	s.Equal(35, attacker.MoveSlot("tackle").PP)
}

func (s *ResolverTestSuite) TestChargeSkippedInSun() {
	st := s.newState(1,
		builders.Side("red", bulky(testutils.SpeciesNormal, 100).WithMoves("solar_beam")),
		builders.Side("blue", bulky(testutils.SpeciesNormal, 80).WithMoves("splash")),
	)
	st.Field.Weather = pokemon.WeatherSun
	st.Field.WeatherTurns = 5

	evts := s.play(st, move("p1.1", "solar_beam"), move("p2.1", "splash"))
	_, ok := find(evts, func(e battle.Event) bool { return e.Kind == battle.EventDamage && e.Move == "solar_beam" })
	s.True(ok)
	s.False(st.Active(0).HasVolatile(pokemon.VolatileCharging))
}

func (s *ResolverTestSuite) TestChoiceLock() {
	st := s.newState(1,
		builders.Side("red", bulky(testutils.SpeciesNormal, 100).WithItem("choice_scarf").WithMoves("tackle", "growl")),
		builders.Side("blue", bulky(testutils.SpeciesNormal, 80).WithMoves("splash")),
	)

	s.play(st, move("p1.1", "tackle"), move("p2.1", "splash"))
	s.Equal("tackle", st.Active(0).LockedMoveID)

	evts := s.play(st, move("p1.1", "growl"), move("p2.1", "splash"))
	failed, ok := find(evts, func(e battle.Event) bool { return e.Kind == battle.EventMoveFailed && e.Source == "p1.1" })
	s.Require().True(ok)
	s.Equal(battle.ItemCause("choice_scarf"), failed.Cause)
	s.Equal(40, st.Active(0).MoveSlot("growl").PP, "a blocked move spends no PP")
}

func (s *ResolverTestSuite) TestStatusMoveBlockedByImmunity() {
	st := s.newState(1,
		builders.Side("red", bulky(testutils.SpeciesNormal, 100).WithMoves("will_o_wisp")),
		builders.Side("blue", bulky(testutils.SpeciesFire, 80).WithMoves("splash")),
	)

	evts := s.play(st, move("p1.1", "will_o_wisp"), move("p2.1", "splash"))

	blocked, ok := find(evts, func(e battle.Event) bool { return e.Kind == battle.EventStatusBlocked })
	s.Require().True(ok)
	s.Equal("p2.1", blocked.Target)
	s.Equal(pokemon.StatusNone, st.Active(1).Status)
	s.Equal(14, st.Active(0).MoveSlot("will_o_wisp").PP, "a failed move still spends PP")
}

func (s *ResolverTestSuite) TestHazardMoveLaysOnOpponentSide() {
	st := s.newState(1,
		builders.Side("red", bulky(testutils.SpeciesNormal, 100).WithMoves("toxic_spikes")),
		builders.Side("blue", bulky(testutils.SpeciesNormal, 80).WithMoves("splash")),
	)

	s.play(st, move("p1.1", "toxic_spikes"), move("p2.1", "splash"))
	s.play(st, move("p1.1", "toxic_spikes"), move("p2.1", "splash"))
	evts := s.play(st, move("p1.1", "toxic_spikes"), move("p2.1", "splash"))

	s.Equal(2, st.Field.Layers(1, pokemon.HazardToxicSpikes))
	failed, ok := find(evts, func(e battle.Event) bool { return e.Kind == battle.EventMoveFailed })
	s.Require().True(ok)
	s.Equal(battle.CauseFailed, failed.Cause)
}
