package turn_test

import (
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/testutils"
	"github.com/KirkDiggler/rpg-battle/internal/testutils/builders"
)

// hitBy returns the damage the attacker's move dealt to its target this turn
func (s *ResolverTestSuite) hitBy(evts []battle.Event, attacker, moveID string) int {
	hit, ok := find(evts, func(e battle.Event) bool {
		return e.Kind == battle.EventDamage && e.Source == attacker && e.Move == moveID
	})
	s.Require().True(ok, "no %s damage from %s", moveID, attacker)
	return hit.Amount
}

// tackleDamage plays one turn of red tackling a splashing blue and returns the damage.
// The same seed gives both runs of a comparison the same rolls.
func (s *ResolverTestSuite) tackleDamage(seed int64, red *builders.RosterEntryBuilder, prepare func(*battle.State)) int {
	st := s.newState(seed,
		builders.Side("red", red),
		builders.Side("blue", bulky(testutils.SpeciesNormal, 10).WithMoves("splash")),
	)
	if prepare != nil {
		prepare(st)
	}
	return s.hitBy(s.play(st, move("p1.1", "tackle"), move("p2.1", "splash")), "p1.1", "tackle")
}

func (s *ResolverTestSuite) TestAdaptabilityRaisesStab() {
	for seed := int64(1); seed <= 10; seed++ {
		plain := s.tackleDamage(seed, bulky(testutils.SpeciesNormal, 100), nil)
		adapted := s.tackleDamage(seed, bulky(testutils.SpeciesNormal, 100).WithAbility("adaptability"), nil)

		s.InDelta(float64(plain)*2/1.5, float64(adapted), 2, "seed %d", seed)
	}
}

func (s *ResolverTestSuite) TestAdaptabilityNeedsAMatchingType() {
	plain := s.tackleDamage(3, bulky(testutils.SpeciesFire, 100), nil)
	adapted := s.tackleDamage(3, bulky(testutils.SpeciesFire, 100).WithAbility("adaptability"), nil)

	s.Equal(plain, adapted, "tackle is not a fire move")
}

func (s *ResolverTestSuite) TestSniperStrengthensCriticalHits() {
	for seed := int64(1); seed <= 10; seed++ {
		plain := s.tackleDamage(seed, bulky(testutils.SpeciesNormal, 100).WithItem("keen_lens"), nil)
		sniper := s.tackleDamage(seed, bulky(testutils.SpeciesNormal, 100).WithItem("keen_lens").WithAbility("sniper"), nil)

		s.InDelta(float64(plain)*2.25/1.5, float64(sniper), 2, "seed %d", seed)
	}

	st := s.newState(1,
		builders.Side("red", bulky(testutils.SpeciesNormal, 100).WithItem("keen_lens").WithAbility("sniper")),
		builders.Side("blue", bulky(testutils.SpeciesNormal, 10).WithMoves("splash")),
	)
	hit, ok := find(s.play(st, move("p1.1", "tackle"), move("p2.1", "splash")), func(e battle.Event) bool {
		return e.Kind == battle.EventDamage && e.Move == "tackle"
	})
	s.Require().True(ok)
	s.True(hit.Critical)
}

func (s *ResolverTestSuite) TestGutsIgnoresTheBurnPenalty() {
	burn := func(st *battle.State) { st.Active(0).Status = pokemon.StatusBurn }

	for seed := int64(1); seed <= 10; seed++ {
		healthy := s.tackleDamage(seed, bulky(testutils.SpeciesNormal, 100), nil)
		burned := s.tackleDamage(seed, bulky(testutils.SpeciesNormal, 100), burn)
		guts := s.tackleDamage(seed, bulky(testutils.SpeciesNormal, 100).WithAbility("guts"), burn)

		s.InDelta(float64(healthy)*0.5, float64(burned), 1, "seed %d", seed)
		s.InDelta(float64(healthy)*1.5, float64(guts), 2, "seed %d: burn must not halve a guts attack", seed)
	}
}

func (s *ResolverTestSuite) TestRegeneratorHealsOnSwitchOut() {
	st := s.newState(1,
		builders.Side("red",
			bulky(testutils.SpeciesNormal, 100).WithAbility("regenerator"),
			bulky(testutils.SpeciesNormal, 100),
		),
		builders.Side("blue", bulky(testutils.SpeciesNormal, 10).WithMoves("splash")),
	)
	leaving := st.Active(0)
	leaving.HP = 200

	evts := s.play(st,
		battle.Action{Kind: battle.ActionSwitch, CombatantID: "p1.1", SwitchTo: 1},
		move("p2.1", "splash"),
	)

	healed, ok := find(evts, func(e battle.Event) bool {
		return e.Kind == battle.EventHeal && e.Target == "p1.1"
	})
	s.Require().True(ok)
	s.Equal(battle.AbilityCause("regenerator"), healed.Cause)
	s.Equal(battle.FractionOfMax(leaving, 0.3333), healed.Amount)
	s.Equal(200+healed.Amount, leaving.HP)
	s.Equal("p1.2", st.Active(0).ID)
}

func (s *ResolverTestSuite) TestPowerHerbKeptWhenTheMoveIsBlocked() {
	st := s.newState(1,
		builders.Side("red", bulky(testutils.SpeciesNormal, 100).WithItem("power_herb").WithMoves("solar_beam")),
		builders.Side("blue", bulky(testutils.SpeciesNormal, 80).WithMoves("protect", "splash")),
	)
	holder := st.Active(0)

	evts := s.play(st, move("p1.1", "solar_beam"), move("p2.1", "protect"))

	failed, ok := find(evts, func(e battle.Event) bool {
		return e.Kind == battle.EventMoveFailed && e.Source == "p1.1"
	})
	s.Require().True(ok)
	s.Equal(battle.MoveCause(string(pokemon.VolatileProtect)), failed.Cause)
	s.False(holder.ItemConsumed)
	s.False(holder.HasVolatile(pokemon.VolatileCharging), "the herb still skipped the charge turn")
	_, ok = find(evts, func(e battle.Event) bool {
		return e.Kind == battle.EventItemConsumed || e.Cause == battle.ItemCause("power_herb")
	})
	s.False(ok, "a blocked move spends no held item")

	evts = s.play(st, move("p1.1", "solar_beam"), move("p2.1", "splash"))

	s.Positive(s.hitBy(evts, "p1.1", "solar_beam"))
	s.True(holder.ItemConsumed)
	consumed, ok := find(evts, func(e battle.Event) bool { return e.Kind == battle.EventItemConsumed })
	s.Require().True(ok)
	s.Equal(battle.ItemCause("power_herb"), consumed.Cause)

	evts = s.play(st, move("p1.1", "solar_beam"), move("p2.1", "splash"))
	used, _ := find(evts, func(e battle.Event) bool { return e.Kind == battle.EventMoveUsed && e.Source == "p1.1" })
	s.Equal("charging", used.Detail, "without the herb the move charges")
}

func (s *ResolverTestSuite) TestPsychicTerrainUsesTheOrderingPriority() {
	var first, second int
	for seed := int64(1); seed <= 200; seed++ {
		st := s.newState(seed,
			builders.Side("red", bulky(testutils.SpeciesNormal, 10).WithItem("quick_claw")),
			builders.Side("blue", bulky(testutils.SpeciesNormal, 100).WithMoves("splash")),
		)
		st.Field.Terrain = pokemon.TerrainPsychic
		st.Field.TerrainTurns = 5

		evts := s.play(st, move("p1.1", "tackle"), move("p2.1", "splash"))

		blocked, isBlocked := find(evts, func(e battle.Event) bool {
			return e.Kind == battle.EventMoveFailed && e.Source == "p1.1"
		})
		if movers(evts)[0] == "p1.1" {
			first++
			s.True(isBlocked, "seed %d: a claw-boosted tackle is a priority move", seed)
			s.Equal(battle.CauseTerrain, blocked.Cause)
		} else {
			second++
			s.False(isBlocked, "seed %d: an unboosted tackle is not blocked", seed)
		}
	}
	s.Positive(first)
	s.Positive(second)
}
