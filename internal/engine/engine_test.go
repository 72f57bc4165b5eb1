package engine_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-battle/internal/engine"
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/testutils"
	"github.com/KirkDiggler/rpg-battle/internal/testutils/builders"
)

type SnapshotTestSuite struct {
	suite.Suite
}

func TestSnapshotSuite(t *testing.T) {
	suite.Run(t, new(SnapshotTestSuite))
}

func (s *SnapshotTestSuite) TestRoundTrip() {
	cat := testutils.Catalog(s.T())
	st, err := battle.NewState("b-1", 99, [2]battle.SideInput{
		builders.Side("red", builders.NewRosterEntryBuilder(testutils.SpeciesNormal).WithItem("leftovers")),
		builders.Side("blue", builders.NewRosterEntryBuilder(testutils.SpeciesWater).WithAbility("drizzle")),
	}, cat)
	s.Require().NoError(err)
	st.Turn = 3
	st.Field.Weather = pokemon.WeatherRain
	st.Field.WeatherTurns = 2
	st.Active(0).Status = pokemon.StatusToxic
	st.Active(0).StatusCounter = 3
	st.Active(1).SetVolatile(pokemon.VolatileConfusion, &battle.Volatile{Turns: 2})
	st.Pending = []battle.Action{{Kind: battle.ActionMove, CombatantID: "p1.1", MoveID: "tackle"}}

	data, err := engine.MarshalState(st)
	s.Require().NoError(err)
	got, err := engine.UnmarshalState(data)
	s.Require().NoError(err)
	s.Require().NoError(got.Hydrate(cat))

	s.Equal(st.Turn, got.Turn)
	s.Equal(st.Field, got.Field)
	s.Equal(st.Pending, got.Pending)
	s.Equal(3, got.Active(0).StatusCounter)
	s.Equal(2, got.Active(1).Volatile(pokemon.VolatileConfusion).Turns)
	s.Equal("leftovers", got.Active(0).HeldItem().ID)
	s.Equal(st.RNG.Roll(1000), got.RNG.Roll(1000))
}

func (s *SnapshotTestSuite) TestMarshalNil() {
	_, err := engine.MarshalState(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *SnapshotTestSuite) TestUnmarshalGarbage() {
	_, err := engine.UnmarshalState([]byte("{not json"))
	s.True(errors.IsDataIntegrity(err))
}
