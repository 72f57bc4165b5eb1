package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-battle/internal/catalog"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

type CatalogTestSuite struct {
	suite.Suite
	cat *catalog.Memory
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) SetupSuite() {
	cat, err := catalog.Standard()
	s.Require().NoError(err)
	s.cat = cat
}

func (s *CatalogTestSuite) TestStandardLookups() {
	species, err := s.cat.Species("garchomp")
	s.Require().NoError(err)
	s.Equal([]pokemon.Type{pokemon.TypeDragon, pokemon.TypeGround}, species.Types)

	move, err := s.cat.Move("swift")
	s.Require().NoError(err)
	s.Nil(move.Accuracy)

	move, err = s.cat.Move("solar_beam")
	s.Require().NoError(err)
	s.Require().NotNil(move.Charge)
	s.Equal(pokemon.WeatherSun, move.Charge.SkipWeather)

	ability, err := s.cat.Ability("levitate")
	s.Require().NoError(err)
	s.True(pokemon.HasEffect(ability.Effects, pokemon.KindUngrounded))

	item, err := s.cat.Item("potion")
	s.Require().NoError(err)
	s.True(item.Bag)

	item, err = s.cat.Item("focus_sash")
	s.Require().NoError(err)
	s.True(item.Effects[0].OneTime)

	s.Equal(0.0, s.cat.TypeChart().Multiplier(pokemon.TypeNormal, pokemon.TypeGhost))
}

func (s *CatalogTestSuite) TestUnknownIDsAreDataIntegrityErrors() {
	_, err := s.cat.Move("nope")
	s.True(errors.IsDataIntegrity(err))
	_, err = s.cat.Species("nope")
	s.True(errors.IsDataIntegrity(err))
	_, err = s.cat.Ability("nope")
	s.True(errors.IsDataIntegrity(err))
	_, err = s.cat.Item("nope")
	s.True(errors.IsDataIntegrity(err))
}

func (s *CatalogTestSuite) TestNewRejectsBadData() {
	testCases := []struct {
		name string
		data *catalog.Data
	}{
		{
			name: "duplicate move",
			data: &catalog.Data{Moves: []pokemon.Move{
				{ID: "a", Category: pokemon.CategoryPhysical, PP: 5},
				{ID: "a", Category: pokemon.CategoryPhysical, PP: 5},
			}},
		},
		{
			name: "blank species id",
			data: &catalog.Data{Species: []pokemon.Species{{Types: []pokemon.Type{pokemon.TypeNormal}}}},
		},
		{
			name: "three types",
			data: &catalog.Data{Species: []pokemon.Species{
				{ID: "x", Types: []pokemon.Type{pokemon.TypeNormal, pokemon.TypeFire, pokemon.TypeWater}},
			}},
		},
		{
			name: "zero pp",
			data: &catalog.Data{Moves: []pokemon.Move{{ID: "a", Category: pokemon.CategoryStatus}}},
		},
		{
			name: "unknown category",
			data: &catalog.Data{Moves: []pokemon.Move{{ID: "a", Category: "weird", PP: 5}}},
		},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := catalog.New(tc.data)
			s.Require().Error(err)
			s.True(errors.IsDataIntegrity(err))
		})
	}
}

func (s *CatalogTestSuite) TestLoadRejectsUnknownFields() {
	_, err := catalog.Load(strings.NewReader(`
moves:
  - id: tackle
    category: physical
    pp: 35
    powerr: 40
`))
	s.Require().Error(err)
	s.True(errors.IsDataIntegrity(err))
}

func (s *CatalogTestSuite) TestLoadFile() {
	path := filepath.Join(s.T().TempDir(), "tiny.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(`
species:
  - id: blob
    name: Blob
    types: [normal]
    base_stats: {hp: 50, attack: 50, defense: 50, sp_attack: 50, sp_defense: 50, speed: 50}
moves:
  - id: tackle
    name: Tackle
    type: normal
    category: physical
    power: 40
    accuracy: 100
    pp: 35
`), 0o600))

	cat, err := catalog.LoadFile(path)
	s.Require().NoError(err)
	move, err := cat.Move("tackle")
	s.Require().NoError(err)
	s.Require().NotNil(move.Accuracy)
	s.Equal(100, *move.Accuracy)

	_, err = catalog.LoadFile(filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.Error(err)
}
