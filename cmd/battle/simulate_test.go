package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-battle/internal/config"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/orchestrators/encounter"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-battle/internal/repositories/battles"
)

const testScenario = `
seed: 42
battles: 3
max_turns: 150
sides:
  - name: red
    roster:
      - species: charizard
        level: 50
        moves: [flamethrower, swords_dance, quick_attack]
        item: leftovers
      - species: pikachu
        level: 50
        moves: [thunderbolt, thunder_wave]
  - name: blue
    roster:
      - species: blastoise
        level: 50
        moves: [surf, protect, ice_beam]
      - species: venusaur
        level: 50
        moves: [giga_drain, leech_seed, sludge_bomb]
`

type SimulateTestSuite struct {
	suite.Suite
	ctx  context.Context
	cfg  *config.Config
	repo *battles.InMemoryRepository
}

func TestSimulateSuite(t *testing.T) {
	suite.Run(t, new(SimulateTestSuite))
}

func (s *SimulateTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.cfg = &config.Config{
		LogLevel:  "error",
		LogFormat: config.LogFormatText,
		Store:     config.StoreMemory,
	}
	s.repo = battles.NewInMemory()
}

func (s *SimulateTestSuite) service() encounter.Service {
	rt, err := newRuntime(s.ctx, s.cfg, &runtimeOptions{
		idGen: idgen.NewSequential("battle"),
		repo:  s.repo,
	})
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = rt.Close() })
	return rt.service
}

func (s *SimulateTestSuite) scenario() *scenario {
	sc, err := loadScenario(strings.NewReader(testScenario))
	s.Require().NoError(err)
	return sc
}

func (s *SimulateTestSuite) TestRunsEveryBattleToTheEnd() {
	results, err := simulate(s.ctx, s.service(), s.scenario(), 2, nil)
	s.Require().NoError(err)
	s.Require().Len(results, 3)

	for i, r := range results {
		s.Equal(int64(42+i), r.Seed)
		s.True(r.Outcome.Decided(), "battle %s stalled at turn %d", r.BattleID, r.Turns)
		s.Positive(r.Turns)

		got, err := s.repo.Get(s.ctx, &battles.GetInput{BattleID: r.BattleID})
		s.Require().NoError(err)
		s.Equal(string(r.Outcome), got.Record.Outcome)
	}
}

func (s *SimulateTestSuite) TestSameSeedSameResults() {
	first, err := simulate(s.ctx, s.service(), s.scenario(), 3, nil)
	s.Require().NoError(err)

	s.repo = battles.NewInMemory()
	second, err := simulate(s.ctx, s.service(), s.scenario(), 1, nil)
	s.Require().NoError(err)

	// ids follow start order, which concurrency shuffles
	for i := range first {
		first[i].BattleID, second[i].BattleID = "", ""
	}
	s.Equal(first, second)
}

func (s *SimulateTestSuite) TestEventLines() {
	sc := s.scenario()
	sc.Battles = 1

	var buf bytes.Buffer
	_, err := simulate(s.ctx, s.service(), sc, 1, &buf)
	s.Require().NoError(err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	s.Require().NotEmpty(lines)

	var first, last map[string]any
	s.Require().NoError(json.Unmarshal([]byte(lines[0]), &first))
	s.Require().NoError(json.Unmarshal([]byte(lines[len(lines)-1]), &last))
	s.Equal("battle_1", first["battle_id"])
	s.Equal("battle_started", first["kind"])
	s.Equal("battle_ended", last["kind"])
}

func (s *SimulateTestSuite) TestTurnLimitAbandonsTheBattle() {
	sc := s.scenario()
	sc.Battles = 1
	sc.MaxTurns = 1

	results, err := simulate(s.ctx, s.service(), sc, 1, nil)
	s.Require().NoError(err)
	s.LessOrEqual(results[0].Turns, 1)
}

func (s *SimulateTestSuite) TestUnknownSpeciesFailsTheRun() {
	sc := s.scenario()
	sc.Sides[1].Roster[0].SpeciesID = "missingno"

	_, err := simulate(s.ctx, s.service(), sc, 2, nil)
	s.True(errors.IsDataIntegrity(err))
}

func (s *SimulateTestSuite) TestFinishResumesAStoredBattle() {
	sc := s.scenario()
	sc.Battles = 1
	sc.MaxTurns = 2

	results, err := simulate(s.ctx, s.service(), sc, 1, nil)
	s.Require().NoError(err)
	if results[0].Outcome.Decided() {
		s.T().Skip("battle ended before the turn limit")
	}

	// a fresh service sees only the store
	svc := s.service()
	resumed, err := svc.ResumeBattle(s.ctx, &encounter.ResumeBattleInput{BattleID: results[0].BattleID})
	s.Require().NoError(err)
	s.Equal(results[0].Turns, resumed.State.Turn)

	res, err := playOut(s.ctx, svc, results[0].BattleID, newRandomPolicy(1), defaultMaxTurns, newEventSink(nil))
	s.Require().NoError(err)
	s.True(res.Outcome.Decided())
	s.Greater(res.Turns, results[0].Turns)
}

func (s *SimulateTestSuite) TestSQLiteStore() {
	s.cfg.Store = config.StoreSQLite
	s.cfg.SQLitePath = filepath.Join(s.T().TempDir(), "battles.db")
	s.cfg.ArchivePath = filepath.Join(s.T().TempDir(), "archive.db")

	rt, err := newRuntime(s.ctx, s.cfg, &runtimeOptions{idGen: idgen.NewSequential("battle")})
	s.Require().NoError(err)
	defer func() { _ = rt.Close() }()

	sc := s.scenario()
	sc.Battles = 1
	results, err := simulate(s.ctx, rt.service, sc, 1, nil)
	s.Require().NoError(err)

	var buf bytes.Buffer
	got, err := rt.service.GetBattle(s.ctx, &encounter.GetBattleInput{BattleID: results[0].BattleID})
	s.Require().NoError(err)
	printState(&buf, got.State)
	s.Contains(buf.String(), "battle battle_1")
	s.Contains(buf.String(), "side 1: red")
}

func TestLoadScenario(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		sc, err := loadScenario(strings.NewReader(`
sides:
  - name: a
    roster: [{species: pikachu, level: 5, moves: [tackle]}]
  - name: b
    roster: [{species: pikachu, level: 5, moves: [tackle]}]
`))
		require.NoError(t, err)
		assert.Nil(t, sc.Seed)
		assert.Nil(t, sc.seedFor(3))
		assert.Equal(t, 1, sc.Battles)
		assert.Equal(t, defaultMaxTurns, sc.MaxTurns)
	})

	t.Run("one side", func(t *testing.T) {
		_, err := loadScenario(strings.NewReader("sides: [{name: a}]\n"))
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := loadScenario(strings.NewReader("sedd: 4\n"))
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadScenarioFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scenario.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testScenario), 0o600))
		sc, err := loadScenarioFile(path)
		require.NoError(t, err)
		assert.Equal(t, int64(44), *sc.seedFor(2))
	})
}
