package rng_test

import (
	"encoding/json"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-battle/internal/pkg/rng"
)

type SourceTestSuite struct {
	suite.Suite
}

func TestSourceSuite(t *testing.T) {
	suite.Run(t, new(SourceTestSuite))
}

func draw(s *rng.Source, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = s.Roll(100)
	}
	return out
}

func (s *SourceTestSuite) TestSameSeedSameStream() {
	a := rng.New(42)
	b := rng.New(42)
	s.Equal(draw(a, 50), draw(b, 50))
}

func (s *SourceTestSuite) TestDifferentSeedsDiverge() {
	s.NotEqual(draw(rng.New(1), 50), draw(rng.New(2), 50))
}

func (s *SourceTestSuite) TestSnapshotResumesStream() {
	src := rng.New(7)
	draw(src, 10)

	data, err := json.Marshal(src)
	s.Require().NoError(err)

	restored := &rng.Source{}
	s.Require().NoError(json.Unmarshal(data, restored))

	s.Equal(draw(src, 25), draw(restored, 25))
}

func (s *SourceTestSuite) TestExternalRollerCannotSnapshot() {
	src := rng.FromRoller(dice.DefaultRoller)
	_, err := json.Marshal(src)
	s.Error(err)
}

func (s *SourceTestSuite) TestRanges() {
	src := rng.New(99)
	for i := 0; i < 500; i++ {
		v := src.Between(85, 100)
		s.GreaterOrEqual(v, 85)
		s.LessOrEqual(v, 100)
	}
	s.True(src.Chance(100))
	s.False(src.Chance(0))
	s.True(src.OneIn(1))
	s.Equal(5, src.Between(5, 5))
}

func (s *SourceTestSuite) TestInvalidRollClamped() {
	s.Equal(1, rng.New(1).Roll(0))
}

func (s *SourceTestSuite) TestRollerRollN() {
	vals, err := rng.New(3).Roller().RollN(4, 6)
	s.Require().NoError(err)
	s.Len(vals, 4)
	for _, v := range vals {
		s.GreaterOrEqual(v, 1)
		s.LessOrEqual(v, 6)
	}
}

func (s *SourceTestSuite) TestNewSeed() {
	seed, err := rng.NewSeed()
	s.Require().NoError(err)
	s.GreaterOrEqual(seed, int64(0))
}
