package main

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

const defaultMaxTurns = 200

// scenario is a simulation file: two rosters and how many battles to run
type scenario struct {
	Seed     *int64             `yaml:"seed"`
	Battles  int                `yaml:"battles"`
	MaxTurns int                `yaml:"max_turns"`
	Sides    []battle.SideInput `yaml:"sides"`
}

func loadScenarioFile(path string) (*scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to open scenario")
	}
	defer func() { _ = f.Close() }()
	return loadScenario(f)
}

func loadScenario(r io.Reader) (*scenario, error) {
	var sc scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse scenario")
	}

	if sc.Battles == 0 {
		sc.Battles = 1
	}
	if sc.MaxTurns == 0 {
		sc.MaxTurns = defaultMaxTurns
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the scenario shape; rosters are checked by the engine
func (sc *scenario) Validate() error {
	vb := errors.NewValidationBuilder()
	if len(sc.Sides) != 2 {
		vb.InvalidField("sides", "exactly two sides are required")
	}
	if sc.Battles < 1 {
		vb.InvalidField("battles", "must be positive")
	}
	if sc.MaxTurns < 1 {
		vb.InvalidField("max_turns", "must be positive")
	}
	return vb.Build()
}

func (sc *scenario) sides() [2]battle.SideInput {
	return [2]battle.SideInput{sc.Sides[0], sc.Sides[1]}
}

// seedFor returns the seed of the i-th battle, or nil to draw one
func (sc *scenario) seedFor(i int) *int64 {
	if sc.Seed == nil {
		return nil
	}
	seed := *sc.Seed + int64(i)
	return &seed
}
