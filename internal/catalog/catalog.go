// Package catalog provides the read-only move, item, ability and species tables
// battles resolve ids against. Tables are immutable once built and safe to share
// between concurrently running battles.
package catalog

//go:generate mockgen -destination=mock/mock_catalog.go -package=catalogmock github.com/KirkDiggler/rpg-battle/internal/catalog Catalog

import (
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Catalog is the lookup surface the engine consumes
type Catalog interface {
	battle.Catalog
	TypeChart() pokemon.TypeChart
}

// Data is the raw table content
type Data struct {
	Species   []pokemon.Species `yaml:"species"`
	Moves     []pokemon.Move    `yaml:"moves"`
	Abilities []pokemon.Ability `yaml:"abilities"`
	Items     []pokemon.Item    `yaml:"items"`
}

// Memory is a map-backed catalog
type Memory struct {
	species   map[string]*pokemon.Species
	moves     map[string]*pokemon.Move
	abilities map[string]*pokemon.Ability
	items     map[string]*pokemon.Item
	chart     pokemon.TypeChart
}

var _ Catalog = (*Memory)(nil)

// New indexes the data, rejecting blank and duplicate ids
func New(data *Data) (*Memory, error) {
	if data == nil {
		return nil, errors.InvalidArgument("catalog data is required")
	}

	m := &Memory{
		species:   make(map[string]*pokemon.Species, len(data.Species)),
		moves:     make(map[string]*pokemon.Move, len(data.Moves)),
		abilities: make(map[string]*pokemon.Ability, len(data.Abilities)),
		items:     make(map[string]*pokemon.Item, len(data.Items)),
		chart:     pokemon.StandardChart(),
	}

	vb := errors.NewValidationBuilder()
	for i := range data.Species {
		s := &data.Species[i]
		if s.ID == "" || m.species[s.ID] != nil {
			vb.Fieldf("species", "blank or duplicate id %q at %d", s.ID, i)
			continue
		}
		if len(s.Types) == 0 || len(s.Types) > 2 {
			vb.Fieldf("species", "%s must have one or two types", s.ID)
		}
		m.species[s.ID] = s
	}
	for i := range data.Moves {
		mv := &data.Moves[i]
		if mv.ID == "" || m.moves[mv.ID] != nil {
			vb.Fieldf("moves", "blank or duplicate id %q at %d", mv.ID, i)
			continue
		}
		if mv.PP <= 0 {
			vb.Fieldf("moves", "%s must have positive pp", mv.ID)
		}
		switch mv.Category {
		case pokemon.CategoryPhysical, pokemon.CategorySpecial, pokemon.CategoryStatus:
		default:
			vb.Fieldf("moves", "%s has unknown category %q", mv.ID, mv.Category)
		}
		m.moves[mv.ID] = mv
	}
	for i := range data.Abilities {
		a := &data.Abilities[i]
		if a.ID == "" || m.abilities[a.ID] != nil {
			vb.Fieldf("abilities", "blank or duplicate id %q at %d", a.ID, i)
			continue
		}
		m.abilities[a.ID] = a
	}
	for i := range data.Items {
		it := &data.Items[i]
		if it.ID == "" || m.items[it.ID] != nil {
			vb.Fieldf("items", "blank or duplicate id %q at %d", it.ID, i)
			continue
		}
		m.items[it.ID] = it
	}
	if err := vb.Build(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataIntegrity, "invalid catalog")
	}
	return m, nil
}

// Species looks up a species
func (m *Memory) Species(id string) (*pokemon.Species, error) {
	if s, ok := m.species[id]; ok {
		return s, nil
	}
	return nil, errors.DataIntegrityf("unknown species %q", id).WithMeta("species_id", id)
}

// Move looks up a move
func (m *Memory) Move(id string) (*pokemon.Move, error) {
	if mv, ok := m.moves[id]; ok {
		return mv, nil
	}
	return nil, errors.DataIntegrityf("unknown move %q", id).WithMeta("move_id", id)
}

// Ability looks up an ability
func (m *Memory) Ability(id string) (*pokemon.Ability, error) {
	if a, ok := m.abilities[id]; ok {
		return a, nil
	}
	return nil, errors.DataIntegrityf("unknown ability %q", id).WithMeta("ability_id", id)
}

// Item looks up an item
func (m *Memory) Item(id string) (*pokemon.Item, error) {
	if it, ok := m.items[id]; ok {
		return it, nil
	}
	return nil, errors.DataIntegrityf("unknown item %q", id).WithMeta("item_id", id)
}

// TypeChart returns the type chart
func (m *Memory) TypeChart() pokemon.TypeChart {
	return m.chart
}
