// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

// RosterEntryBuilder provides a fluent interface for building roster entries
type RosterEntryBuilder struct {
	entry battle.RosterEntry
}

// NewRosterEntryBuilder starts a level 50 entry knowing tackle
func NewRosterEntryBuilder(speciesID string) *RosterEntryBuilder {
	return &RosterEntryBuilder{
		entry: battle.RosterEntry{
			SpeciesID: speciesID,
			Level:     50,
			Moves:     []string{"tackle"},
		},
	}
}

// WithID sets the combatant ID
func (b *RosterEntryBuilder) WithID(id string) *RosterEntryBuilder {
	b.entry.ID = id
	return b
}

// WithLevel sets the level
func (b *RosterEntryBuilder) WithLevel(level int) *RosterEntryBuilder {
	b.entry.Level = level
	return b
}

// WithMoves replaces the move list
func (b *RosterEntryBuilder) WithMoves(moves ...string) *RosterEntryBuilder {
	b.entry.Moves = moves
	return b
}

// WithAbility sets the ability
func (b *RosterEntryBuilder) WithAbility(id string) *RosterEntryBuilder {
	b.entry.AbilityID = id
	return b
}

// WithItem sets the held item
func (b *RosterEntryBuilder) WithItem(id string) *RosterEntryBuilder {
	b.entry.ItemID = id
	return b
}

// WithStats overrides the derived stats with every stat at the given value
// except HP and speed
func (b *RosterEntryBuilder) WithStats(hp, other, speed int) *RosterEntryBuilder {
	b.entry.Stats = &pokemon.Stats{
		HP:        hp,
		Attack:    other,
		Defense:   other,
		SpAttack:  other,
		SpDefense: other,
		Speed:     speed,
	}
	return b
}

// WithSpeed overrides only speed, keeping the other stats as set or derived
func (b *RosterEntryBuilder) WithSpeed(speed int) *RosterEntryBuilder {
	if b.entry.Stats == nil {
		b.WithStats(200, 100, speed)
		return b
	}
	b.entry.Stats.Speed = speed
	return b
}

// Build returns the entry
func (b *RosterEntryBuilder) Build() battle.RosterEntry {
	entry := b.entry
	entry.Moves = append([]string(nil), b.entry.Moves...)
	if b.entry.Stats != nil {
		stats := *b.entry.Stats
		entry.Stats = &stats
	}
	return entry
}

// Side assembles a side input from built entries
func Side(name string, entries ...*RosterEntryBuilder) battle.SideInput {
	in := battle.SideInput{Name: name}
	for _, e := range entries {
		in.Roster = append(in.Roster, e.Build())
	}
	return in
}
