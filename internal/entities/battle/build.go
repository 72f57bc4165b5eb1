package battle

import (
	"fmt"

	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/rng"
)

// Roster limits
const (
	MaxPartySize = 6
	MaxMoves     = 4
	MaxLevel     = 100
)

// Catalog is the read-only lookup the battle resolves ids against.
// A miss is a data integrity failure.
type Catalog interface {
	Move(id string) (*pokemon.Move, error)
	Ability(id string) (*pokemon.Ability, error)
	Item(id string) (*pokemon.Item, error)
	Species(id string) (*pokemon.Species, error)
}

// RosterEntry is the snapshot a combatant is built from
type RosterEntry struct {
	ID        string         `yaml:"id" json:"id"`
	Nickname  string         `yaml:"nickname" json:"nickname"`
	SpeciesID string         `yaml:"species" json:"species_id"`
	Level     int            `yaml:"level" json:"level"`
	Moves     []string       `yaml:"moves" json:"moves"`
	AbilityID string         `yaml:"ability" json:"ability_id"`
	ItemID    string         `yaml:"item" json:"item_id"`
	Stats     *pokemon.Stats `yaml:"stats,omitempty" json:"stats,omitempty"`
}

// Validate checks the shape of the entry; ids are checked against the catalog later
func (r *RosterEntry) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("species", r.SpeciesID, vb)
	errors.ValidateRange("level", r.Level, 1, MaxLevel, vb)
	errors.ValidateRange("moves", len(r.Moves), 1, MaxMoves, vb)
	return vb.Build()
}

// DeriveStats computes level-scaled stats from base stats with fixed
// individual values of 31 and no effort values
func DeriveStats(base pokemon.Stats, level int) pokemon.Stats {
	scale := func(b int) int {
		return (2*b + 31) * level / 100
	}
	return pokemon.Stats{
		HP:        scale(base.HP) + level + 10,
		Attack:    scale(base.Attack) + 5,
		Defense:   scale(base.Defense) + 5,
		SpAttack:  scale(base.SpAttack) + 5,
		SpDefense: scale(base.SpDefense) + 5,
		Speed:     scale(base.Speed) + 5,
	}
}

// NewCombatant instantiates a combatant at full HP
func NewCombatant(entry RosterEntry, side, position int, cat Catalog) (*Combatant, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	species, err := cat.Species(entry.SpeciesID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve species for side %d position %d", side+1, position+1)
	}

	stats := DeriveStats(species.BaseStats, entry.Level)
	if entry.Stats != nil {
		stats = *entry.Stats
	}

	id := entry.ID
	if id == "" {
		id = fmt.Sprintf("p%d.%d", side+1, position+1)
	}
	name := entry.Nickname
	if name == "" {
		name = species.Name
	}

	c := &Combatant{
		ID:        id,
		Name:      name,
		SpeciesID: species.ID,
		Side:      side,
		Position:  position,
		Level:     entry.Level,
		Types:     append([]pokemon.Type(nil), species.Types...),
		Stats:     stats,
		HP:        stats.HP,
		Stages:    make(map[pokemon.Stat]int),
		AbilityID: entry.AbilityID,
		ItemID:    entry.ItemID,
	}
	for _, moveID := range entry.Moves {
		c.Moves = append(c.Moves, &MoveSlot{ID: moveID})
	}

	if err := c.hydrate(cat); err != nil {
		return nil, err
	}
	for _, slot := range c.Moves {
		slot.PP = slot.move.PP
		slot.MaxPP = slot.move.PP
	}
	return c, nil
}

// hydrate resolves catalog references after construction or after loading a snapshot
func (c *Combatant) hydrate(cat Catalog) error {
	for _, slot := range c.Moves {
		move, err := cat.Move(slot.ID)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve move for %s", c.ID)
		}
		slot.move = move
	}
	c.ability = nil
	if c.AbilityID != "" {
		ability, err := cat.Ability(c.AbilityID)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve ability for %s", c.ID)
		}
		c.ability = ability
	}
	c.item = nil
	if c.ItemID != "" {
		item, err := cat.Item(c.ItemID)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve item for %s", c.ID)
		}
		c.item = item
	}
	return nil
}

// SideInput describes one side at battle start
type SideInput struct {
	Name   string        `yaml:"name" json:"name"`
	Roster []RosterEntry `yaml:"roster" json:"roster"`
}

// NewState builds a battle with the first roster entry of each side active
func NewState(id string, seed int64, sides [2]SideInput, cat Catalog) (*State, error) {
	st := &State{
		ID:      id,
		Seed:    seed,
		Outcome: OutcomeOngoing,
		RNG:     rng.New(seed),
	}

	seen := make(map[string]bool)
	for i, in := range sides {
		if len(in.Roster) == 0 || len(in.Roster) > MaxPartySize {
			return nil, errors.InvalidArgumentf("side %d must field between 1 and %d combatants", i+1, MaxPartySize)
		}
		side := &Side{Name: in.Name}
		for pos, entry := range in.Roster {
			c, err := NewCombatant(entry, i, pos, cat)
			if err != nil {
				return nil, err
			}
			if seen[c.ID] {
				return nil, errors.InvalidArgumentf("duplicate combatant id %q", c.ID)
			}
			seen[c.ID] = true
			side.Party = append(side.Party, c)
		}
		st.Sides[i] = side
	}
	return st, nil
}

// Hydrate re-resolves catalog references on a state loaded from a snapshot
func (st *State) Hydrate(cat Catalog) error {
	for _, side := range st.Sides {
		if side == nil {
			return errors.DataIntegrityf("snapshot %s is missing a side", st.ID)
		}
		for _, c := range side.Party {
			if err := c.hydrate(cat); err != nil {
				return err
			}
		}
	}
	if st.RNG == nil {
		return errors.DataIntegrityf("snapshot %s has no random state", st.ID)
	}
	return nil
}
