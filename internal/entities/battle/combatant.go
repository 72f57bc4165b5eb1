package battle

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

// EntityTypeCombatant is the toolkit entity type of a combatant
const EntityTypeCombatant = "combatant"

// Volatile is the state of one volatile status
type Volatile struct {
	// Turns remaining; 0 means it lasts until switch-out or an explicit cure
	Turns    int    `json:"turns,omitempty"`
	Counter  int    `json:"counter,omitempty"`
	MoveID   string `json:"move_id,omitempty"`
	SourceID string `json:"source_id,omitempty"`
}

// MoveSlot is a known move and its remaining uses
type MoveSlot struct {
	ID    string `json:"id"`
	PP    int    `json:"pp"`
	MaxPP int    `json:"max_pp"`

	move *pokemon.Move
}

// Move returns the resolved descriptor
func (m *MoveSlot) Move() *pokemon.Move {
	return m.move
}

// Combatant is one battler instantiated from a roster entry
type Combatant struct {
	ID            string                             `json:"id"`
	Name          string                             `json:"name"`
	SpeciesID     string                             `json:"species_id"`
	Side          int                                `json:"side"`
	Position      int                                `json:"position"`
	Level         int                                `json:"level"`
	Types         []pokemon.Type                     `json:"types"`
	Stats         pokemon.Stats                      `json:"stats"`
	HP            int                                `json:"hp"`
	Stages        map[pokemon.Stat]int               `json:"stages,omitempty"`
	Status        pokemon.StatusKind                 `json:"status,omitempty"`
	StatusCounter int                                `json:"status_counter,omitempty"`
	Volatiles     map[pokemon.VolatileKind]*Volatile `json:"volatiles,omitempty"`
	Moves         []*MoveSlot                        `json:"moves"`
	AbilityID     string                             `json:"ability_id,omitempty"`
	ItemID        string                             `json:"item_id,omitempty"`
	ItemConsumed  bool                               `json:"item_consumed,omitempty"`
	Fainted       bool                               `json:"fainted,omitempty"`
	LastMoveID    string                             `json:"last_move_id,omitempty"`
	LockedMoveID  string                             `json:"locked_move_id,omitempty"`
	ProtectStreak int                                `json:"protect_streak,omitempty"`
	Spent         map[string]bool                    `json:"spent,omitempty"`

	ability *pokemon.Ability
	item    *pokemon.Item
}

var _ core.Entity = (*Combatant)(nil)

// GetID implements core.Entity
func (c *Combatant) GetID() string {
	return c.ID
}

// GetType implements core.Entity
func (c *Combatant) GetType() string {
	return EntityTypeCombatant
}

// MaxHP is the derived HP stat
func (c *Combatant) MaxHP() int {
	return c.Stats.HP
}

// Healthy reports whether the combatant can still battle
func (c *Combatant) Healthy() bool {
	return !c.Fainted && c.HP > 0
}

// Ability returns the resolved ability, or nil
func (c *Combatant) Ability() *pokemon.Ability {
	return c.ability
}

// HeldItem returns the resolved held item, or nil when none is held or it was consumed
func (c *Combatant) HeldItem() *pokemon.Item {
	if c.ItemConsumed {
		return nil
	}
	return c.item
}

// HasType reports whether the combatant has a type
func (c *Combatant) HasType(t pokemon.Type) bool {
	for _, own := range c.Types {
		if own == t {
			return true
		}
	}
	return false
}

// EffectsOfKind returns the ability and held item effects of a kind
func (c *Combatant) EffectsOfKind(kind pokemon.EffectKind) []pokemon.Effect {
	var out []pokemon.Effect
	if c.ability != nil {
		for _, e := range c.ability.Effects {
			if e.Kind == kind {
				out = append(out, e)
			}
		}
	}
	if item := c.HeldItem(); item != nil {
		for _, e := range item.Effects {
			if e.Kind == kind {
				out = append(out, e)
			}
		}
	}
	return out
}

// HasEffect reports whether the ability or held item has an effect of a kind
func (c *Combatant) HasEffect(kind pokemon.EffectKind) bool {
	return len(c.EffectsOfKind(kind)) > 0
}

// Grounded reports whether ground-level field effects reach the combatant
func (c *Combatant) Grounded() bool {
	if c.HasType(pokemon.TypeFlying) || c.HasEffect(pokemon.KindUngrounded) {
		return false
	}
	for _, e := range c.EffectsOfKind(pokemon.KindTypeImmunity) {
		if e.MoveType == pokemon.TypeGround {
			return false
		}
	}
	return true
}

// Volatile returns a volatile status, or nil
func (c *Combatant) Volatile(kind pokemon.VolatileKind) *Volatile {
	return c.Volatiles[kind]
}

// HasVolatile reports whether a volatile status is active
func (c *Combatant) HasVolatile(kind pokemon.VolatileKind) bool {
	_, ok := c.Volatiles[kind]
	return ok
}

// SetVolatile adds or replaces a volatile status
func (c *Combatant) SetVolatile(kind pokemon.VolatileKind, v *Volatile) {
	if c.Volatiles == nil {
		c.Volatiles = make(map[pokemon.VolatileKind]*Volatile)
	}
	c.Volatiles[kind] = v
}

// RemoveVolatile clears a volatile status
func (c *Combatant) RemoveVolatile(kind pokemon.VolatileKind) {
	delete(c.Volatiles, kind)
}

// MoveSlot returns the slot for a known move, or nil
func (c *Combatant) MoveSlot(moveID string) *MoveSlot {
	for _, slot := range c.Moves {
		if slot.ID == moveID {
			return slot
		}
	}
	return nil
}

// MarkSpent records that a one-time effect source has fired
func (c *Combatant) MarkSpent(key string) {
	if c.Spent == nil {
		c.Spent = make(map[string]bool)
	}
	c.Spent[key] = true
}

// IsSpent reports whether a one-time effect source has fired
func (c *Combatant) IsSpent(key string) bool {
	return c.Spent[key]
}

// ResetOnSwitch clears everything that does not survive leaving the field
func (c *Combatant) ResetOnSwitch() {
	c.Volatiles = nil
	c.ResetStages()
	c.LockedMoveID = ""
	c.ProtectStreak = 0
	if c.Status == pokemon.StatusToxic {
		c.StatusCounter = 1
	}
}
