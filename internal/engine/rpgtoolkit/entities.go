package rpgtoolkit

import (
	"fmt"

	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
)

// BattleEntity wraps battle.State to implement core.Entity interface
type BattleEntity struct {
	*battle.State
}

// GetID returns the battle's ID
func (b *BattleEntity) GetID() string {
	return b.ID
}

// GetType returns the entity type for rpg-toolkit
func (b *BattleEntity) GetType() string {
	return "battle"
}

// SideEntity identifies one side of a battle to rpg-toolkit
type SideEntity struct {
	BattleID string
	Index    int
	Name     string
}

// GetID returns a battle-scoped side ID
func (s *SideEntity) GetID() string {
	return fmt.Sprintf("%s/side_%d", s.BattleID, s.Index+1)
}

// GetType returns the entity type for rpg-toolkit
func (s *SideEntity) GetType() string {
	return "side"
}

// wrapBattle converts a battle.State to a BattleEntity
func wrapBattle(st *battle.State) *BattleEntity {
	return &BattleEntity{State: st}
}

// winner returns the winning side, or nil for a draw or an unfinished battle
func winner(st *battle.State) *SideEntity {
	var idx int
	switch st.Outcome {
	case battle.OutcomeSide1:
		idx = 0
	case battle.OutcomeSide2:
		idx = 1
	default:
		return nil
	}
	return &SideEntity{BattleID: st.ID, Index: idx, Name: st.Sides[idx].Name}
}
