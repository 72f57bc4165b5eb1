package rpgtoolkit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
)

func TestBattleEntity(t *testing.T) {
	st := &battle.State{ID: "battle-123"}

	entity := wrapBattle(st)

	assert.Equal(t, "battle-123", entity.GetID())
	assert.Equal(t, "battle", entity.GetType())
	assert.Equal(t, st, entity.State)
}

func TestWinner(t *testing.T) {
	st := &battle.State{
		ID:    "b",
		Sides: [2]*battle.Side{{Name: "red"}, {Name: "blue"}},
	}

	testCases := []struct {
		outcome battle.Outcome
		wantID  string
	}{
		{outcome: battle.OutcomeOngoing},
		{outcome: battle.OutcomeDraw},
		{outcome: battle.OutcomeSide1, wantID: "b/side_1"},
		{outcome: battle.OutcomeSide2, wantID: "b/side_2"},
	}
	for _, tc := range testCases {
		t.Run(string(tc.outcome), func(t *testing.T) {
			st.Outcome = tc.outcome
			w := winner(st)
			if tc.wantID == "" {
				assert.Nil(t, w)
				return
			}
			assert.Equal(t, tc.wantID, w.GetID())
			assert.Equal(t, "side", w.GetType())
		})
	}
}
