package engine

import (
	"encoding/json"

	"github.com/KirkDiggler/rpg-battle/internal/entities/battle"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// MarshalState encodes a battle snapshot. Pending actions and the random
// stream position are included, so a restored battle continues identically.
func MarshalState(st *battle.State) ([]byte, error) {
	if st == nil {
		return nil, errors.InvalidArgument("state is required")
	}
	data, err := json.Marshal(st)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal battle %s", st.ID)
	}
	return data, nil
}

// UnmarshalState decodes a snapshot. Catalog references still need Restore.
func UnmarshalState(data []byte) (*battle.State, error) {
	var st battle.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataIntegrity, "failed to unmarshal battle snapshot")
	}
	return &st, nil
}
