// Package rng provides the per-battle random source. Every roll in a battle
// goes through one Source so a seed plus an action sequence replays exactly.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	mrand "math/rand/v2"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// streamSalt is the second PCG word; the seed supplies the first
const streamSalt uint64 = 0x9e3779b97f4a7c15

// pcgRoller is a dice.Roller over a PCG generator
type pcgRoller struct {
	pcg *mrand.PCG
	r   *mrand.Rand
}

var _ dice.Roller = (*pcgRoller)(nil)

func newPCGRoller(pcg *mrand.PCG) *pcgRoller {
	return &pcgRoller{pcg: pcg, r: mrand.New(pcg)}
}

// Roll returns a value in [1, size]
func (p *pcgRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("invalid die size: %d", size)
	}
	return p.r.IntN(size) + 1, nil
}

// RollN rolls count dice of the given size
func (p *pcgRoller) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, fmt.Errorf("invalid dice count: %d", count)
	}
	out := make([]int, count)
	for i := range out {
		v, err := p.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Source is the battle's random stream
type Source struct {
	roller dice.Roller
	pcg    *mrand.PCG
}

// New returns a seeded, serializable source
func New(seed int64) *Source {
	pcg := mrand.NewPCG(uint64(seed), streamSalt) // #nosec G115 -- seed bits are reused as-is
	return &Source{roller: newPCGRoller(pcg), pcg: pcg}
}

// FromRoller wraps any toolkit roller. Such a source cannot be snapshotted.
func FromRoller(roller dice.Roller) *Source {
	return &Source{roller: roller}
}

// NewSeed returns a seed from the system entropy source
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("generate seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:]) >> 1), nil // #nosec G115 -- shifted into range
}

// Roller exposes the underlying toolkit roller
func (s *Source) Roller() dice.Roller {
	return s.roller
}

// Roll returns a value in [1, size]. An invalid size is a caller defect;
// it is logged and treated as a roll of 1.
func (s *Source) Roll(size int) int {
	v, err := s.roller.Roll(size)
	if err != nil {
		slog.Warn("Invalid roll clamped", "size", size, "error", err)
		return 1
	}
	return v
}

// Chance succeeds with the given percent probability
func (s *Source) Chance(percent int) bool {
	if percent >= 100 {
		return true
	}
	if percent <= 0 {
		return false
	}
	return s.Roll(100) <= percent
}

// OneIn succeeds with probability 1/n
func (s *Source) OneIn(n int) bool {
	if n <= 1 {
		return true
	}
	return s.Roll(n) == 1
}

// Between returns a value in [lo, hi]
func (s *Source) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.Roll(hi-lo+1) - 1
}

// CoinFlip returns true half the time
func (s *Source) CoinFlip() bool {
	return s.Roll(2) == 1
}

type sourceJSON struct {
	PCG []byte `json:"pcg"`
}

// MarshalJSON captures the generator position
func (s *Source) MarshalJSON() ([]byte, error) {
	if s.pcg == nil {
		return nil, fmt.Errorf("random source backed by an external roller cannot be serialized")
	}
	state, err := s.pcg.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshal pcg state: %w", err)
	}
	return json.Marshal(sourceJSON{PCG: state})
}

// UnmarshalJSON restores a generator at the captured position
func (s *Source) UnmarshalJSON(data []byte) error {
	var raw sourceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	pcg := &mrand.PCG{}
	if err := pcg.UnmarshalBinary(raw.PCG); err != nil {
		return fmt.Errorf("unmarshal pcg state: %w", err)
	}
	s.pcg = pcg
	s.roller = newPCGRoller(pcg)
	return nil
}
