// Package idgen names new battles
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator hands out battle ids; implementations are safe for concurrent use
type Generator interface {
	Generate() string
}

func withPrefix(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}

// UUIDGenerator issues version 7 UUIDs, so ids sort by creation time
// in the archive
type UUIDGenerator struct {
	prefix string
}

func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

func (g *UUIDGenerator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		// only fails when the system random source does
		id = uuid.New()
	}
	return withPrefix(g.prefix, id.String())
}

// SequentialGenerator counts from 1. Simulations use it so reruns produce
// the same ids.
type SequentialGenerator struct {
	prefix string
	next   atomic.Uint64
}

func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

func (g *SequentialGenerator) Generate() string {
	return withPrefix(g.prefix, strconv.FormatUint(g.next.Add(1), 10))
}
