package flow

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator assigns ids to discovered flows.
//
// key identifies the flow's edge sequence; generators may ignore it.
type IDGenerator interface {
	Generate(key string) string
}

// DomainFlow separates flow id hashes from any other hash in the system.
const DomainFlow = "socperf/flow/v1"

// PathHashGenerator derives a stable id from the edge sequence.
//
// Format: "flow-" + first 12 hex chars of SHA256(domain + 0x00 + key).
//
// Thread-safety: stateless and safe for concurrent use.
type PathHashGenerator struct{}

// Generate returns the content-addressed id for key.
func (PathHashGenerator) Generate(key string) string {
	h := sha256.New()
	h.Write([]byte(DomainFlow))
	h.Write([]byte{0x00})
	h.Write([]byte(key))
	return "flow-" + hex.EncodeToString(h.Sum(nil))[:12]
}

// UUIDv7Generator generates time-sortable UUIDv7 ids.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7, ignoring key.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate(string) string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator numbers flows "<prefix>-1", "<prefix>-2", ...
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceGenerator creates a generator; an empty prefix means "flow".
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	if prefix == "" {
		prefix = "flow"
	}
	return &SequenceGenerator{prefix: prefix}
}

// Generate returns the next id in sequence, ignoring key.
func (g *SequenceGenerator) Generate(string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

// FixedGenerator returns predetermined ids for testing.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined id.
//
// Panics if all ids have been consumed, to catch a test that discovered
// more flows than it expected.
func (g *FixedGenerator) Generate(string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
