package valueobject

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for new columns and tasks
type IDGenerator interface {
	NewID(kind Kind) ID
}

// UUIDGenerator issues random UUIDv4 identifiers
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUIDGenerator
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a fresh UUID regardless of kind
func (g *UUIDGenerator) NewID(Kind) ID {
	return ID(uuid.NewString())
}

// SequenceGenerator issues C1, C2, ... for columns and T1, T2, ... for tasks.
// Counters are process-local; callers must re-draw on collision with ids
// loaded from storage.
type SequenceGenerator struct {
	mu       sync.Mutex
	counters map[Kind]int
}

// NewSequenceGenerator creates a new SequenceGenerator starting at 1
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{counters: make(map[Kind]int)}
}

// NewID returns the next identifier for the kind
func (g *SequenceGenerator) NewID(kind Kind) ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counters[kind]++
	prefix := "T"
	if kind == KindColumn {
		prefix = "C"
	}
	return ID(prefix + strconv.Itoa(g.counters[kind]))
}
