// Package memory keeps rate limit state for a single process.
package memory

import (
	"sync"

	"lexeval/pkg/ratelimiter"
)

// MemoryBackend stores rate limiter state in memory. Keys without a
// definition are unlimited.
type MemoryBackend struct {
	mu     sync.Mutex
	clock  Clock
	defs   map[ratelimiter.LimitKey]ratelimiter.LimitDefinition
	roll   map[ratelimiter.LimitKey]*rollingLimit
	conc   map[ratelimiter.LimitKey]*concLimit
	leases map[string]leaseState
}

// New creates a MemoryBackend with the provided clock.
func New(clock Clock) *MemoryBackend {
	if clock == nil {
		clock = realClock{}
	}
	return &MemoryBackend{
		clock:  clock,
		defs:   map[ratelimiter.LimitKey]ratelimiter.LimitDefinition{},
		roll:   map[ratelimiter.LimitKey]*rollingLimit{},
		conc:   map[ratelimiter.LimitKey]*concLimit{},
		leases: map[string]leaseState{},
	}
}

// Definitions returns the applied definitions.
func (m *MemoryBackend) Definitions() []ratelimiter.LimitDefinition {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ratelimiter.LimitDefinition, 0, len(m.defs))
	for _, def := range m.defs {
		out = append(out, def)
	}
	return out
}
