package memory

import (
	"context"
	"fmt"

	"lexeval/pkg/ratelimiter"
)

// ApplyDefinition creates a limit or changes its capacity. Reservations
// already held stay in place; a lower capacity only affects new reserves.
func (m *MemoryBackend) ApplyDefinition(_ context.Context, def ratelimiter.LimitDefinition) error {
	if def.Key == "" {
		return fmt.Errorf("limit definition: empty key")
	}
	if def.Capacity == 0 {
		return fmt.Errorf("limit %s: capacity must be positive", def.Key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.defs[def.Key]; ok && prev.Kind != def.Kind {
		return fmt.Errorf("limit %s: kind changed from %s to %s", def.Key, prev.Kind, def.Kind)
	}
	switch def.Kind {
	case ratelimiter.KindRolling:
		if def.WindowSeconds <= 0 {
			return fmt.Errorf("limit %s: window_seconds must be positive", def.Key)
		}
		if limit, ok := m.roll[def.Key]; ok {
			limit.cap = def.Capacity
		} else {
			m.roll[def.Key] = newRollingLimit(def.Capacity)
		}
	case ratelimiter.KindConcurrency:
		if limit, ok := m.conc[def.Key]; ok {
			limit.cap = def.Capacity
		} else {
			m.conc[def.Key] = newConcLimit(def.Capacity)
		}
	default:
		return fmt.Errorf("limit %s: unknown kind %q", def.Key, def.Kind)
	}
	m.defs[def.Key] = def
	return nil
}
