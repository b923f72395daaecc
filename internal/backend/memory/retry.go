package memory

import (
	"time"

	"lexeval/pkg/ratelimiter"
)

const (
	minRetryMs            = 50
	maxConcurrencyRetryMs = 250
	defaultHoldTimeout    = 10 * time.Minute
)

// retryAfter estimates when a denied requirement may fit again. Rolling
// limits wait for their oldest reservation to lapse; concurrency limits
// poll since a completion usually frees the slot first.
func (m *MemoryBackend) retryAfter(def ratelimiter.LimitDefinition, now time.Time) int {
	var (
		next time.Time
		ok   bool
	)
	ceil := maxConcurrencyRetryMs
	switch def.Kind {
	case ratelimiter.KindRolling:
		next, ok = m.roll[def.Key].heap.earliest()
		ceil = def.WindowSeconds * 1000
	case ratelimiter.KindConcurrency:
		next, ok = m.conc[def.Key].heap.earliest()
	}
	ms := ceil
	if ok {
		ms = int(next.Sub(now).Milliseconds())
	}
	if ms > ceil {
		ms = ceil
	}
	if ms < minRetryMs {
		ms = minRetryMs
	}
	return ms
}

func holdTimeout(def ratelimiter.LimitDefinition) time.Duration {
	if def.TimeoutSeconds <= 0 {
		return defaultHoldTimeout
	}
	return time.Duration(def.TimeoutSeconds) * time.Second
}
