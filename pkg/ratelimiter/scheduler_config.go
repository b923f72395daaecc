package ratelimiter

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultErrorRetryDelay = 100 * time.Millisecond
	defaultIdleInterval    = 50 * time.Millisecond
	defaultJitterMax       = 25 * time.Millisecond
)

// schedulerConfig overrides scheduler behavior for tests or tuning.
type schedulerConfig struct {
	now             func() time.Time
	newLeaseID      func() string
	jitter          func(time.Duration) time.Duration
	errorRetryDelay time.Duration
	idleInterval    time.Duration
	observer        SchedulerObserver
}

func defaultSchedulerConfig() schedulerConfig {
	jitterSource := newLockedRand(time.Now().UnixNano())
	return schedulerConfig{
		now:             time.Now,
		newLeaseID:      uuid.NewString,
		jitter:          jitterSource.Jitter,
		errorRetryDelay: defaultErrorRetryDelay,
		idleInterval:    defaultIdleInterval,
	}
}

// lockedRand provides a concurrency-safe jitter source.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedRand(seed int64) *lockedRand {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

// Jitter returns a random duration up to min(base, defaultJitterMax).
func (l *lockedRand) Jitter(base time.Duration) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	limit := defaultJitterMax
	if base > 0 && base < defaultJitterMax {
		limit = base
	}
	return time.Duration(l.r.Int63n(int64(limit) + 1))
}
