package provider

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Guard disables a model after maxFailures consecutive failures until the
// cooldown elapses.
type Guard struct {
	maxFailures   int
	cooldown      time.Duration
	failures      int
	disabledUntil time.Time
	now           func() time.Time
}

// NewGuard returns a guard. maxFailures <= 0 never disables.
func NewGuard(maxFailures int, cooldown time.Duration) Guard {
	return Guard{
		maxFailures: maxFailures,
		cooldown:    cooldown,
		now:         time.Now,
	}
}

// Allow reports whether calls may proceed.
func (g *Guard) Allow() bool {
	if g == nil || g.disabledUntil.IsZero() {
		return true
	}
	return g.now().After(g.disabledUntil)
}

// RecordFailure counts a failure and starts the cooldown at the threshold.
func (g *Guard) RecordFailure() {
	if g == nil || g.maxFailures <= 0 {
		return
	}
	g.failures++
	if g.failures >= g.maxFailures {
		g.disabledUntil = g.now().Add(g.cooldown)
	}
}

// RecordSuccess resets the failure streak.
func (g *Guard) RecordSuccess() {
	if g == nil {
		return
	}
	g.failures = 0
	g.disabledUntil = time.Time{}
}

// DisabledUntil returns the end of the current cooldown, if any.
func (g *Guard) DisabledUntil() time.Time {
	if g == nil {
		return time.Time{}
	}
	return g.disabledUntil
}

// Failures returns the current consecutive failure count.
func (g *Guard) Failures() int {
	if g == nil {
		return 0
	}
	return g.failures
}

// Guarded wraps a Completer with one Guard per model.
type Guarded struct {
	next        Completer
	maxFailures int
	cooldown    time.Duration
	now         func() time.Time

	mu     sync.Mutex
	guards map[string]*Guard
}

// WithGuard wraps next so a model that keeps failing is skipped during cooldown.
func WithGuard(next Completer, maxFailures int, cooldown time.Duration) *Guarded {
	return &Guarded{
		next:        next,
		maxFailures: maxFailures,
		cooldown:    cooldown,
		now:         time.Now,
		guards:      map[string]*Guard{},
	}
}

// Complete returns ErrDisabled while the model is cooling down.
func (g *Guarded) Complete(ctx context.Context, model, prompt string) (string, error) {
	guard := g.guard(model)
	g.mu.Lock()
	allowed := guard.Allow()
	until := guard.DisabledUntil()
	g.mu.Unlock()
	if !allowed {
		return "", fmt.Errorf("%w: %s until %s", ErrDisabled, model, until.Format(time.RFC3339))
	}

	text, err := g.next.Complete(ctx, model, prompt)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		if ctx.Err() == nil {
			guard.RecordFailure()
		}
		return "", err
	}
	guard.RecordSuccess()
	return text, nil
}

func (g *Guarded) guard(model string) *Guard {
	g.mu.Lock()
	defer g.mu.Unlock()
	guard, ok := g.guards[model]
	if !ok {
		created := NewGuard(g.maxFailures, g.cooldown)
		created.now = g.now
		guard = &created
		g.guards[model] = guard
	}
	return guard
}
