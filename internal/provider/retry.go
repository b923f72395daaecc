package provider

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BackoffPolicy applies exponential backoff between attempts.
type BackoffPolicy struct {
	Base   time.Duration
	Max    time.Duration
	Factor float64
	Jitter time.Duration
}

// DefaultBackoff returns the retry defaults used for completion calls.
func DefaultBackoff() BackoffPolicy {
	return BackoffPolicy{
		Base:   500 * time.Millisecond,
		Max:    10 * time.Second,
		Factor: 2.0,
		Jitter: 250 * time.Millisecond,
	}
}

// Delay computes the wait before retry number attempt (1-based).
func (p BackoffPolicy) Delay(attempt int, jitterFn func(time.Duration) time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	raw := time.Duration(float64(p.Base) * math.Pow(p.Factor, float64(attempt-1)))
	if raw < p.Base {
		raw = p.Base
	}
	if p.Max > 0 && raw > p.Max {
		raw = p.Max
	}
	if p.Jitter > 0 && jitterFn != nil {
		raw += jitterFn(p.Jitter)
	}
	return raw
}

// Retrying retries transient failures with backoff.
type Retrying struct {
	next       Completer
	maxRetries int
	policy     BackoffPolicy
	logger     *zap.Logger
	sleep      func(ctx context.Context, d time.Duration) error
	jitter     func(time.Duration) time.Duration
}

// WithRetry wraps next with up to maxRetries extra attempts.
func WithRetry(next Completer, maxRetries int, policy BackoffPolicy, logger *zap.Logger) *Retrying {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retrying{
		next:       next,
		maxRetries: maxRetries,
		policy:     policy,
		logger:     logger,
		sleep:      sleepContext,
		jitter:     newJitter(time.Now().UnixNano()),
	}
}

// Complete calls the wrapped completer until it succeeds, fails permanently,
// or runs out of retries.
func (r *Retrying) Complete(ctx context.Context, model, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			delay := r.policy.Delay(attempt, r.jitter)
			r.logger.Warn("retrying completion",
				zap.String("model", model),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr),
			)
			if err := r.sleep(ctx, delay); err != nil {
				return "", err
			}
		}
		text, err := r.next.Complete(ctx, model, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil || !IsRetryable(err) {
			return "", err
		}
	}
	return "", lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func newJitter(seed int64) func(time.Duration) time.Duration {
	var mu sync.Mutex
	rng := rand.New(rand.NewSource(seed))
	return func(max time.Duration) time.Duration {
		if max <= 0 {
			return 0
		}
		mu.Lock()
		defer mu.Unlock()
		return time.Duration(rng.Int63n(int64(max) + 1))
	}
}
