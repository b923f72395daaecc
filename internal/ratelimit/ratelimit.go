// Package ratelimit routes provider attempts through the embedded rate
// limiter when the config enables it.
package ratelimit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lexeval/internal/config"
	"lexeval/internal/provider"
	"lexeval/internal/spec"
	"lexeval/pkg/ratelimiter"
	"lexeval/pkg/ratelimiter/local"
)

// Definitions expands configured limits into limiter definitions.
func Definitions(cfg spec.RateLimiterConfig) []ratelimiter.LimitDefinition {
	var defs []ratelimiter.LimitDefinition
	for _, limit := range cfg.Limits {
		defs = append(defs, ratelimiter.LLMLimits{
			Provider:           limit.Provider,
			Model:              limit.Model,
			RequestsPerMinute:  limit.RequestsPerMinute,
			TokensPerMinute:    limit.TokensPerMinute,
			Concurrency:        limit.Concurrency,
			HoldTimeoutSeconds: cfg.HoldTimeoutSeconds,
		}.Definitions()...)
	}
	return defs
}

// NewScheduler starts a scheduler over an in-memory limiter. It returns nil
// when the limiter is disabled.
func NewScheduler(cfg spec.RateLimiterConfig, logger *zap.Logger) (*ratelimiter.Scheduler, error) {
	if cfg.Mode != config.RateLimitEmbedded {
		return nil, nil
	}
	limiter, err := local.NewMemoryLimiter(Definitions(cfg), nil)
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("rate limiter enabled",
		zap.Int("limits", len(cfg.Limits)),
		zap.Int("workers", cfg.Workers),
	)
	return ratelimiter.NewSchedulerWithObserver(limiter, cfg.Workers, zapObserver{logger: logger}), nil
}

// Throttle returns a middleware that runs each attempt as a scheduler job
// for providerName. A nil scheduler returns nil.
func Throttle(sched *ratelimiter.Scheduler, providerName string, maxOutputTokens uint64) provider.Middleware {
	if sched == nil {
		return nil
	}
	return func(next provider.Completer) provider.Completer {
		return &scheduled{sched: sched, provider: providerName, maxOutputTokens: maxOutputTokens, next: next}
	}
}

type scheduled struct {
	sched           *ratelimiter.Scheduler
	provider        string
	maxOutputTokens uint64
	next            provider.Completer
}

func (s *scheduled) Complete(ctx context.Context, model, prompt string) (string, error) {
	var reply string
	err := s.sched.Do(ctx, ratelimiter.Job{
		JobID:           uuid.NewString(),
		Provider:        s.provider,
		Model:           model,
		Prompt:          prompt,
		MaxOutputTokens: s.maxOutputTokens,
		Execute: func(ctx context.Context) (uint64, error) {
			text, err := s.next.Complete(ctx, model, prompt)
			reply = text
			return ratelimiter.EstimatePromptTokens(prompt) + ratelimiter.EstimatePromptTokens(text), err
		},
	})
	if err != nil {
		return "", err
	}
	return reply, nil
}

type zapObserver struct {
	logger *zap.Logger
}

func (o zapObserver) OnReserveDenied(job ratelimiter.Job, res ratelimiter.ReserveResponse) {
	o.logger.Debug("rate limited",
		zap.String("provider", job.Provider),
		zap.String("model", job.Model),
		zap.Int("retry_after_ms", res.RetryAfterMs),
	)
}

func (o zapObserver) OnReserveError(job ratelimiter.Job, err error) {
	o.logger.Warn("rate limiter reserve failed",
		zap.String("provider", job.Provider),
		zap.String("model", job.Model),
		zap.Error(err),
	)
}
