package config

import (
	"fmt"

	"lexeval/internal/spec"
)

func validateRateLimiter(rl spec.RateLimiterConfig, add issueAdder) {
	switch rl.Mode {
	case RateLimitDisabled:
		return
	case RateLimitEmbedded:
	default:
		add("rate_limiter.mode", fmt.Sprintf("unsupported mode %q", rl.Mode))
		return
	}
	if rl.Workers < 1 {
		add("rate_limiter.workers", "must be >= 1")
	}
	if rl.HoldTimeoutSeconds < 0 {
		add("rate_limiter.hold_timeout_seconds", "must be >= 0")
	}
	if len(rl.Limits) == 0 {
		add("rate_limiter.limits", "at least one limit is required in embedded mode")
	}
	seen := map[string]bool{}
	for i, limit := range rl.Limits {
		field := fmt.Sprintf("rate_limiter.limits[%d]", i)
		switch limit.Provider {
		case ProviderOpenAI, ProviderGemini:
		case "":
			add(field+".provider", "is required")
		default:
			add(field+".provider", fmt.Sprintf("unsupported provider %q", limit.Provider))
		}
		if limit.Model == "" {
			add(field+".model", "is required")
		}
		if limit.RequestsPerMinute == 0 && limit.TokensPerMinute == 0 && limit.Concurrency == 0 {
			add(field, "set at least one of requests_per_minute, tokens_per_minute or concurrency")
		}
		key := limit.Provider + ":" + limit.Model
		if seen[key] {
			add(field, fmt.Sprintf("duplicate limit for %s", key))
		}
		seen[key] = true
	}
}
