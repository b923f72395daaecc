package provider

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"lexeval/internal/spec"
)

// DefaultCooldown is how long a failing model stays disabled.
const DefaultCooldown = time.Minute

// Middleware wraps the bare provider client, inside retries, so every
// attempt passes through it.
type Middleware func(Completer) Completer

// FromConfig builds a completer for cfg wrapped with retries and a failure
// guard. A nil client gets an http.Client with the configured timeout; a
// nil throttle leaves attempts unthrottled.
func FromConfig(ctx context.Context, cfg spec.ProviderConfig, logger *zap.Logger, client *http.Client, throttle Middleware) (Completer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	}
	apiKey, err := apiKeyFromEnv(cfg.APIKeyEnv)
	if err != nil {
		return nil, err
	}

	var base Completer
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "openai":
		openai := NewOpenAI(apiKey, cfg.BaseURL, client)
		if cfg.Temperature != 0 {
			temperature := cfg.Temperature
			openai.Temperature = &temperature
		}
		base = openai
	case "gemini":
		gemini, err := NewGemini(ctx, apiKey, cfg.BaseURL, client)
		if err != nil {
			return nil, err
		}
		if cfg.Temperature != 0 {
			gemini.SetTemperature(cfg.Temperature)
		}
		base = gemini
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}

	if throttle != nil {
		base = throttle(base)
	}

	maxRetries := spec.IntOr(cfg.MaxRetries, 0)
	maxFailures := spec.IntOr(cfg.MaxFailures, 0)
	logger.Debug("provider configured",
		zap.String("provider", cfg.Provider),
		zap.String("base_url", cfg.BaseURL),
		zap.Int("max_retries", maxRetries),
		zap.Int("max_failures", maxFailures),
	)
	retrying := WithRetry(base, maxRetries, DefaultBackoff(), logger)
	return WithGuard(retrying, maxFailures, DefaultCooldown), nil
}

func apiKeyFromEnv(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return value, nil
}
