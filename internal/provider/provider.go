package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"lexeval/pkg/ratelimiter"
)

// Completer sends a single prompt to a model and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, model, prompt string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, model, prompt string) (string, error) {
	return f(ctx, model, prompt)
}

// HTTPDoer abstracts HTTP clients used by providers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrDisabled is returned while a model is cooling down after repeated failures.
var ErrDisabled = errors.New("provider disabled")

// StatusError reports a non-2xx response from a completion API.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s error: status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s error: status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// Retryable reports whether the status is worth another attempt.
func (e *StatusError) Retryable() bool {
	return retryableStatus(e.StatusCode)
}

// ErrDecode marks a reply body that could not be parsed. Sending the same
// request again rarely helps, so it is not retried.
var ErrDecode = errors.New("decode response")

// IsRetryable reports whether err is transient. HTTP status errors from either
// provider are retried on 429 and 5xx. Decode failures, cancellation and
// disabled models are permanent; anything else is a transport failure.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrDisabled) || errors.Is(err, ErrDecode) {
		return false
	}
	if errors.Is(err, ratelimiter.ErrSchedulerClosed) || errors.Is(err, ratelimiter.ErrRejected) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.Code)
	}
	return true
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
