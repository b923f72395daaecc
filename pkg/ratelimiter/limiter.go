package ratelimiter

import (
	"context"
	"errors"
)

// Limiter is the client-facing API for reserve and complete operations.
type Limiter interface {
	Reserve(ctx context.Context, req ReserveRequest) (ReserveResponse, error)
	Complete(ctx context.Context, req CompleteRequest) (CompleteResponse, error)
}

var (
	// ErrSchedulerClosed is reported for jobs still queued at shutdown.
	ErrSchedulerClosed = errors.New("rate limiter: scheduler closed")
	// ErrRejected is reported when the limiter refuses a job for good.
	ErrRejected = errors.New("rate limiter: reservation rejected")
)

// NoopLimiter is a Limiter implementation that always allows requests.
var NoopLimiter Limiter = noopLimiter{}

type noopLimiter struct{}

func (noopLimiter) Reserve(_ context.Context, _ ReserveRequest) (ReserveResponse, error) {
	return ReserveResponse{Allowed: true}, nil
}

func (noopLimiter) Complete(_ context.Context, _ CompleteRequest) (CompleteResponse, error) {
	return CompleteResponse{Ok: true}, nil
}
