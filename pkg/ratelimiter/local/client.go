// Package local serves the Limiter API from an in-process memory backend.
package local

import (
	"context"
	"fmt"
	"time"

	"lexeval/internal/backend/memory"
	"lexeval/pkg/ratelimiter"
)

// Client implements ratelimiter.Limiter using the in-memory backend.
type Client struct {
	backend *memory.MemoryBackend
}

// NewMemoryLimiter applies defs to a fresh backend. A nil clock uses the
// wall clock.
func NewMemoryLimiter(defs []ratelimiter.LimitDefinition, clock memory.Clock) (*Client, error) {
	backend := memory.New(clock)
	for _, def := range defs {
		if err := backend.ApplyDefinition(context.Background(), def); err != nil {
			return nil, fmt.Errorf("apply limit definition: %w", err)
		}
	}
	return &Client{backend: backend}, nil
}

// Reserve forwards reserve requests to the backend.
func (c *Client) Reserve(ctx context.Context, req ratelimiter.ReserveRequest) (ratelimiter.ReserveResponse, error) {
	if err := ctx.Err(); err != nil {
		return ratelimiter.ReserveResponse{}, err
	}
	return c.backend.Reserve(ctx, req, time.Time{})
}

// Complete forwards completion requests to the backend.
func (c *Client) Complete(ctx context.Context, req ratelimiter.CompleteRequest) (ratelimiter.CompleteResponse, error) {
	return c.backend.Complete(ctx, req)
}
