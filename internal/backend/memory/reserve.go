package memory

import (
	"context"
	"time"

	"lexeval/pkg/ratelimiter"
)

const invalidRequestError = "invalid_request"

// Reserve admits every requirement or none of them. A zero at uses the
// backend clock. Reserving an already held lease with the same
// requirements is allowed again without consuming capacity.
func (m *MemoryBackend) Reserve(_ context.Context, req ratelimiter.ReserveRequest, at time.Time) (ratelimiter.ReserveResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if req.LeaseID == "" || len(req.Requirements) == 0 {
		return ratelimiter.ReserveResponse{Error: invalidRequestError}, nil
	}
	if state, ok := m.leases[req.LeaseID]; ok {
		if requirementsEqual(state.requirements, req.Requirements) {
			return ratelimiter.ReserveResponse{Allowed: true, ReservedAtUnixMs: state.reservedAtUnixMs}, nil
		}
		return ratelimiter.ReserveResponse{Error: invalidRequestError}, nil
	}

	now := at
	if now.IsZero() {
		now = m.clock.Now()
	}

	retryMs := 0
	for _, r := range req.Requirements {
		def, ok := m.defs[r.Key]
		if !ok {
			continue
		}
		fits := true
		switch def.Kind {
		case ratelimiter.KindRolling:
			limit := m.roll[r.Key]
			limit.cleanup(now)
			fits = limit.fits(r.Amount)
		case ratelimiter.KindConcurrency:
			limit := m.conc[r.Key]
			limit.cleanup(now)
			fits = limit.fits()
		}
		if !fits {
			retryMs = max(retryMs, m.retryAfter(def, now))
		}
	}
	if retryMs > 0 {
		return ratelimiter.ReserveResponse{RetryAfterMs: retryMs}, nil
	}

	for _, r := range req.Requirements {
		def, ok := m.defs[r.Key]
		if !ok {
			continue
		}
		switch def.Kind {
		case ratelimiter.KindRolling:
			m.roll[r.Key].add(req.LeaseID, r.Amount, now.Add(time.Duration(def.WindowSeconds)*time.Second))
		case ratelimiter.KindConcurrency:
			m.conc[r.Key].add(req.LeaseID, now.Add(holdTimeout(def)))
		}
	}
	m.leases[req.LeaseID] = leaseState{
		reservedAtUnixMs: now.UnixMilli(),
		requirements:     req.Requirements,
	}
	return ratelimiter.ReserveResponse{Allowed: true, ReservedAtUnixMs: now.UnixMilli()}, nil
}
