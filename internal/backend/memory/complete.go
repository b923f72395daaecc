package memory

import (
	"context"

	"lexeval/pkg/ratelimiter"
)

// Complete frees concurrency holds and returns unused rolling capacity.
// Unknown leases succeed so a repeated completion is harmless.
func (m *MemoryBackend) Complete(_ context.Context, req ratelimiter.CompleteRequest) (ratelimiter.CompleteResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.leases[req.LeaseID]
	if !ok {
		return ratelimiter.CompleteResponse{Ok: true}, nil
	}
	for _, r := range state.requirements {
		if limit, ok := m.conc[r.Key]; ok {
			limit.release(req.LeaseID)
		}
	}
	for _, actual := range req.Actuals {
		if limit, ok := m.roll[actual.Key]; ok {
			limit.reduce(req.LeaseID, actual.ActualAmount)
		}
	}
	delete(m.leases, req.LeaseID)
	return ratelimiter.CompleteResponse{Ok: true}, nil
}
