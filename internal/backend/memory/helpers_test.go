package memory

import (
	"testing"
	"time"

	"lexeval/internal/testutil"
	"lexeval/pkg/ratelimiter"
)

func applyDefs(t *testing.T, backend *MemoryBackend, defs ...ratelimiter.LimitDefinition) {
	t.Helper()
	ctx := testutil.Context(t, time.Second)
	for _, def := range defs {
		if err := backend.ApplyDefinition(ctx, def); err != nil {
			t.Fatalf("apply definition: %v", err)
		}
	}
}

func reserve(t *testing.T, backend *MemoryBackend, leaseID string, reqs []ratelimiter.Requirement, now time.Time) ratelimiter.ReserveResponse {
	t.Helper()
	ctx := testutil.Context(t, time.Second)
	res, err := backend.Reserve(ctx, ratelimiter.ReserveRequest{LeaseID: leaseID, Requirements: reqs}, now)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	return res
}

func allowReserve(t *testing.T, backend *MemoryBackend, leaseID string, reqs []ratelimiter.Requirement, now time.Time) {
	t.Helper()
	if res := reserve(t, backend, leaseID, reqs, now); !res.Allowed {
		t.Fatalf("expected allow for %s, got %+v", leaseID, res)
	}
}

func denyReserve(t *testing.T, backend *MemoryBackend, leaseID string, reqs []ratelimiter.Requirement, now time.Time) ratelimiter.ReserveResponse {
	t.Helper()
	res := reserve(t, backend, leaseID, reqs, now)
	if res.Allowed {
		t.Fatalf("expected deny for %s", leaseID)
	}
	return res
}

func complete(t *testing.T, backend *MemoryBackend, leaseID string, actuals []ratelimiter.Actual) {
	t.Helper()
	ctx := testutil.Context(t, time.Second)
	if _, err := backend.Complete(ctx, ratelimiter.CompleteRequest{LeaseID: leaseID, Actuals: actuals}); err != nil {
		t.Fatalf("complete: %v", err)
	}
}

func req(key string, amount uint64) []ratelimiter.Requirement {
	return []ratelimiter.Requirement{{Key: ratelimiter.LimitKey(key), Amount: amount}}
}

func multiReq(reqs ...[]ratelimiter.Requirement) []ratelimiter.Requirement {
	var out []ratelimiter.Requirement
	for _, r := range reqs {
		out = append(out, r...)
	}
	return out
}

func rollingDef(key string, capacity uint64, window int) ratelimiter.LimitDefinition {
	return ratelimiter.LimitDefinition{
		Key:           ratelimiter.LimitKey(key),
		Kind:          ratelimiter.KindRolling,
		Capacity:      capacity,
		WindowSeconds: window,
	}
}

func concDef(key string, capacity uint64, timeout int) ratelimiter.LimitDefinition {
	return ratelimiter.LimitDefinition{
		Key:            ratelimiter.LimitKey(key),
		Kind:           ratelimiter.KindConcurrency,
		Capacity:       capacity,
		TimeoutSeconds: timeout,
	}
}
