package memory

import (
	"testing"
	"time"

	"lexeval/internal/testutil"
	"lexeval/pkg/ratelimiter"
)

func TestRollingAllowThenDeny(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(0, 0))
	backend := New(clock)
	applyDefs(t, backend, rollingDef("k1", 2, 10))

	allowReserve(t, backend, "L1", req("k1", 1), clock.Now())
	allowReserve(t, backend, "L2", req("k1", 1), clock.Now())
	res := denyReserve(t, backend, "L3", req("k1", 1), clock.Now())
	if res.RetryAfterMs <= 0 {
		t.Fatalf("expected retry_after_ms > 0, got %+v", res)
	}
	if res.Error != "" {
		t.Fatalf("expected temporary denial, got error %q", res.Error)
	}
}

func TestRollingRetryAfterTracksOldestReservation(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(0, 0))
	backend := New(clock)
	applyDefs(t, backend, rollingDef("k1", 1, 10))

	allowReserve(t, backend, "L1", req("k1", 1), clock.Now())
	clock.Advance(7 * time.Second)
	res := denyReserve(t, backend, "L2", req("k1", 1), clock.Now())
	if res.RetryAfterMs != 3000 {
		t.Fatalf("retry after = %d, want 3000", res.RetryAfterMs)
	}
}

func TestRollingExpiryReleasesCapacity(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(0, 0))
	backend := New(clock)
	applyDefs(t, backend, rollingDef("k1", 1, 10))

	allowReserve(t, backend, "L1", req("k1", 1), clock.Now())
	clock.Advance(11 * time.Second)
	allowReserve(t, backend, "L2", req("k1", 1), clock.Now())
}

func TestReserveIsAllOrNothing(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(0, 0))
	backend := New(clock)
	applyDefs(t, backend, rollingDef("k1", 1, 10), rollingDef("k2", 1, 10))

	allowReserve(t, backend, "L0", req("k2", 1), clock.Now())
	denyReserve(t, backend, "L1", multiReq(req("k1", 1), req("k2", 1)), clock.Now())
	allowReserve(t, backend, "L2", req("k1", 1), clock.Now())
}

func TestCompleteReturnsUnusedTokens(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(0, 0))
	backend := New(clock)
	applyDefs(t, backend, rollingDef("k1", 100, 10))

	allowReserve(t, backend, "L1", req("k1", 100), clock.Now())
	complete(t, backend, "L1", []ratelimiter.Actual{{Key: "k1", ActualAmount: 10}})
	allowReserve(t, backend, "L2", req("k1", 90), clock.Now())
	denyReserve(t, backend, "L3", req("k1", 1), clock.Now())
}

func TestOversizedRequestRunsAlone(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(0, 0))
	backend := New(clock)
	applyDefs(t, backend, rollingDef("k1", 100, 10))

	allowReserve(t, backend, "L1", req("k1", 500), clock.Now())
	denyReserve(t, backend, "L2", req("k1", 1), clock.Now())
	clock.Advance(10 * time.Second)
	allowReserve(t, backend, "L3", req("k1", 500), clock.Now())
}

func TestUnknownKeysAreUnlimited(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(0, 0))
	backend := New(clock)
	applyDefs(t, backend, rollingDef("k1", 1, 10))

	for _, lease := range []string{"L1", "L2", "L3"} {
		allowReserve(t, backend, lease, req("other", 1000), clock.Now())
	}
	allowReserve(t, backend, "L4", multiReq(req("k1", 1), req("other", 1)), clock.Now())
	denyReserve(t, backend, "L5", multiReq(req("k1", 1), req("other", 1)), clock.Now())
}

func TestReserveSameLeaseIsIdempotent(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(0, 0))
	backend := New(clock)
	applyDefs(t, backend, rollingDef("k1", 1, 10))

	allowReserve(t, backend, "L1", req("k1", 1), clock.Now())
	allowReserve(t, backend, "L1", req("k1", 1), clock.Now())
	res := denyReserve(t, backend, "L1", req("k1", 2), clock.Now())
	if res.Error != invalidRequestError {
		t.Fatalf("error = %q, want %q", res.Error, invalidRequestError)
	}
}

func TestReserveRejectsEmptyLease(t *testing.T) {
	backend := New(nil)
	res := denyReserve(t, backend, "", req("k1", 1), time.Time{})
	if res.Error != invalidRequestError || res.RetryAfterMs != 0 {
		t.Fatalf("expected final invalid_request, got %+v", res)
	}
}

func TestApplyDefinitionValidates(t *testing.T) {
	backend := New(nil)
	ctx := testutil.Context(t, time.Second)
	bad := []ratelimiter.LimitDefinition{
		{Key: "", Kind: ratelimiter.KindRolling, Capacity: 1, WindowSeconds: 1},
		{Key: "k", Kind: ratelimiter.KindRolling, Capacity: 0, WindowSeconds: 1},
		{Key: "k", Kind: ratelimiter.KindRolling, Capacity: 1},
		{Key: "k", Kind: "bucket", Capacity: 1},
	}
	for _, def := range bad {
		if err := backend.ApplyDefinition(ctx, def); err == nil {
			t.Fatalf("expected error for %+v", def)
		}
	}
	applyDefs(t, backend, rollingDef("k", 1, 10))
	if err := backend.ApplyDefinition(ctx, concDef("k", 1, 10)); err == nil {
		t.Fatalf("expected kind change to fail")
	}
	if got := len(backend.Definitions()); got != 1 {
		t.Fatalf("definitions = %d, want 1", got)
	}
}

func TestApplyDefinitionRaisesCapacity(t *testing.T) {
	clock := testutil.NewFakeClock(time.Unix(0, 0))
	backend := New(clock)
	applyDefs(t, backend, rollingDef("k1", 1, 10))

	allowReserve(t, backend, "L1", req("k1", 1), clock.Now())
	denyReserve(t, backend, "L2", req("k1", 1), clock.Now())
	applyDefs(t, backend, rollingDef("k1", 2, 10))
	allowReserve(t, backend, "L3", req("k1", 1), clock.Now())
}
