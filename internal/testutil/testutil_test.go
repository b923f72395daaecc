package testutil

import (
	"context"
	"errors"
	"testing"
	"time"
)

// tbOnly hides the concrete *testing.T so Context sees a bare testing.TB.
type tbOnly struct {
	testing.TB
}

func TestContextUsesTimeoutWithoutDeadline(t *testing.T) {
	ctx := Context(tbOnly{t}, 2*time.Second)
	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatalf("expected context deadline")
	}
	if remaining := time.Until(deadline); remaining <= 0 || remaining > 2*time.Second {
		t.Fatalf("unexpected remaining time %v", remaining)
	}
}

func TestContextCancelledAtCleanup(t *testing.T) {
	var ctx context.Context
	t.Run("inner", func(t *testing.T) {
		ctx = Context(t, 0)
		if err := ctx.Err(); err != nil {
			t.Fatalf("context done early: %v", err)
		}
	})
	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Fatalf("expected cancellation after cleanup, got %v", ctx.Err())
	}
}
