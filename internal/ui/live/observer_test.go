package live

import (
	"testing"
	"time"

	"lexeval/internal/runner"
)

func TestControllerDeliversEveryTerminalEvent(t *testing.T) {
	runWithTimeout(t, 5*time.Second, func() {
		events := make(chan Event, eventBuffer)
		controller := newController(events)

		received := make(chan int)
		go func() {
			count := 0
			for range events {
				count++
				// A slow consumer forces the producer past the buffer size.
				if count%50 == 0 {
					time.Sleep(time.Millisecond)
				}
			}
			received <- count
		}()

		const items = 600
		start := time.Now()
		for i := 0; i < items; i++ {
			controller.OnItemEvent(event(i, runner.ItemSaved, "", start))
		}
		controller.OnPhaseEnd(runner.PhaseStats{Phase: runner.PhaseGenerate, Model: "llama3", Items: items, Completed: items})
		controller.Close()

		if got := <-received; got != items+1 {
			t.Fatalf("expected %d events, got %d", items+1, got)
		}
	})
}

func TestControllerDropsRunningUpdatesWhenFull(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		events := make(chan Event, 1)
		controller := newController(events)
		start := time.Now()
		controller.OnItemEvent(event(0, runner.ItemRunning, "", start))
		controller.OnItemEvent(event(1, runner.ItemRunning, "", start))
		if len(events) != 1 {
			t.Fatalf("expected one buffered event, got %d", len(events))
		}
	})
}

func TestControllerStopsBlockingAfterUIExit(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		events := make(chan Event, 1)
		controller := newController(events)
		close(controller.done)
		start := time.Now()
		controller.OnItemEvent(event(0, runner.ItemSaved, "", start))
		controller.OnItemEvent(event(1, runner.ItemSaved, "", start))
		controller.OnRunEnd(runner.Result{RunID: "run"})
	})
}
