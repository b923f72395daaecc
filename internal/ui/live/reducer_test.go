package live

import (
	"strings"
	"testing"
	"time"

	"lexeval/internal/runner"
	"lexeval/internal/suite"
	"lexeval/internal/testutil"
)

// TestReduceItemLifecycle verifies core status transitions are recorded.
func TestReduceItemLifecycle(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		start := time.Now()
		state := State{}
		state = Reduce(state, event(0, runner.ItemQueued, "", start))
		state = Reduce(state, event(0, runner.ItemRunning, "", start))
		if state.Counts.Running != 1 {
			t.Fatalf("expected running count, got %d", state.Counts.Running)
		}
		done := event(0, runner.ItemCorrect, "", start.Add(150*time.Millisecond))
		done.WallTime = 150 * time.Millisecond
		state = Reduce(state, done)

		row := state.Rows[0]
		if row.Status != runner.ItemCorrect {
			t.Fatalf("expected correct status, got %s", row.Status)
		}
		if row.WallTime != 150*time.Millisecond {
			t.Fatalf("expected wall time to be set, got %s", row.WallTime)
		}
		if state.Counts.Correct != 1 || state.Counts.Done != 1 {
			t.Fatalf("unexpected counts: %+v", state.Counts)
		}
		if state.LastEvent != "gato/a judged correct" {
			t.Fatalf("unexpected last event %q", state.LastEvent)
		}
	})
}

// TestReduceGrowsRows verifies out-of-order indexes fill queued rows.
func TestReduceGrowsRows(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		state := Reduce(State{}, event(3, runner.ItemSaved, "", time.Now()))
		if len(state.Rows) != 4 {
			t.Fatalf("expected 4 rows, got %d", len(state.Rows))
		}
		if state.Counts.Queued != 3 || state.Counts.Saved != 1 {
			t.Fatalf("unexpected counts: %+v", state.Counts)
		}
	})
}

// TestReduceTerminalErrors verifies error handling.
func TestReduceTerminalErrors(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		state := State{}
		state = Reduce(state, event(0, runner.ItemError, "upstream failure", time.Now()))
		if state.Rows[0].Error != "upstream failure" {
			t.Fatalf("expected error to be recorded")
		}
		if !strings.Contains(state.LastEvent, "upstream failure") {
			t.Fatalf("expected error in footer, got %q", state.LastEvent)
		}
		state = Reduce(state, event(1, runner.ItemEmpty, "", time.Now()))
		if state.Counts.Errors != 1 || state.Counts.Empty != 1 {
			t.Fatalf("unexpected counts: %+v", state.Counts)
		}
	})
}

// TestApplyEventResetsOnPhaseStart verifies rows are scoped to a phase.
func TestApplyEventResetsOnPhaseStart(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		model := NewModel(nil, Options{NoColor: true})
		model = applyEvent(model, Event{Kind: EventRunStart, RunID: "run-1", Models: []string{"llama3"}, Words: 1})
		model = applyEvent(model, Event{Kind: EventPhaseStart, Phase: runner.PhaseGenerate, Model: "llama3", Items: 2})
		item := event(0, runner.ItemSaved, "", time.Now())
		model = applyEvent(model, Event{Kind: EventItem, Item: item})
		if len(model.State().Rows) != 1 {
			t.Fatalf("expected one row, got %d", len(model.State().Rows))
		}

		stale := item
		stale.Phase = runner.PhaseJudge
		model = applyEvent(model, Event{Kind: EventItem, Item: stale})
		if model.State().Rows[0].Status != runner.ItemSaved {
			t.Fatalf("expected events from another phase to be ignored")
		}

		model = applyEvent(model, Event{Kind: EventPhaseStart, Phase: runner.PhaseJudge, Model: "llama3", Items: 2})
		if len(model.State().Rows) != 0 {
			t.Fatalf("expected rows reset on phase start")
		}
		view := model.View()
		for _, want := range []string{"Run run-1", "Phase judge | llama3 (1/1)", "Correct: 0"} {
			if !strings.Contains(view, want) {
				t.Fatalf("expected view to contain %q, got:\n%s", want, view)
			}
		}
	})
}

// event builds an ItemEvent for testing.
func event(index int, kind runner.ItemEventType, errMsg string, when time.Time) runner.ItemEvent {
	return runner.ItemEvent{
		Phase:     runner.PhaseGenerate,
		Model:     "llama3",
		Index:     index,
		Word:      "gato",
		Variant:   suite.VariantA,
		Type:      kind,
		Error:     errMsg,
		EmittedAt: when,
	}
}

// runWithTimeout executes a test body with a timeout.
func runWithTimeout(t *testing.T, timeout time.Duration, fn func()) {
	t.Helper()
	ctx := testutil.Context(t, timeout)
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatalf("test timed out")
	}
}
