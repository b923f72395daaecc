package live

import (
	"fmt"

	"lexeval/internal/runner"
)

// Reduce applies an item event to the UI state.
func Reduce(state State, event runner.ItemEvent) State {
	state = ensureRow(state, event)
	state = applyItemEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, event runner.ItemEvent) State {
	if event.Index < 0 {
		return state
	}
	if event.Index < len(state.Rows) {
		return state
	}
	rows := make([]ItemRow, event.Index+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = ItemRow{Index: i, Status: runner.ItemQueued}
	}
	state.Rows = rows
	return state
}

// applyItemEvent updates a row with the given event.
func applyItemEvent(state State, event runner.ItemEvent) State {
	if event.Index < 0 || event.Index >= len(state.Rows) {
		return state
	}
	row := state.Rows[event.Index]
	if row.Word == "" {
		row.Word = event.Word
	}
	if row.Variant == "" {
		row.Variant = event.Variant
	}
	row.Status = event.Type
	if event.Type == runner.ItemRunning && row.StartedAt.IsZero() {
		row.StartedAt = event.EmittedAt
	}
	if event.Type.IsTerminal() {
		if !event.EmittedAt.IsZero() {
			row.FinishedAt = event.EmittedAt
		}
		row.WallTime = event.WallTime
		row.Reason = event.Reason
		row.Error = event.Error
	}
	state.Rows[event.Index] = row
	return state
}

// recount recomputes status counts for the current rows.
func recount(rows []ItemRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.ItemQueued:
			counts.Queued++
		case runner.ItemRunning:
			counts.Running++
		case runner.ItemSaved:
			counts.Done++
			counts.Saved++
		case runner.ItemEmpty:
			counts.Done++
			counts.Empty++
		case runner.ItemCorrect:
			counts.Done++
			counts.Correct++
		case runner.ItemIncorrect:
			counts.Done++
			counts.Incorrect++
		case runner.ItemSkipped:
			counts.Done++
			counts.Skipped++
		case runner.ItemError:
			counts.Done++
			counts.Errors++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.ItemEvent) string {
	label := fmt.Sprintf("%s/%s", event.Word, event.Variant)
	switch event.Type {
	case runner.ItemError:
		return fmt.Sprintf("%s error: %s", label, event.Error)
	case runner.ItemEmpty:
		return fmt.Sprintf("%s empty completion", label)
	case runner.ItemSaved:
		return fmt.Sprintf("%s saved (%s)", label, formatDuration(event.WallTime))
	case runner.ItemCorrect, runner.ItemIncorrect:
		return fmt.Sprintf("%s judged %s", label, event.Type)
	}
	return ""
}
