package live

import (
	"time"

	"lexeval/internal/runner"
	"lexeval/internal/suite"
)

// ItemRow holds UI state for a single (word, variant) item.
type ItemRow struct {
	Index      int
	Word       string
	Variant    suite.Variant
	Status     runner.ItemEventType
	Reason     string
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
	WallTime   time.Duration
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued    int
	Running   int
	Done      int
	Saved     int
	Empty     int
	Correct   int
	Incorrect int
	Skipped   int
	Errors    int
}

// State captures the live UI state for the current phase.
type State struct {
	RunID     string
	Models    []string
	Words     int
	Phase     runner.Phase
	Model     string
	Items     int
	StartedAt time.Time
	LastEvent string
	Rows      []ItemRow
	Counts    StatusCounts
	Finished  []runner.PhaseStats
}
