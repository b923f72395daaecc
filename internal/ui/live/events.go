package live

import "lexeval/internal/runner"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventPhaseStart signals that a phase begins for one model.
	EventPhaseStart
	// EventItem delivers an item status update.
	EventItem
	// EventPhaseEnd signals phase completion for one model.
	EventPhaseEnd
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind   EventKind
	RunID  string
	Models []string
	Words  int
	Phase  runner.Phase
	Model  string
	Items  int
	Item   runner.ItemEvent
	Stats  runner.PhaseStats
}
