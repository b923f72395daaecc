package runner

import (
	"time"

	"lexeval/internal/suite"
)

// Phase names a stage of an evaluation run.
type Phase string

const (
	// PhaseGenerate queries candidate models.
	PhaseGenerate Phase = "generate"
	// PhaseJudge scores stored responses.
	PhaseJudge Phase = "judge"
)

// ItemEventType identifies a status update for one (word, variant) item.
type ItemEventType string

const (
	// ItemQueued marks an item known but not yet started.
	ItemQueued ItemEventType = "queued"
	// ItemRunning marks an active model call.
	ItemRunning ItemEventType = "running"
	// ItemSaved marks a response persisted by the generator.
	ItemSaved ItemEventType = "saved"
	// ItemEmpty marks an empty completion that was not persisted.
	ItemEmpty ItemEventType = "empty"
	// ItemCorrect marks a correct verdict.
	ItemCorrect ItemEventType = "correct"
	// ItemIncorrect marks an incorrect verdict.
	ItemIncorrect ItemEventType = "incorrect"
	// ItemSkipped marks an item already done, or with nothing to judge.
	ItemSkipped ItemEventType = "skipped"
	// ItemError marks a failed model call.
	ItemError ItemEventType = "error"
)

// IsTerminal reports whether the event type ends an item.
func (t ItemEventType) IsTerminal() bool {
	switch t {
	case ItemSaved, ItemEmpty, ItemCorrect, ItemIncorrect, ItemSkipped, ItemError:
		return true
	default:
		return false
	}
}

// ItemEvent carries a single status update.
type ItemEvent struct {
	Phase     Phase
	Model     string
	Index     int
	Word      string
	Variant   suite.Variant
	Type      ItemEventType
	Reason    string
	Error     string
	WallTime  time.Duration
	EmittedAt time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run.
	OnRunStart(runID string, models []string, words int)
	// OnPhaseStart signals that a phase begins for one model.
	OnPhaseStart(phase Phase, model string, items int)
	// OnItemEvent delivers an item status update.
	OnItemEvent(event ItemEvent)
	// OnPhaseEnd signals that a phase finished for one model.
	OnPhaseEnd(stats PhaseStats)
	// OnRunEnd signals run completion.
	OnRunEnd(result Result)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) OnRunStart(string, []string, int) {}
func (NopObserver) OnPhaseStart(Phase, string, int)  {}
func (NopObserver) OnItemEvent(ItemEvent)            {}
func (NopObserver) OnPhaseEnd(PhaseStats)            {}
func (NopObserver) OnRunEnd(Result)                  {}

// MultiObserver fans events out to several observers in order.
type MultiObserver []RunObserver

func (m MultiObserver) OnRunStart(runID string, models []string, words int) {
	for _, observer := range m {
		observer.OnRunStart(runID, models, words)
	}
}

func (m MultiObserver) OnPhaseStart(phase Phase, model string, items int) {
	for _, observer := range m {
		observer.OnPhaseStart(phase, model, items)
	}
}

func (m MultiObserver) OnItemEvent(event ItemEvent) {
	for _, observer := range m {
		observer.OnItemEvent(event)
	}
}

func (m MultiObserver) OnPhaseEnd(stats PhaseStats) {
	for _, observer := range m {
		observer.OnPhaseEnd(stats)
	}
}

func (m MultiObserver) OnRunEnd(result Result) {
	for _, observer := range m {
		observer.OnRunEnd(result)
	}
}
