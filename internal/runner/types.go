package runner

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"lexeval/internal/judge"
	"lexeval/internal/provider"
	"lexeval/internal/report"
	"lexeval/internal/store"
)

// PhaseStats counts item outcomes for one phase and model.
type PhaseStats struct {
	Phase     Phase  `json:"phase"`
	Model     string `json:"model"`
	Items     int    `json:"items"`
	Completed int    `json:"completed"`
	Skipped   int    `json:"skipped"`
	Empty     int    `json:"empty"`
	Errors    int    `json:"errors"`
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
}

func (s *PhaseStats) add(eventType ItemEventType) {
	switch eventType {
	case ItemSaved:
		s.Completed++
	case ItemCorrect:
		s.Completed++
		s.Correct++
	case ItemIncorrect:
		s.Completed++
		s.Incorrect++
	case ItemSkipped:
		s.Skipped++
	case ItemEmpty:
		s.Empty++
	case ItemError:
		s.Errors++
	}
}

// Result summarises a full run.
type Result struct {
	RunID       string         `json:"run_id"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
	Generation  []PhaseStats   `json:"generation,omitempty"`
	Judgment    []PhaseStats   `json:"judgment,omitempty"`
	Summary     report.Summary `json:"summary,omitempty"`
	SummaryPath string         `json:"summary_path,omitempty"`
	ReportPath  string         `json:"report_path,omitempty"`
}

// Errors returns the total number of failed model calls.
func (r Result) Errors() int {
	total := 0
	for _, stats := range r.Generation {
		total += stats.Errors
	}
	for _, stats := range r.Judgment {
		total += stats.Errors
	}
	return total
}

// Indexer ingests stored records and the summary into a secondary store.
type Indexer interface {
	Ingest(ctx context.Context, runID string, models []string, summary report.Summary) error
}

// Dependencies wires the collaborators a run needs. Candidate is required
// for generation and Judge for judgment.
type Dependencies struct {
	Store     *store.Store
	Candidate provider.Completer
	Judge     *judge.Judge
	Indexer   Indexer
	Logger    *zap.Logger
	Observer  RunObserver
	RunID     func() (string, error)
	Now       func() time.Time
}

// Options tunes how phases execute.
type Options struct {
	Concurrency   int
	Verbose       bool
	VerboseWriter io.Writer
	NoColor       bool
}

// RunParams configures a full run.
type RunParams struct {
	Options
	// SummaryPath receives summary.json when set.
	SummaryPath string
	// ReportPath receives the HTML report when set.
	ReportPath string
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Observer == nil {
		d.Observer = NopObserver{}
	}
	if d.RunID == nil {
		d.RunID = NewRunID
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}
