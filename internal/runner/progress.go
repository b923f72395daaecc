package runner

import (
	"fmt"
	"io"
	"sync"
)

// ProgressObserver prints one line per finished phase and model.
type ProgressObserver struct {
	mu      sync.Mutex
	w       io.Writer
	noColor bool
}

// NewProgressObserver writes plain progress lines to w.
func NewProgressObserver(w io.Writer, noColor bool) *ProgressObserver {
	return &ProgressObserver{w: w, noColor: noColor}
}

func (o *ProgressObserver) OnRunStart(runID string, models []string, words int) {
	o.printf(styleDefault, "Run %s: %d models x %d words", runID, len(models), words)
}

func (o *ProgressObserver) OnPhaseStart(Phase, string, int) {}

func (o *ProgressObserver) OnItemEvent(ItemEvent) {}

func (o *ProgressObserver) OnPhaseEnd(stats PhaseStats) {
	style := styleMetrics
	if stats.Errors > 0 {
		style = styleError
	}
	switch stats.Phase {
	case PhaseJudge:
		o.printf(style, "judge %s: %d judged (%d correct, %d incorrect), %d skipped, %d errors",
			stats.Model, stats.Completed, stats.Correct, stats.Incorrect, stats.Skipped, stats.Errors)
	default:
		o.printf(style, "generate %s: %d new responses, %d skipped, %d empty, %d errors",
			stats.Model, stats.Completed, stats.Skipped, stats.Empty, stats.Errors)
	}
}

func (o *ProgressObserver) OnRunEnd(result Result) {
	if result.SummaryPath != "" {
		o.printf(styleDefault, "Summary: %s", result.SummaryPath)
	}
	if result.ReportPath != "" {
		o.printf(styleDefault, "Report: %s", result.ReportPath)
	}
}

func (o *ProgressObserver) printf(style verboseStyle, format string, args ...any) {
	if o == nil || o.w == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	palette := paletteFor(o.w, o.noColor)
	fmt.Fprintln(o.w, palette.apply(style, fmt.Sprintf(format, args...)))
}
