package runner

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lexeval/internal/suite"
)

// entryWork processes every variant of one vocabulary entry. Returning an
// error aborts the phase; model call failures are reported as events instead.
type entryWork func(ctx context.Context, p *phaseRun, index int, entry suite.Entry) error

// phaseRun tracks one phase for one model.
type phaseRun struct {
	phase   Phase
	model   string
	deps    Dependencies
	opts    Options
	verbose io.Writer

	mu    sync.Mutex
	stats PhaseStats
}

// itemIndex flattens (entry, variant) into a row index.
func itemIndex(entryIndex, variantIndex int) int {
	return entryIndex*len(suite.Variants) + variantIndex
}

func (p *phaseRun) emit(index int, entry suite.Entry, variant suite.Variant, eventType ItemEventType, reason string, err error, wall time.Duration) {
	event := ItemEvent{
		Phase:     p.phase,
		Model:     p.model,
		Index:     index,
		Word:      entry.Word,
		Variant:   variant,
		Type:      eventType,
		Reason:    reason,
		WallTime:  wall,
		EmittedAt: p.deps.Now(),
	}
	if err != nil {
		event.Error = err.Error()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats.add(eventType)
	p.deps.Observer.OnItemEvent(event)
	if eventType == ItemError {
		logVerbose(p.opts.Verbose, p.verbose, p.opts.NoColor, styleError,
			"%s model=%s word=%s variant=%s error=%s", p.phase, p.model, entry.Word, variant, event.Error)
	}
}

// runPhase fans entries out to at most opts.Concurrency workers. Each entry
// owns its record file for the duration of its work.
func runPhase(ctx context.Context, phase Phase, model string, entries []suite.Entry, deps Dependencies, opts Options, work entryWork) (PhaseStats, error) {
	workers := opts.Concurrency
	if workers < 1 {
		workers = 1
	}
	p := &phaseRun{
		phase:   phase,
		model:   model,
		deps:    deps,
		opts:    opts,
		verbose: wrapVerboseWriter(workers, opts.VerboseWriter),
		stats: PhaseStats{
			Phase: phase,
			Model: model,
			Items: len(entries) * len(suite.Variants),
		},
	}

	deps.Observer.OnPhaseStart(phase, model, p.stats.Items)
	logVerbose(opts.Verbose, p.verbose, opts.NoColor, stylePhase,
		"%s model=%s words=%d workers=%d", phase, model, len(entries), workers)
	deps.Logger.Info("phase started",
		zap.String("phase", string(phase)),
		zap.String("model", model),
		zap.Int("words", len(entries)),
		zap.Int("workers", workers),
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for index, entry := range entries {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			if err := work(groupCtx, p, index, entry); err != nil {
				return fmt.Errorf("%s %s/%s: %w", phase, model, entry.Word, err)
			}
			return nil
		})
	}
	err := group.Wait()
	if err == nil {
		err = ctx.Err()
	}

	p.mu.Lock()
	stats := p.stats
	p.mu.Unlock()
	deps.Observer.OnPhaseEnd(stats)
	logVerbose(opts.Verbose, p.verbose, opts.NoColor, styleMetrics,
		"%s model=%s completed=%d skipped=%d empty=%d errors=%d correct=%d incorrect=%d",
		phase, model, stats.Completed, stats.Skipped, stats.Empty, stats.Errors, stats.Correct, stats.Incorrect)
	deps.Logger.Info("phase finished",
		zap.String("phase", string(phase)),
		zap.String("model", model),
		zap.Int("completed", stats.Completed),
		zap.Int("skipped", stats.Skipped),
		zap.Int("empty", stats.Empty),
		zap.Int("errors", stats.Errors),
		zap.Error(err),
	)
	return stats, err
}
