package runner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lexeval/internal/report"
	"lexeval/internal/suite"
)

// Summarize builds the accuracy summary from stored verdicts and writes it
// to summaryPath when set.
func Summarize(s suite.Suite, deps Dependencies, summaryPath string) (report.Summary, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("summary: store is required")
	}
	summary, err := report.Build(deps.Store, s.Models, s.Vocabulary)
	if err != nil {
		return nil, fmt.Errorf("build summary: %w", err)
	}
	if summaryPath != "" {
		if err := report.WriteSummary(summaryPath, summary, s.Models); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

// Run executes generation, then judgment, then the summary, the optional
// HTML report and the optional index ingest.
func Run(ctx context.Context, s suite.Suite, deps Dependencies, params RunParams) (result Result, err error) {
	deps = deps.withDefaults()
	runID, err := deps.RunID()
	if err != nil {
		return Result{}, fmt.Errorf("run id: %w", err)
	}
	result = Result{RunID: runID, StartedAt: deps.Now()}
	deps.Observer.OnRunStart(runID, s.Models, len(s.Vocabulary))
	logVerbose(params.Verbose, params.VerboseWriter, params.NoColor, stylePhase,
		"run %s models=%d words=%d", runID, len(s.Models), len(s.Vocabulary))
	deps.Logger.Info("run started",
		zap.String("run_id", runID),
		zap.Strings("models", s.Models),
		zap.Int("words", len(s.Vocabulary)),
	)
	defer func() {
		result.FinishedAt = deps.Now()
		deps.Observer.OnRunEnd(result)
		deps.Logger.Info("run finished",
			zap.String("run_id", runID),
			zap.Duration("elapsed", result.FinishedAt.Sub(result.StartedAt)),
			zap.Int("errors", result.Errors()),
			zap.Error(err),
		)
	}()

	result.Generation, err = Generate(ctx, s, deps, params.Options)
	if err != nil {
		return result, err
	}
	result.Judgment, err = Judge(ctx, s, deps, params.Options)
	if err != nil {
		return result, err
	}

	result.Summary, err = Summarize(s, deps, params.SummaryPath)
	if err != nil {
		return result, err
	}
	result.SummaryPath = params.SummaryPath
	if params.ReportPath != "" {
		if err = report.WriteHTML(ctx, params.ReportPath, result.Summary, s.Models); err != nil {
			return result, err
		}
		result.ReportPath = params.ReportPath
	}
	if deps.Indexer != nil {
		if err = deps.Indexer.Ingest(ctx, runID, s.Models, result.Summary); err != nil {
			return result, fmt.Errorf("index: %w", err)
		}
	}
	return result, nil
}
