package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"lexeval/internal/index"
	"lexeval/internal/report"
	"lexeval/internal/runner"
	"lexeval/internal/ui/live"
)

// phaseFlags are shared by run, generate and judge.
type phaseFlags struct {
	concurrency int
}

func (f *phaseFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "Concurrent workers per model (default: config concurrency)")
}

func (a *app) phaseOptions(p *project, flags phaseFlags) (runner.Options, error) {
	concurrency := p.cfg.Concurrency
	if flags.concurrency < 0 {
		return runner.Options{}, usageErrorf("--concurrency must be >= 0")
	}
	if flags.concurrency > 0 {
		concurrency = flags.concurrency
	}
	return runner.Options{
		Concurrency:   concurrency,
		Verbose:       a.verbose,
		VerboseWriter: a.stderr,
		NoColor:       a.noColor,
	}, nil
}

// failedCalls turns counted model call failures into a command error.
func failedCalls(errors int) error {
	if errors == 0 {
		return nil
	}
	return fmt.Errorf("%d model calls failed; rerun to retry them", errors)
}

func newRunCmd(a *app) *cobra.Command {
	var (
		flags    phaseFlags
		uiMode   string
		noReport bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate responses, judge them and write the summary",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			decision, err := resolveUIMode(uiMode, a.verbose, a.stdout)
			if err != nil {
				return &usageError{err: err}
			}
			if decision.warning != "" {
				fmt.Fprintln(a.stderr, decision.warning)
			}
			p, err := a.loadProject()
			if err != nil {
				return err
			}
			opts, err := a.phaseOptions(p, flags)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			candidate, err := a.candidate(ctx, p)
			if err != nil {
				return err
			}
			j, err := a.judge(ctx, p)
			if err != nil {
				return err
			}
			st := p.store()
			deps := runner.Dependencies{
				Store:     st,
				Candidate: candidate,
				Judge:     j,
				Logger:    a.log(),
			}
			if p.cfg.Index.Path != "" {
				db, err := index.Open(ctx, p.path(p.cfg.Index.Path))
				if err != nil {
					return err
				}
				defer closeDB(db)
				idx, err := index.New(db, st, p.suite.Vocabulary)
				if err != nil {
					return err
				}
				deps.Indexer = idx
			}
			params := runner.RunParams{
				Options:     opts,
				SummaryPath: p.path(p.cfg.Output.SummaryPath),
			}
			if !noReport {
				params.ReportPath = p.path(p.cfg.Output.ReportPath)
			}

			var controller *live.Controller
			if decision.useLive {
				controller = live.Start(a.stdout, live.Options{NoColor: a.noColor, OnInterrupt: cancel})
				deps.Observer = controller
			} else {
				deps.Observer = runner.NewProgressObserver(a.stdout, a.noColor)
			}
			result, err := runner.Run(ctx, p.suite, deps, params)
			if controller != nil {
				controller.Close()
				controller.Wait()
			}
			if err != nil {
				return fmt.Errorf("run failed: %w", err)
			}

			if err := report.RenderTable(a.stdout, result.Summary, p.suite.Models, a.noColor); err != nil {
				return err
			}
			if controller != nil {
				fmt.Fprintf(a.stdout, "Summary: %s\n", result.SummaryPath)
				if result.ReportPath != "" {
					fmt.Fprintf(a.stdout, "Report: %s\n", result.ReportPath)
				}
			}
			return failedCalls(result.Errors())
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&uiMode, "ui", "auto", "Console UI mode: auto|live|plain")
	cmd.Flags().BoolVar(&noReport, "no-report", false, "Skip the HTML report")
	return cmd
}

func newGenerateCmd(a *app) *cobra.Command {
	var flags phaseFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Query candidate models for every missing response",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProject()
			if err != nil {
				return err
			}
			opts, err := a.phaseOptions(p, flags)
			if err != nil {
				return err
			}
			candidate, err := a.candidate(cmd.Context(), p)
			if err != nil {
				return err
			}
			stats, err := runner.Generate(cmd.Context(), p.suite, runner.Dependencies{
				Store:     p.store(),
				Candidate: candidate,
				Logger:    a.log(),
				Observer:  runner.NewProgressObserver(a.stdout, a.noColor),
			}, opts)
			if err != nil {
				return fmt.Errorf("generate failed: %w", err)
			}
			return failedCalls(runner.Result{Generation: stats}.Errors())
		},
	}
	flags.register(cmd)
	return cmd
}

func newJudgeCmd(a *app) *cobra.Command {
	var flags phaseFlags
	cmd := &cobra.Command{
		Use:   "judge",
		Short: "Score stored responses that have no verdict yet",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProject()
			if err != nil {
				return err
			}
			opts, err := a.phaseOptions(p, flags)
			if err != nil {
				return err
			}
			j, err := a.judge(cmd.Context(), p)
			if err != nil {
				return err
			}
			stats, err := runner.Judge(cmd.Context(), p.suite, runner.Dependencies{
				Store:    p.store(),
				Judge:    j,
				Logger:   a.log(),
				Observer: runner.NewProgressObserver(a.stdout, a.noColor),
			}, opts)
			if err != nil {
				return fmt.Errorf("judge failed: %w", err)
			}
			return failedCalls(runner.Result{Judgment: stats}.Errors())
		},
	}
	flags.register(cmd)
	return cmd
}

func closeDB(db *sql.DB) {
	_ = db.Close()
}
