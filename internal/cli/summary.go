package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lexeval/internal/report"
	"lexeval/internal/runner"
)

func newSummaryCmd(a *app) *cobra.Command {
	var noReport bool
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate stored verdicts into summary.json and a table",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProject()
			if err != nil {
				return err
			}
			summaryPath := p.path(p.cfg.Output.SummaryPath)
			summary, err := runner.Summarize(p.suite, runner.Dependencies{Store: p.store()}, summaryPath)
			if err != nil {
				return err
			}
			if err := report.RenderTable(a.stdout, summary, p.suite.Models, a.noColor); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Summary: %s\n", summaryPath)
			if reportPath := p.cfg.Output.ReportPath; reportPath != "" && !noReport {
				reportPath = p.path(reportPath)
				if err := report.WriteHTML(cmd.Context(), reportPath, summary, p.suite.Models); err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "Report: %s\n", reportPath)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noReport, "no-report", false, "Skip the HTML report")
	return cmd
}
