package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lexeval/internal/index"
	"lexeval/internal/report"
	"lexeval/internal/runner"
)

func newIndexCmd(a *app) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Load stored records into a DuckDB index and cross-check accuracy",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProject()
			if err != nil {
				return err
			}
			path := dbPath
			if path == "" {
				path = p.cfg.Index.Path
			}
			if path == "" {
				return usageErrorf("no index path: set index.path in the config or pass --db")
			}
			path = p.path(path)

			ctx := cmd.Context()
			st := p.store()
			summary, err := report.Build(st, p.suite.Models, p.suite.Vocabulary)
			if err != nil {
				return err
			}
			runID, err := runner.NewRunID()
			if err != nil {
				return err
			}
			db, err := index.Open(ctx, path)
			if err != nil {
				return err
			}
			defer closeDB(db)
			idx, err := index.New(db, st, p.suite.Vocabulary)
			if err != nil {
				return err
			}
			if err := idx.Ingest(ctx, runID, p.suite.Models, summary); err != nil {
				return fmt.Errorf("index failed: %w", err)
			}
			indexed, err := idx.AccuracyByModel(ctx)
			if err != nil {
				return err
			}
			if err := report.RenderTable(a.stdout, indexed, p.suite.Models, a.noColor); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Indexed run %s into %s\n", runID, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "DuckDB file (default: index.path from the config)")
	return cmd
}
