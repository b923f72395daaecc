package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the config and the suite files",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadProject()
			if err != nil {
				return fmt.Errorf("validation failed:\n%w", err)
			}
			fmt.Fprintf(a.stdout, "Config OK: %d models, %d words\n", len(p.suite.Models), len(p.suite.Vocabulary))
			return nil
		},
	}
}
