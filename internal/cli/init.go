package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lexeval/internal/config"
)

func newInitCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold .lexeval/config.yml and a sample suite",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := dir
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("init failed: %w", err)
				}
				root = wd
			}
			abs, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("init failed: %w", err)
			}
			if err := config.Scaffold(abs); err != nil {
				return fmt.Errorf("init failed: %w", err)
			}
			fmt.Fprintf(a.stdout, "Wrote %s\n", config.ConfigPath(abs))
			fmt.Fprintf(a.stdout, "Wrote %s\n", filepath.Join(abs, "suite"))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Project root (default: current directory)")
	return cmd
}
