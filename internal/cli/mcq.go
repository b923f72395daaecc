package cli

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"lexeval/internal/mcq"
)

func newMCQCmd(a *app) *cobra.Command {
	var (
		dictionary string
		output     string
		seed       int64
	)
	cmd := &cobra.Command{
		Use:   "mcq",
		Short: "Build a multiple-choice vocabulary from a dictionary dump",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dictionary == "" || output == "" {
				return usageErrorf("--dictionary and --output are required")
			}
			entries, err := mcq.LoadDictionary(dictionary)
			if err != nil {
				return err
			}
			existing, err := mcq.LoadExisting(output)
			if err != nil {
				return err
			}
			builder := mcq.NewBuilder(rand.New(rand.NewSource(seed)))
			built := builder.Build(entries, existing)
			if err := mcq.Write(output, built); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Wrote %d entries (%d new) to %s\n", len(built), len(built)-len(existing), output)
			return nil
		},
	}
	cmd.Flags().StringVar(&dictionary, "dictionary", "", "Dictionary JSON with word and definition fields")
	cmd.Flags().StringVar(&output, "output", "", "Vocabulary JSON to create or extend")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed for distractors and choice order")
	return cmd
}
