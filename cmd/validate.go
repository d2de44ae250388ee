package cmd

import (
	"fmt"

	"github.com/abhisek/quizme/internal/source"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a question file without starting a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := source.Load(args[0])
			if err != nil {
				return fmt.Errorf("load questions: %w", err)
			}
			reportDiagnostics(cmd.ErrOrStderr(), bank.Diagnostics)

			counts := map[string]int{}
			for _, q := range bank.Questions {
				counts[string(q.Kind())]++
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d questions loaded, %d skipped\n", len(bank.Questions), len(bank.Diagnostics))
			for _, kind := range []string{"shortanswer", "truefalse"} {
				if counts[kind] > 0 {
					fmt.Fprintf(out, "  %s: %d\n", kind, counts[kind])
				}
			}
			return nil
		},
	}
}
