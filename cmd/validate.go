package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/dataset"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check dataset files against the schema and scoring rules",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		for _, p := range args {
			ds, err := dataset.LoadFile(p)
			if err != nil {
				failed++
				fmt.Fprintf(out, "✗ %s\n", p)
				var verr *dataset.ValidationError
				if errors.As(err, &verr) && len(verr.Problems) > 0 {
					for _, problem := range verr.Problems {
						fmt.Fprintf(out, "    %s\n", problem)
					}
				} else {
					fmt.Fprintf(out, "    %v\n", err)
				}
				continue
			}
			fmt.Fprintf(out, "✓ %s (%s, %s, %d questions)\n", p, ds.ID, ds.Variant, ds.Total())
			for _, w := range ds.BandWarnings() {
				fmt.Fprintf(out, "    ! %s\n", w)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d datasets invalid", failed, len(args))
		}
		return nil
	},
}
