package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/dataset"
	"github.com/abhisek/quizbox/internal/quiz"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List the built-in datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := dataset.Builtins()
		if err != nil {
			return fmt.Errorf("load datasets: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-16s  %-8s  %9s  %6s  %s\n", "ID", "Variant", "Questions", "Time", "Title")
		fmt.Fprintln(out, strings.Repeat("─", 72))

		for _, ds := range all {
			limit := "-"
			if ds.Timed() {
				limit = quiz.FormatClock(ds.TimeLimitSec)
			}
			fmt.Fprintf(out, "%-16s  %-8s  %9d  %6s  %s\n",
				ds.ID, ds.Variant, ds.Total(), limit, ds.Title)
		}

		fmt.Fprintf(out, "\n%d datasets\n", len(all))
		return nil
	},
}
