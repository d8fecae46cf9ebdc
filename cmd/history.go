package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		datasetID, _ := cmd.Flags().GetString("dataset")
		keep, _ := cmd.Flags().GetInt("prune")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		out := cmd.OutOrStdout()

		if cmd.Flags().Changed("prune") {
			if keep < 0 {
				return fmt.Errorf("--prune must not be negative")
			}
			if err := s.Results().Prune(ctx, keep); err != nil {
				return err
			}
			fmt.Fprintf(out, "Kept the %d most recent results.\n\n", keep)
		}

		results, err := s.Results().Query(ctx, store.QueryOpts{Limit: limit, DatasetID: datasetID})
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}

		if len(results) == 0 {
			fmt.Fprintln(out, "No results found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-16s  %-14s  %-16s  %-7s  %s\n",
			"#", "Completed", "Dataset", "Name", "Score", "Result")
		fmt.Fprintln(out, strings.Repeat("─", 90))

		for _, r := range results {
			name := r.Name
			if name == "" {
				name = "-"
			}
			if len(name) > 16 {
				name = name[:13] + "..."
			}
			headline := r.Headline
			if r.FinishedByTimeout {
				headline += " (timeout)"
			}
			fmt.Fprintf(out, "%-5d  %-16s  %-14s  %-16s  %-7s  %s\n",
				r.Sequence, r.CompletedAt.Local().Format("2006-01-02 15:04"), r.DatasetID, name,
				fmt.Sprintf("%d/%d", r.Score, r.Total), headline)
		}

		total, err := s.Results().Count(ctx, datasetID)
		if err != nil {
			return fmt.Errorf("count results: %w", err)
		}
		fmt.Fprintf(out, "\n%d of %d results\n", len(results), total)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of results to show (0 = all)")
	historyCmd.Flags().String("dataset", "", "Only show results for this dataset id")
	historyCmd.Flags().Int("prune", 0, "Delete all but the N most recent results before listing")
}
