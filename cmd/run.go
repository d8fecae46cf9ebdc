package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/app"
	"github.com/abhisek/quizbox/internal/dataset"
	"github.com/abhisek/quizbox/internal/export"
	"github.com/abhisek/quizbox/internal/screens/play"
)

// runApp opens the store, builds dependencies, and launches the TUI. ref
// names a dataset to open directly; empty falls back to QUIZBOX_DATASET.
func runApp(cmd *cobra.Command, ref string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	datasets, err := dataset.Builtins()
	if err != nil {
		return fmt.Errorf("load datasets: %w", err)
	}

	opts := app.Options{
		Datasets: datasets,
		Sinks: play.Sinks{
			Files:   export.FileSink{Dir: cfg.ExportDir},
			History: export.Discard{},
		},
	}

	if ref == "" {
		ref = cfg.Dataset
	}
	if ref != "" {
		ds, err := dataset.Resolve(ref)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		opts.Initial = ds
		if !hasDataset(datasets, ds.ID) {
			opts.Datasets = append(opts.Datasets, ds)
		}
	}

	if cfg.NoHistory {
		fmt.Fprintln(os.Stderr, "History disabled; results will not be recorded.")
	} else {
		st, err := openStore(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Result log unavailable:", err)
			fmt.Fprintln(os.Stderr, "History will be disabled.")
		} else {
			defer st.Close()
			opts.Results = st.Results()
			opts.Sinks.History = export.StoreSink{Repo: st.Results(), Keep: cfg.HistoryKeep}
		}
	}

	return app.Run(opts)
}

func hasDataset(all []*dataset.Dataset, id string) bool {
	for _, ds := range all {
		if ds.ID == id {
			return true
		}
	}
	return false
}
