package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/config"
	"github.com/abhisek/quizbox/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizbox",
	Short: "Terminal quizzes: personality profiles and timed tests",
	Long: "quizbox runs questionnaire datasets in the terminal. Profile datasets map answers\n" +
		"to a personality profile; scored datasets grade answers against a key under a time limit.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite result log (overrides QUIZBOX_DB)")
	rootCmd.PersistentFlags().String("export-dir", "", "Directory for exported result files (overrides QUIZBOX_EXPORT_DIR)")
	rootCmd.PersistentFlags().Bool("no-history", false, "Do not record results (overrides QUIZBOX_NO_HISTORY)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies flags on top. Flags have
// the highest priority.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if d, _ := cmd.Flags().GetString("export-dir"); d != "" {
		cfg.ExportDir = d
	}
	if cmd.Flags().Changed("no-history") {
		cfg.NoHistory, _ = cmd.Flags().GetBool("no-history")
	}
	return cfg, nil
}

// openStore opens the result log at the configured path.
func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
