package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <dataset>",
	Short: "Start a test straight away",
	Long: "Start a test straight away. <dataset> is a built-in id (see `quizbox datasets`)\n" +
		"or the path to a dataset JSON file.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args[0])
	},
}
