package cmd

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/dataset"
)

// version is set via -ldflags at build time. Without it the module
// version from the build info is used.
var version = ""

func resolvedVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the built-in datasets",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "quizbox", resolvedVersion())
		fmt.Fprintln(out, "built-in datasets:", strings.Join(dataset.BuiltinIDs(), ", "))
	},
}
