package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// indexDirName is the directory under the project root where the persistent
// graph index lives.
const indexDirName = ".wiregraph"

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "wiregraph",
		Short: "Reconstruct the dependency-injection graph of a decorator-annotated TypeScript project",
		Long: `wiregraph analyzes an Angular-style TypeScript source tree, determines
which injection tokens each decorated class requests in its constructor,
and assembles the result into a dependency graph with cycle detection and
directional sub-graph extraction.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the wiregraph version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version)
		},
	}
}
