package main

import (
	"os"
)

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	rootCmd := newRootCmd()
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newDiagramCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
