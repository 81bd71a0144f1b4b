package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wiregraph/wiregraph/internal/export"
)

func newDiagramCmd() *cobra.Command {
	var projectRoot string

	cmd := &cobra.Command{
		Use:   "diagram",
		Short: "Render a Mermaid diagram from a saved graph index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openIndex(projectRoot)
			if err != nil {
				return err
			}
			defer store.Close()

			g, err := store.LoadGraph(cmd.Context())
			if err != nil {
				return fmt.Errorf("load graph: %w", err)
			}

			fmt.Print(export.Mermaid(g))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRoot, "project-root", ".", "path to the TypeScript project")

	return cmd
}
