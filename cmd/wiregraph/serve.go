package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wiregraph/wiregraph/internal/graph"
	"github.com/wiregraph/wiregraph/internal/mcptools"
)

func newServeCmd() *cobra.Command {
	var (
		addr        string
		projectRoot string
		persistent  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the injection-graph tools over MCP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var store graph.Store
			if persistent {
				s, err := openIndex(projectRoot)
				if err != nil {
					return err
				}
				store = s
			} else {
				store = graph.NewMemStore()
			}
			defer store.Close()

			svc := mcptools.NewGraphService(store)
			slog.Info("serving MCP", "addr", addr)
			return mcptools.RunMCPServer(cmd.Context(), svc, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8391", "HTTP listen address")
	cmd.Flags().StringVar(&projectRoot, "project-root", ".", "path to the TypeScript project")
	cmd.Flags().BoolVar(&persistent, "persistent", false, "serve from the saved graph index instead of memory")

	return cmd
}
