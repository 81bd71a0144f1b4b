package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/wiregraph/wiregraph/internal/analyze"
	"github.com/wiregraph/wiregraph/internal/config"
	"github.com/wiregraph/wiregraph/internal/diag"
	"github.com/wiregraph/wiregraph/internal/export"
	"github.com/wiregraph/wiregraph/internal/graph"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		projectRoot       string
		format            string
		output            string
		direction         string
		entries           []string
		includeDecorators bool
		excludeDirs       []string
		save              bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a project and emit its injection graph",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(projectRoot)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			// Flags override config file values when set explicitly.
			if !cmd.Flags().Changed("direction") && cfg.Direction != "" {
				direction = cfg.Direction
			}
			if !cmd.Flags().Changed("entry") && len(cfg.Entry) > 0 {
				entries = cfg.Entry
			}
			if !cmd.Flags().Changed("include-decorators") && cfg.IncludeDecorators != nil {
				includeDecorators = *cfg.IncludeDecorators
			}
			if !cmd.Flags().Changed("output") && cfg.Output != "" {
				output = cfg.Output
			}
			excludeDirs = append(excludeDirs, cfg.ExcludeDirs...)

			dir, err := parseDirection(direction)
			if err != nil {
				return err
			}

			dc := diag.NewCollector()
			opts := graph.Options{
				Direction:         dir,
				Entries:           entries,
				IncludeDecorators: includeDecorators,
			}

			start := time.Now()
			analyzer := analyze.NewAnalyzer()
			facts, err := analyzer.AnalyzeProject(cmd.Context(), projectRoot, excludeDirs, dc)
			if err != nil {
				return err
			}
			classes := graph.ResolveClasses(facts, dc)
			g := graph.Build(classes, opts, dc)
			slog.Debug("analysis complete",
				"classes", len(classes),
				"nodes", len(g.Nodes),
				"edges", len(g.Edges),
				"cycles", len(g.CircularDependencies),
				"warnings", dc.Count(),
				"elapsed", time.Since(start))

			for _, w := range dc.Warnings() {
				slog.Warn(w.Message, "category", string(w.Category), "file", w.File)
			}

			if save {
				if err := saveIndex(cmd.Context(), projectRoot, g); err != nil {
					return fmt.Errorf("save index: %w", err)
				}
			}

			var rendered []byte
			switch format {
			case "json":
				rendered, err = export.JSON(g, dc.Warnings())
				if err != nil {
					return err
				}
			case "mermaid":
				rendered = []byte(export.Mermaid(g))
			default:
				return fmt.Errorf("unknown format: %s (want json or mermaid)", format)
			}

			if output == "" {
				_, err = os.Stdout.Write(rendered)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return err
			}
			return os.WriteFile(output, rendered, 0o644)
		},
	}

	cmd.Flags().StringVar(&projectRoot, "project-root", ".", "path to the TypeScript project")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or mermaid")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&direction, "direction", "d", "downstream", "sub-graph direction: downstream, upstream, or both")
	cmd.Flags().StringSliceVarP(&entries, "entry", "e", nil, "entry class names for sub-graph extraction")
	cmd.Flags().BoolVar(&includeDecorators, "include-decorators", true, "capture qualifier flags on edges")
	cmd.Flags().StringSliceVar(&excludeDirs, "exclude", nil, "additional directories to exclude")
	cmd.Flags().BoolVar(&save, "save", false, "persist the graph index for diagram and MCP queries")

	return cmd
}

func parseDirection(s string) (graph.Direction, error) {
	switch s {
	case "", "downstream":
		return graph.DirectionDownstream, nil
	case "upstream":
		return graph.DirectionUpstream, nil
	case "both":
		return graph.DirectionBoth, nil
	}
	return "", fmt.Errorf("unknown direction: %s (want downstream, upstream, or both)", s)
}
