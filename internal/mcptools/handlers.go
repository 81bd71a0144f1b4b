package mcptools

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wiregraph/wiregraph/internal/analyze"
	"github.com/wiregraph/wiregraph/internal/diag"
	"github.com/wiregraph/wiregraph/internal/graph"
)

// GraphService holds the analyzer, graph store, and diagnostics collector
// used by the MCP tool handlers. The collector is reset at the start of each
// build so warning counts never leak between runs.
type GraphService struct {
	analyzer *analyze.Analyzer
	store    graph.Store
	diags    *diag.Collector
}

// NewGraphService creates a GraphService around the given store.
func NewGraphService(store graph.Store) *GraphService {
	return &GraphService{
		analyzer: analyze.NewAnalyzer(),
		store:    store,
		diags:    diag.NewCollector(),
	}
}

// BuildGraph analyzes a TypeScript project, assembles its injection graph
// with cycle annotations, and saves it to the store. Returns graph stats and
// the number of warnings collected.
func (s *GraphService) BuildGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BuildGraphInput,
) (*mcp.CallToolResult, BuildGraphOutput, error) {
	if input.ProjectPath == "" {
		return nil, BuildGraphOutput{}, fmt.Errorf("projectPath is required")
	}
	info, err := os.Stat(input.ProjectPath)
	if err != nil {
		return nil, BuildGraphOutput{}, fmt.Errorf("cannot access projectPath: %w", err)
	}
	if !info.IsDir() {
		return nil, BuildGraphOutput{}, fmt.Errorf("projectPath is not a directory: %s", input.ProjectPath)
	}

	s.diags.Reset()

	facts, err := s.analyzer.AnalyzeProject(ctx, input.ProjectPath, input.ExcludeDirs, s.diags)
	if err != nil {
		return nil, BuildGraphOutput{}, fmt.Errorf("analyze project: %w", err)
	}

	opts := graph.DefaultOptions()
	if input.IncludeDecorators != nil {
		opts.IncludeDecorators = *input.IncludeDecorators
	}

	classes := graph.ResolveClasses(facts, s.diags)
	g := graph.Build(classes, opts, s.diags)

	if err := s.store.InitSchema(ctx); err != nil {
		return nil, BuildGraphOutput{}, fmt.Errorf("init schema: %w", err)
	}
	if err := s.store.SaveGraph(ctx, g); err != nil {
		return nil, BuildGraphOutput{}, fmt.Errorf("save graph: %w", err)
	}

	return nil, BuildGraphOutput{
		Stats:    g.Stats(),
		Warnings: s.diags.Count(),
	}, nil
}

// FindCycles returns every multi-node cycle in the stored graph.
func (s *GraphService) FindCycles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ FindCyclesInput,
) (*mcp.CallToolResult, FindCyclesOutput, error) {
	g, err := s.store.LoadGraph(ctx)
	if err != nil {
		return nil, FindCyclesOutput{}, fmt.Errorf("load graph: %w", err)
	}
	return nil, FindCyclesOutput{
		Cycles: g.CircularDependencies,
		Total:  len(g.CircularDependencies),
	}, nil
}

// GetSubgraph computes a directional sub-graph from the given entry classes.
func (s *GraphService) GetSubgraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetSubgraphInput,
) (*mcp.CallToolResult, GetSubgraphOutput, error) {
	if len(input.Entry) == 0 {
		return nil, GetSubgraphOutput{}, fmt.Errorf("entry is required")
	}

	direction := graph.DirectionDownstream
	switch strings.ToLower(input.Direction) {
	case "", "downstream":
	case "upstream":
		direction = graph.DirectionUpstream
	case "both":
		direction = graph.DirectionBoth
	default:
		return nil, GetSubgraphOutput{}, fmt.Errorf("unknown direction: %s", input.Direction)
	}

	g, err := s.store.LoadGraph(ctx)
	if err != nil {
		return nil, GetSubgraphOutput{}, fmt.Errorf("load graph: %w", err)
	}
	sub := graph.Filter(g, input.Entry, direction)
	return nil, GetSubgraphOutput{Graph: *sub}, nil
}

// QueryClasses searches stored classes by name substring match.
func (s *GraphService) QueryClasses(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryClassesInput,
) (*mcp.CallToolResult, QueryClassesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	g, err := s.store.LoadGraph(ctx)
	if err != nil {
		return nil, QueryClassesOutput{}, fmt.Errorf("load graph: %w", err)
	}

	lowerQuery := strings.ToLower(input.Query)
	kind := graph.NodeKind(strings.ToLower(input.Kind))

	matches := []graph.Node{}
	for _, n := range g.Nodes {
		if input.Kind != "" && n.Kind != kind {
			continue
		}
		if !strings.Contains(strings.ToLower(n.ID), lowerQuery) {
			continue
		}
		matches = append(matches, n)
		if len(matches) >= limit {
			break
		}
	}

	return nil, QueryClassesOutput{Classes: matches, Total: len(matches)}, nil
}

// GetWarnings returns the warnings collected by the most recent build.
func (s *GraphService) GetWarnings(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ GetWarningsInput,
) (*mcp.CallToolResult, GetWarningsOutput, error) {
	warnings := s.diags.Warnings()
	return nil, GetWarningsOutput{Warnings: warnings, Total: len(warnings)}, nil
}
