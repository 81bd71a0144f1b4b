package mcptools

import (
	"github.com/wiregraph/wiregraph/internal/diag"
	"github.com/wiregraph/wiregraph/internal/graph"
)

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// BuildGraphInput is the input for the build_graph MCP tool.
type BuildGraphInput struct {
	ProjectPath       string   `json:"projectPath" jsonschema:"the absolute path to the TypeScript project to analyze"`
	ExcludeDirs       []string `json:"excludeDirs,omitempty" jsonschema:"directories to exclude from analysis (node_modules and dist are always excluded)"`
	IncludeDecorators *bool    `json:"includeDecorators,omitempty" jsonschema:"capture qualifier flags (optional, self, skipSelf, host) on edges. Default: true"`
}

// BuildGraphOutput is the result of the build_graph MCP tool.
type BuildGraphOutput struct {
	Stats    graph.Stats `json:"stats"`
	Warnings int         `json:"warnings"`
}

// FindCyclesInput is the input for the find_cycles MCP tool.
type FindCyclesInput struct{}

// FindCyclesOutput is the result of the find_cycles MCP tool.
type FindCyclesOutput struct {
	Cycles [][]string `json:"cycles"`
	Total  int        `json:"total"`
}

// GetSubgraphInput is the input for the get_subgraph MCP tool.
type GetSubgraphInput struct {
	Entry     []string `json:"entry" jsonschema:"entry class names the sub-graph is computed from"`
	Direction string   `json:"direction,omitempty" jsonschema:"downstream (dependencies), upstream (dependents), or both. Default: downstream"`
}

// GetSubgraphOutput is the result of the get_subgraph MCP tool.
type GetSubgraphOutput struct {
	Graph graph.Graph `json:"graph"`
}

// QueryClassesInput is the input for the query_classes MCP tool.
type QueryClassesInput struct {
	Query string `json:"query" jsonschema:"search query for class names (substring match, case-insensitive)"`
	Kind  string `json:"kind,omitempty" jsonschema:"filter by kind: service, component, directive, unknown"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20)"`
}

// QueryClassesOutput is the result of the query_classes MCP tool.
type QueryClassesOutput struct {
	Classes []graph.Node `json:"classes"`
	Total   int          `json:"total"`
}

// GetWarningsInput is the input for the get_warnings MCP tool.
type GetWarningsInput struct{}

// GetWarningsOutput is the result of the get_warnings MCP tool.
type GetWarningsOutput struct {
	Warnings []diag.Warning `json:"warnings"`
	Total    int            `json:"total"`
}
