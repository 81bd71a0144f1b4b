// Package export renders an assembled dependency graph for output. The
// engine hands over a graph value verbatim; everything about file formats
// lives here.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/wiregraph/wiregraph/internal/diag"
	"github.com/wiregraph/wiregraph/internal/graph"
)

// Report is the top-level JSON export structure.
type Report struct {
	Nodes                []graph.Node   `json:"nodes"`
	Edges                []graph.Edge   `json:"edges"`
	CircularDependencies [][]string     `json:"circularDependencies"`
	Warnings             []diag.Warning `json:"warnings,omitempty"`
}

// JSON renders the graph and any collected warnings as indented JSON. Field
// and element order follow discovery order, so unchanged input yields
// byte-identical output.
func JSON(g *graph.Graph, warnings []diag.Warning) ([]byte, error) {
	report := Report{
		Nodes:                g.Nodes,
		Edges:                g.Edges,
		CircularDependencies: g.CircularDependencies,
		Warnings:             warnings,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal graph: %w", err)
	}
	return append(data, '\n'), nil
}
