package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiregraph/wiregraph/internal/diag"
	"github.com/wiregraph/wiregraph/internal/graph"
)

func sampleGraph() *graph.Graph {
	return &graph.Graph{
		Nodes: []graph.Node{
			{ID: "AppComponent", Kind: graph.NodeKindComponent},
			{ID: "AuthService", Kind: graph.NodeKindService},
		},
		Edges: []graph.Edge{
			{From: "AppComponent", To: "AuthService"},
			{From: "AuthService", To: "LOG_SINK", Flags: &graph.Flags{Optional: true}},
			{From: "AuthService", To: "AppComponent", IsCircular: true},
		},
		CircularDependencies: [][]string{{"AppComponent", "AuthService"}},
	}
}

func TestJSON_Shape(t *testing.T) {
	out, err := JSON(sampleGraph(), []diag.Warning{
		{Category: diag.CategoryTypeResolution, Message: "skipped", Severity: diag.SeverityWarning},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(out, []byte("\n")))

	var report Report
	require.NoError(t, json.Unmarshal(out, &report))
	assert.Len(t, report.Nodes, 2)
	assert.Len(t, report.Edges, 3)
	assert.Equal(t, [][]string{{"AppComponent", "AuthService"}}, report.CircularDependencies)
	assert.Len(t, report.Warnings, 1)

	// Unasserted flag records and the warnings key itself are omitted.
	assert.NotContains(t, string(out), `"flags": null`)
	empty, err := JSON(&graph.Graph{Nodes: []graph.Node{}, Edges: []graph.Edge{}, CircularDependencies: [][]string{}}, nil)
	require.NoError(t, err)
	assert.NotContains(t, string(empty), "warnings")
}

func TestJSON_Deterministic(t *testing.T) {
	first, err := JSON(sampleGraph(), nil)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := JSON(sampleGraph(), nil)
		require.NoError(t, err)
		assert.Equal(t, first, again, "unchanged input must render byte-identical output")
	}
}

func TestMermaid(t *testing.T) {
	out := Mermaid(sampleGraph())

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `N0["AppComponent"]:::component`)
	assert.Contains(t, out, `N1["AuthService"]:::service`)
	assert.Contains(t, out, "N0 --> N1")

	// Dangling token gets a plain declared box and a flag label on its edge.
	assert.Contains(t, out, `N2["LOG_SINK"]`)
	assert.Contains(t, out, "N1 -->|optional| N2")

	// Cycle-closing edges use the dotted arrow.
	assert.Contains(t, out, "N1 -.-> N0")

	assert.Contains(t, out, "classDef service")
}

func TestMermaid_EmptyGraph(t *testing.T) {
	out := Mermaid(&graph.Graph{})
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.NotContains(t, out, "-->")
}
