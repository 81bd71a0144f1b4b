package graph

import (
	"testing"

	"github.com/wiregraph/wiregraph/internal/diag"
)

func TestAssemble_DiscoveryOrder(t *testing.T) {
	classes := []ResolvedClass{
		{Name: "Zeta", Kind: NodeKindService, Dependencies: []ResolvedDependency{
			{Token: "Alpha", ParameterName: "a"},
			{Token: "Beta", ParameterName: "b"},
		}},
		{Name: "Alpha", Kind: NodeKindComponent},
		{Name: "Beta", Kind: NodeKindDirective, Dependencies: []ResolvedDependency{
			{Token: "Alpha", ParameterName: "a"},
		}},
	}

	g := Assemble(classes, DefaultOptions(), diag.NewCollector())

	wantNodes := []string{"Zeta", "Alpha", "Beta"}
	if len(g.Nodes) != len(wantNodes) {
		t.Fatalf("nodes = %d, want %d", len(g.Nodes), len(wantNodes))
	}
	for i, id := range wantNodes {
		if g.Nodes[i].ID != id {
			t.Errorf("nodes[%d] = %q, want %q (no sorting allowed)", i, g.Nodes[i].ID, id)
		}
	}

	wantEdges := [][2]string{{"Zeta", "Alpha"}, {"Zeta", "Beta"}, {"Beta", "Alpha"}}
	if len(g.Edges) != len(wantEdges) {
		t.Fatalf("edges = %d, want %d", len(g.Edges), len(wantEdges))
	}
	for i, w := range wantEdges {
		if g.Edges[i].From != w[0] || g.Edges[i].To != w[1] {
			t.Errorf("edges[%d] = %s->%s, want %s->%s", i, g.Edges[i].From, g.Edges[i].To, w[0], w[1])
		}
	}
}

func TestAssemble_DanglingTokenKeepsBareEdge(t *testing.T) {
	classes := []ResolvedClass{
		{Name: "LoggerService", Kind: NodeKindService, Dependencies: []ResolvedDependency{
			{Token: "LOG_SINK", ParameterName: "sink"},
		}},
	}

	g := Assemble(classes, DefaultOptions(), diag.NewCollector())

	if len(g.Nodes) != 1 {
		t.Fatalf("nodes = %d, want 1 (no placeholder node for dangling token)", len(g.Nodes))
	}
	if len(g.Edges) != 1 || g.Edges[0].To != "LOG_SINK" {
		t.Fatalf("expected one edge to LOG_SINK, got %+v", g.Edges)
	}
}

func TestAssemble_FlagSuppression(t *testing.T) {
	classes := []ResolvedClass{
		{Name: "A", Kind: NodeKindService, Dependencies: []ResolvedDependency{
			{Token: "B", ParameterName: "b", Flags: &Flags{Optional: true, Host: true}},
			{Token: "C", ParameterName: "c"},
		}},
	}

	withFlags := Assemble(classes, Options{IncludeDecorators: true}, diag.NewCollector())
	if withFlags.Edges[0].Flags == nil || !withFlags.Edges[0].Flags.Optional {
		t.Error("flags should be captured when includeDecorators is on")
	}

	suppressed := Assemble(classes, Options{IncludeDecorators: false}, diag.NewCollector())
	for i, e := range suppressed.Edges {
		if e.Flags != nil {
			t.Errorf("edges[%d].Flags = %+v, want absent (nil, not empty)", i, e.Flags)
		}
	}
}

func TestAssemble_DuplicateClassFirstWins(t *testing.T) {
	dc := diag.NewCollector()
	classes := []ResolvedClass{
		{Name: "AuthService", Kind: NodeKindService, Dependencies: []ResolvedDependency{
			{Token: "HttpService", ParameterName: "http"},
		}},
		{Name: "AuthService", Kind: NodeKindComponent},
	}

	g := Assemble(classes, DefaultOptions(), dc)

	if len(g.Nodes) != 1 {
		t.Fatalf("nodes = %d, want 1", len(g.Nodes))
	}
	if g.Nodes[0].Kind != NodeKindService {
		t.Errorf("kind = %q, want first occurrence's kind %q", g.Nodes[0].Kind, NodeKindService)
	}
	if len(g.Edges) != 1 {
		t.Errorf("edges = %d, want first occurrence's single edge", len(g.Edges))
	}
	if dc.Count() != 1 {
		t.Errorf("warnings = %d, want 1", dc.Count())
	}
}

func TestAssemble_IsolatedNodeAppears(t *testing.T) {
	g := Assemble([]ResolvedClass{{Name: "Lonely", Kind: NodeKindService}}, DefaultOptions(), diag.NewCollector())
	if len(g.Nodes) != 1 || len(g.Edges) != 0 {
		t.Fatalf("got %d nodes / %d edges, want 1 / 0", len(g.Nodes), len(g.Edges))
	}
}
