package graph

import (
	"fmt"

	"github.com/wiregraph/wiregraph/internal/diag"
)

// Options is the configuration surface the engine consumes.
type Options struct {
	// Direction and Entries bound the output to a sub-graph. With no entries
	// the full graph is returned.
	Direction Direction
	Entries   []string

	// IncludeDecorators controls whether edges carry qualifier flags. When
	// false, no edge in the output has a flags field at all.
	IncludeDecorators bool
}

// DefaultOptions returns the options used when the caller supplies none.
func DefaultOptions() Options {
	return Options{
		Direction:         DirectionDownstream,
		IncludeDecorators: true,
	}
}

// Assemble turns an ordered sequence of resolved classes into a Graph. One
// node per class, one edge per dependency, both in discovery order. No
// sorting, grouping, or deduplication happens beyond the node id uniqueness
// invariant: a duplicate class name keeps its first occurrence and drops the
// rest with a warning.
//
// Edges whose token matches no discovered class are emitted as-is; no
// placeholder node is synthesized for them.
func Assemble(classes []ResolvedClass, opts Options, dc *diag.Collector) *Graph {
	g := &Graph{
		Nodes:                make([]Node, 0, len(classes)),
		Edges:                []Edge{},
		CircularDependencies: [][]string{},
	}

	seen := make(map[string]bool, len(classes))
	for _, cls := range classes {
		if seen[cls.Name] {
			dc.Add(diag.Warning{
				Category: diag.CategoryDuplicateClass,
				Message:  fmt.Sprintf("duplicate class name %q, keeping first occurrence", cls.Name),
			})
			continue
		}
		seen[cls.Name] = true

		g.Nodes = append(g.Nodes, Node{ID: cls.Name, Kind: cls.Kind})

		for _, dep := range cls.Dependencies {
			edge := Edge{From: cls.Name, To: dep.Token}
			if opts.IncludeDecorators && dep.Flags != nil {
				f := *dep.Flags
				edge.Flags = &f
			}
			g.Edges = append(g.Edges, edge)
		}
	}

	return g
}

// Build runs the full engine: assemble the graph, annotate cycles, and apply
// the directional filter when entries are configured. The diagnostics
// collector accumulates any warnings; the engine itself never fails.
func Build(classes []ResolvedClass, opts Options, dc *diag.Collector) *Graph {
	g := Assemble(classes, opts, dc)
	DetectCycles(g)
	if len(opts.Entries) > 0 {
		g = Filter(g, opts.Entries, opts.Direction)
	}
	return g
}
