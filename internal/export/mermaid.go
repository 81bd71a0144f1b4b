package export

import (
	"fmt"
	"strings"

	"github.com/wiregraph/wiregraph/internal/graph"
)

// Mermaid produces a Mermaid graph TD diagram. Discovered classes are styled
// by kind; dangling tokens get plain boxes. Edges that close a cycle are
// drawn with a distinct arrow so cycles stand out in the rendered diagram.
func Mermaid(g *graph.Graph) string {
	// Node -> ID mapping for Mermaid (alphanumeric only).
	nodeIDs := make(map[string]string)
	nextID := 0
	getID := func(name string) string {
		if id, ok := nodeIDs[name]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		nodeIDs[name] = id
		return id
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	declared := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		declared[n.ID] = true
		sb.WriteString(fmt.Sprintf("  %s[\"%s\"]:::%s\n", getID(n.ID), n.ID, string(n.Kind)))
	}

	for _, e := range g.Edges {
		if !declared[e.To] {
			declared[e.To] = true
			sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", getID(e.To), e.To))
		}
		arrow := "-->"
		if e.IsCircular {
			arrow = "-.->"
		}
		label := edgeLabel(e.Flags)
		if label != "" {
			sb.WriteString(fmt.Sprintf("  %s %s|%s| %s\n", getID(e.From), arrow, label, getID(e.To)))
		} else {
			sb.WriteString(fmt.Sprintf("  %s %s %s\n", getID(e.From), arrow, getID(e.To)))
		}
	}

	sb.WriteString("  classDef service fill:#e8f4e8\n")
	sb.WriteString("  classDef component fill:#e8e8f4\n")
	sb.WriteString("  classDef directive fill:#f4ede8\n")
	sb.WriteString("  classDef unknown fill:#eeeeee\n")

	return sb.String()
}

// edgeLabel renders asserted qualifier flags as a short edge label.
func edgeLabel(f *graph.Flags) string {
	if f == nil {
		return ""
	}
	var parts []string
	if f.Optional {
		parts = append(parts, "optional")
	}
	if f.Self {
		parts = append(parts, "self")
	}
	if f.SkipSelf {
		parts = append(parts, "skipSelf")
	}
	if f.Host {
		parts = append(parts, "host")
	}
	return strings.Join(parts, ",")
}
