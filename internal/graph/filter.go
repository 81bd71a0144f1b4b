package graph

// Filter computes the sub-graph reachable from the entry ids under the given
// direction. It always returns a new Graph and never mutates its input, so
// the unfiltered graph stays available to the caller.
//
// With no entries the input passes through unchanged (as a copy). Entry ids
// that match no node contribute nothing; filtering never fails. Cycles
// survive only when their entire node set survives: partially-surviving
// cycles are dropped, not truncated.
func Filter(g *Graph, entries []string, dir Direction) *Graph {
	if len(entries) == 0 {
		return cloneGraph(g)
	}

	index := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		index[n.ID] = i
	}

	var nodeSet map[int]bool
	var edgeSet map[int]bool

	switch dir {
	case DirectionUpstream:
		nodeSet, edgeSet = reach(g, index, entries, DirectionUpstream)
	case DirectionBoth:
		// The union of both traversals computed independently from the same
		// entries, not one filter feeding the other.
		downNodes, downEdges := reach(g, index, entries, DirectionDownstream)
		upNodes, upEdges := reach(g, index, entries, DirectionUpstream)
		nodeSet, edgeSet = downNodes, downEdges
		for n := range upNodes {
			nodeSet[n] = true
		}
		for e := range upEdges {
			edgeSet[e] = true
		}
	default:
		nodeSet, edgeSet = reach(g, index, entries, DirectionDownstream)
	}

	out := &Graph{
		Nodes:                []Node{},
		Edges:                []Edge{},
		CircularDependencies: [][]string{},
	}

	surviving := make(map[string]bool, len(nodeSet))
	for i, n := range g.Nodes {
		if nodeSet[i] {
			out.Nodes = append(out.Nodes, n)
			surviving[n.ID] = true
		}
	}
	for i, e := range g.Edges {
		if edgeSet[i] {
			out.Edges = append(out.Edges, cloneEdge(e))
		}
	}
	for _, cycle := range g.CircularDependencies {
		if allSurvive(cycle, surviving) {
			out.CircularDependencies = append(out.CircularDependencies, append([]string(nil), cycle...))
		}
	}

	return out
}

// reach performs a breadth-first traversal from the entries and returns the
// touched node and edge index sets. Downstream follows from → to; upstream
// follows to → from. An included edge may still point at a dangling token.
func reach(g *Graph, index map[string]int, entries []string, dir Direction) (map[int]bool, map[int]bool) {
	nodeSet := make(map[int]bool)
	var queue []int
	for _, id := range entries {
		if i, ok := index[id]; ok && !nodeSet[i] {
			nodeSet[i] = true
			queue = append(queue, i)
		}
	}

	// Adjacency over edge indices, keyed by the traversal origin.
	adj := make(map[int][]int, len(g.Nodes))
	for ei, e := range g.Edges {
		switch dir {
		case DirectionUpstream:
			if to, ok := index[e.To]; ok {
				adj[to] = append(adj[to], ei)
			}
		default:
			if from, ok := index[e.From]; ok {
				adj[from] = append(adj[from], ei)
			}
		}
	}

	edgeSet := make(map[int]bool)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, ei := range adj[cur] {
			edgeSet[ei] = true
			var nextID string
			if dir == DirectionUpstream {
				nextID = g.Edges[ei].From
			} else {
				nextID = g.Edges[ei].To
			}
			next, ok := index[nextID]
			if !ok || nodeSet[next] {
				continue
			}
			nodeSet[next] = true
			queue = append(queue, next)
		}
	}

	return nodeSet, edgeSet
}

func allSurvive(cycle []string, surviving map[string]bool) bool {
	for _, id := range cycle {
		if !surviving[id] {
			return false
		}
	}
	return true
}

func cloneGraph(g *Graph) *Graph {
	out := &Graph{
		Nodes:                append([]Node{}, g.Nodes...),
		Edges:                make([]Edge, 0, len(g.Edges)),
		CircularDependencies: make([][]string, 0, len(g.CircularDependencies)),
	}
	for _, e := range g.Edges {
		out.Edges = append(out.Edges, cloneEdge(e))
	}
	for _, cycle := range g.CircularDependencies {
		out.CircularDependencies = append(out.CircularDependencies, append([]string(nil), cycle...))
	}
	return out
}

func cloneEdge(e Edge) Edge {
	if e.Flags != nil {
		f := *e.Flags
		e.Flags = &f
	}
	return e
}
