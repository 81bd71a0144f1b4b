package graph

// Traversal colors for cycle detection.
const (
	colorUnvisited = iota
	colorInProgress
	colorDone
)

// DetectCycles finds every cycle in the graph, marks each edge that closes a
// cycle with IsCircular, and records the cycle node sequences on the graph.
//
// The traversal is a depth-first search over nodes in list order and over
// each node's outgoing edges in list order, driven by an explicit frame stack
// so that deep dependency chains cannot exhaust the call stack. Because the
// input order is fixed, the set and order of reported cycles is identical
// across runs.
//
// A self-loop is marked IsCircular but is not added to the cycle list: the
// single-node case is degenerate and every consumer would otherwise have to
// special-case length-1 sequences.
func DetectCycles(g *Graph) {
	index := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		index[n.ID] = i
	}

	// Outgoing edge indices per node, in edge list order.
	adj := make([][]int, len(g.Nodes))
	for ei, e := range g.Edges {
		if from, ok := index[e.From]; ok {
			adj[from] = append(adj[from], ei)
		}
	}

	colors := make([]int, len(g.Nodes))
	pathPos := make([]int, len(g.Nodes)) // position on the current path, -1 if off it
	for i := range pathPos {
		pathPos[i] = -1
	}

	// frame tracks one in-progress node and the next outgoing edge to examine.
	type frame struct {
		node int
		next int
	}

	var stack []frame
	var path []int // node indices currently colored in-progress, root first

	push := func(n int) {
		colors[n] = colorInProgress
		pathPos[n] = len(path)
		path = append(path, n)
		stack = append(stack, frame{node: n})
	}

	for root := range g.Nodes {
		if colors[root] != colorUnvisited {
			continue
		}
		push(root)

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.next >= len(adj[top.node]) {
				colors[top.node] = colorDone
				pathPos[top.node] = -1
				path = path[:len(path)-1]
				stack = stack[:len(stack)-1]
				continue
			}

			ei := adj[top.node][top.next]
			top.next++

			target, ok := index[g.Edges[ei].To]
			if !ok {
				continue // dangling token, nothing to traverse
			}

			switch colors[target] {
			case colorUnvisited:
				push(target)
			case colorInProgress:
				g.Edges[ei].IsCircular = true
				cycle := path[pathPos[target]:]
				if len(cycle) > 1 {
					ids := make([]string, len(cycle))
					for i, n := range cycle {
						ids[i] = g.Nodes[n].ID
					}
					g.CircularDependencies = append(g.CircularDependencies, ids)
				}
			}
		}
	}
}
