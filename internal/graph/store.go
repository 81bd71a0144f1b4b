package graph

import (
	"context"
	"io"
)

// Store persists an assembled dependency graph so later commands (diagram
// rendering, MCP queries) can reuse an index without re-analyzing the
// project. Implementations: KuzuStore (persistent, cgo), MemStore (tests and
// ephemeral runs).
type Store interface {
	io.Closer

	// InitSchema prepares the backend. Called once before SaveGraph.
	InitSchema(ctx context.Context) error

	// SaveGraph writes the full graph. Node and edge discovery order is
	// preserved across a save/load round trip.
	SaveGraph(ctx context.Context, g *Graph) error

	// LoadGraph reads the stored graph back, including cycle annotations.
	// Returns an empty graph when nothing has been saved.
	LoadGraph(ctx context.Context) (*Graph, error)

	// Stats returns node/edge/cycle counts for the stored graph.
	Stats(ctx context.Context) (*Stats, error)
}
