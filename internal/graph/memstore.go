package graph

import (
	"context"
	"sync"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store in memory. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu    sync.RWMutex
	graph *Graph
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// SaveGraph stores a deep copy of the graph, replacing any previous one.
func (m *MemStore) SaveGraph(_ context.Context, g *Graph) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.graph = cloneGraph(g)
	return nil
}

// LoadGraph returns a deep copy of the stored graph, or an empty graph when
// nothing has been saved.
func (m *MemStore) LoadGraph(_ context.Context) (*Graph, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.graph == nil {
		return &Graph{Nodes: []Node{}, Edges: []Edge{}, CircularDependencies: [][]string{}}, nil
	}
	return cloneGraph(m.graph), nil
}

// Stats returns counts for the stored graph.
func (m *MemStore) Stats(_ context.Context) (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.graph == nil {
		return &Stats{}, nil
	}
	s := m.graph.Stats()
	return &s, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
