//go:build cgo

package graph

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a fresh in-memory KuzuStore with an initialized schema.
// It registers a cleanup function to close the store when the test finishes.
func newTestStore(t *testing.T) *KuzuStore {
	t.Helper()
	s, err := NewKuzuStore()
	require.NoError(t, err, "NewKuzuStore should not fail")
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.InitSchema(context.Background()), "InitSchema should not fail")
	return s
}

func TestKuzuStore_InitSchema_Idempotent(t *testing.T) {
	s, err := NewKuzuStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	require.NoError(t, s.InitSchema(ctx))
	// IF NOT EXISTS makes a second call safe.
	require.NoError(t, s.InitSchema(ctx))
}

func TestKuzuStore_GraphRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g := &Graph{
		Nodes: []Node{
			{ID: "AppComponent", Kind: NodeKindComponent},
			{ID: "AuthService", Kind: NodeKindService},
			{ID: "UserService", Kind: NodeKindService},
		},
		Edges: []Edge{
			{From: "AppComponent", To: "AuthService"},
			{From: "AuthService", To: "UserService", Flags: &Flags{Optional: true, Host: true}},
			{From: "UserService", To: "AuthService"},
		},
		CircularDependencies: [][]string{},
	}
	DetectCycles(g)

	require.NoError(t, s.SaveGraph(ctx, g))

	got, err := s.LoadGraph(ctx)
	require.NoError(t, err)

	assert.Equal(t, g.Nodes, got.Nodes, "node order must survive the round trip")
	assert.Equal(t, g.Edges, got.Edges, "edge order and flags must survive the round trip")
	assert.Equal(t, [][]string{{"AuthService", "UserService"}}, got.CircularDependencies)
}

func TestKuzuStore_DanglingTokenRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g := &Graph{
		Nodes: []Node{{ID: "LoggerService", Kind: NodeKindService}},
		Edges: []Edge{
			{From: "LoggerService", To: "LOG_SINK", Flags: &Flags{Optional: true}},
		},
		CircularDependencies: [][]string{},
	}

	require.NoError(t, s.SaveGraph(ctx, g))

	got, err := s.LoadGraph(ctx)
	require.NoError(t, err)

	require.Len(t, got.Edges, 1, "bare edge to an undiscovered token must survive")
	assert.Equal(t, "LOG_SINK", got.Edges[0].To)
	require.NotNil(t, got.Edges[0].Flags)
	assert.True(t, got.Edges[0].Flags.Optional)
	// The token is an edge target only, never a node.
	assert.Len(t, got.Nodes, 1)
}

func TestKuzuStore_NilFlagsStayNil(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g := &Graph{
		Nodes:                []Node{{ID: "A", Kind: NodeKindService}, {ID: "B", Kind: NodeKindService}},
		Edges:                []Edge{{From: "A", To: "B"}},
		CircularDependencies: [][]string{},
	}

	require.NoError(t, s.SaveGraph(ctx, g))

	got, err := s.LoadGraph(ctx)
	require.NoError(t, err)
	require.Len(t, got.Edges, 1)
	assert.Nil(t, got.Edges[0].Flags, "unqualified edge must come back without a flag record")
}

func TestKuzuStore_LoadEmpty(t *testing.T) {
	s := newTestStore(t)

	got, err := s.LoadGraph(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Nodes)
	assert.Empty(t, got.Edges)
	assert.Empty(t, got.CircularDependencies)
}

func TestKuzuStore_Stats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g := buildGraph(
		[]string{"A", "B", "C"},
		[][2]string{{"A", "B"}, {"B", "A"}, {"B", "C"}},
	)
	DetectCycles(g)
	require.NoError(t, s.SaveGraph(ctx, g))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Stats{NodeCount: 3, EdgeCount: 3, CycleCount: 1}, stats)
}

func TestKuzuFileStore_Persists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "index", "graph")
	ctx := context.Background()

	s, err := NewKuzuFileStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.InitSchema(ctx))

	g := buildGraph([]string{"AuthService", "UserService"}, [][2]string{{"AuthService", "UserService"}})
	require.NoError(t, s.SaveGraph(ctx, g))
	require.NoError(t, s.Close())

	reopened, err := NewKuzuFileStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.LoadGraph(ctx)
	require.NoError(t, err)
	assert.Equal(t, g.Nodes, got.Nodes)
	assert.Equal(t, g.Edges, got.Edges)
}
