//go:build cgo

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wiregraph/wiregraph/internal/graph"
)

// indexPath returns the on-disk location of the persistent graph index.
func indexPath(projectRoot string) string {
	return filepath.Join(projectRoot, indexDirName, "graph")
}

// openIndex opens an existing persistent graph index.
func openIndex(projectRoot string) (graph.Store, error) {
	path := indexPath(projectRoot)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no graph index at %s\nRun 'wiregraph analyze --save' first", path)
	}
	return graph.NewKuzuFileStore(path)
}

// saveIndex replaces the persistent graph index with the given graph.
func saveIndex(ctx context.Context, projectRoot string, g *graph.Graph) error {
	path := indexPath(projectRoot)

	// Remove old index to avoid stale data.
	os.RemoveAll(path)

	store, err := graph.NewKuzuFileStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		return err
	}
	return store.SaveGraph(ctx, g)
}
