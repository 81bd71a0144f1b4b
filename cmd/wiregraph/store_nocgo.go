//go:build !cgo

package main

import (
	"context"
	"errors"

	"github.com/wiregraph/wiregraph/internal/graph"
)

var errNoCgo = errors.New("persistent graph index requires a cgo-enabled build")

func openIndex(_ string) (graph.Store, error) {
	return nil, errNoCgo
}

func saveIndex(_ context.Context, _ string, _ *graph.Graph) error {
	return errNoCgo
}
