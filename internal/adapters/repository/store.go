// Package repository defines the completed-run result store.
package repository

import (
	"context"

	"github.com/poolside/lineup/internal/domain/model"
)

// Store provides access to completed lineup results by run ID.
type Store interface {
	// Put stores the result for a run, replacing any previous one.
	Put(ctx context.Context, runID string, result model.LineupResult) error

	// Get returns the stored result. Returns ErrNotFound for unknown runs.
	Get(ctx context.Context, runID string) (model.LineupResult, error)

	// Count returns the number of retained results.
	Count(ctx context.Context) int
}
