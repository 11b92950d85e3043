// Package storage provides the persistence abstraction for the local
// reading cache.
package storage

import (
	"context"

	"github.com/jwulff/cgm-go/internal/glucose"
)

// Store is the interface for the local reading cache. The cache is
// append-only: readings are inserted once, keyed by their remote id,
// and never updated or deleted.
type Store interface {
	// InsertIfAbsent stores the reading unless its id already exists.
	// It reports whether a row was actually inserted.
	InsertIfAbsent(ctx context.Context, r glucose.Reading) (bool, error)

	// Count returns the total number of stored readings.
	Count(ctx context.Context) (int, error)

	// QuerySince returns readings with a timestamp at or after cutoffMs
	// and a non-zero glucose value, ascending by timestamp.
	QuerySince(ctx context.Context, cutoffMs int64) ([]glucose.Reading, error)

	// Lifecycle
	Close() error
}
