// Package ingest pages backward through the remote reading history and
// fills the local cache, deduplicating against already-stored readings.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jwulff/cgm-go/internal/glucose"
	"github.com/jwulff/cgm-go/internal/nightscout"
	"github.com/jwulff/cgm-go/internal/storage"
)

// DefaultPageSize is how many entries each backward page requests.
const DefaultPageSize = 10000

// EntrySource is the remote call the engine depends on.
type EntrySource interface {
	FetchEntries(ctx context.Context, count int, maxDateMs int64) ([]nightscout.Entry, error)
}

// Result reports the outcome of one sync run.
type Result struct {
	New   int
	Total int
}

// Engine pulls readings from an EntrySource into a storage.Store.
type Engine struct {
	Source   EntrySource
	Store    storage.Store
	Log      *log.Logger
	PageSize int

	// now is swappable for tests.
	now func() time.Time
}

// NewEngine creates an ingestion engine with the default page size.
func NewEngine(source EntrySource, store storage.Store, logger *log.Logger) *Engine {
	return &Engine{
		Source:   source,
		Store:    store,
		Log:      logger,
		PageSize: DefaultPageSize,
		now:      time.Now,
	}
}

// Sync pages backward from the most recent entry until history is
// exhausted or a page reaches past the lookback cutoff. One page of
// overshoot past the cutoff is fine: those entries are deduplicated
// like any others. A network failure aborts the run, but rows already
// inserted stay committed, so rerunning is safe and cheap.
func (e *Engine) Sync(ctx context.Context, lookbackDays int) (Result, error) {
	cutoffMs := e.now().UTC().AddDate(0, 0, -lookbackDays).UnixMilli()

	totalNew := 0
	var cursor int64

	for {
		entries, err := e.Source.FetchEntries(ctx, e.PageSize, cursor)
		if err != nil {
			return Result{}, fmt.Errorf("failed to fetch data: %w", err)
		}
		if len(entries) == 0 {
			break
		}

		pageMin := int64(0)
		for _, entry := range entries {
			if pageMin == 0 || entry.Date < pageMin {
				pageMin = entry.Date
			}
			if entry.Type != "sgv" {
				continue
			}
			inserted, err := e.Store.InsertIfAbsent(ctx, glucose.Reading{
				ID:         entry.ID,
				SGV:        entry.SGV,
				DateMs:     entry.Date,
				DateString: entry.DateString,
				Trend:      entry.Trend,
				Direction:  entry.Direction,
				Device:     entry.Device,
			})
			if err != nil {
				return Result{}, fmt.Errorf("failed to store reading: %w", err)
			}
			if inserted {
				totalNew++
			}
		}

		if e.Log != nil {
			e.Log.Debug("processed page", "entries", len(entries), "oldest_ms", pageMin)
		}

		if pageMin < cutoffMs {
			break
		}
		cursor = pageMin - 1
	}

	total, err := e.Store.Count(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to count readings: %w", err)
	}
	return Result{New: totalNew, Total: total}, nil
}

// EnsureData makes analysis commands self-bootstrapping: if the store
// already has readings it succeeds immediately without refreshing them,
// otherwise it runs one sync.
func (e *Engine) EnsureData(ctx context.Context, lookbackDays int) error {
	count, err := e.Store.Count(ctx)
	if err == nil && count > 0 {
		return nil
	}

	if e.Log != nil {
		e.Log.Info("local cache empty, fetching history", "days", lookbackDays)
	}
	_, err = e.Sync(ctx, lookbackDays)
	return err
}
