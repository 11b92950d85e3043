package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwulff/cgm-go/internal/glucose"
)

func newTestStore(t *testing.T) *Store {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testReading(id string, sgv int, dateMs int64) glucose.Reading {
	return glucose.Reading{
		ID:         id,
		SGV:        sgv,
		DateMs:     dateMs,
		DateString: "2024-01-15T08:00:00Z",
		Direction:  "Flat",
		Device:     "g6",
	}
}

func TestNewMemoryStore(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	assert.NotNil(t, store)
}

func TestNewFileStore(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewFileStore(tmpDir + "/test.db")
	require.NoError(t, err)
	defer store.Close()

	assert.NotNil(t, store)
}

func TestInsertIfAbsent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inserted, err := store.InsertIfAbsent(ctx, testReading("r1", 120, 1000))
	require.NoError(t, err)
	assert.True(t, inserted)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInsertDuplicateIsNoop(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, _ = store.InsertIfAbsent(ctx, testReading("r1", 120, 1000))

	inserted, err := store.InsertIfAbsent(ctx, testReading("r1", 999, 2000))
	require.NoError(t, err)
	assert.False(t, inserted)

	count, _ := store.Count(ctx)
	assert.Equal(t, 1, count)

	// The original row wins.
	readings, err := store.QuerySince(ctx, 0)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 120, readings[0].SGV)
}

func TestCountEmpty(t *testing.T) {
	store := newTestStore(t)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestQuerySinceOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, _ = store.InsertIfAbsent(ctx, testReading("r3", 140, 3000))
	_, _ = store.InsertIfAbsent(ctx, testReading("r1", 100, 1000))
	_, _ = store.InsertIfAbsent(ctx, testReading("r2", 120, 2000))

	readings, err := store.QuerySince(ctx, 0)
	require.NoError(t, err)

	require.Len(t, readings, 3)
	assert.Equal(t, []int64{1000, 2000, 3000}, []int64{readings[0].DateMs, readings[1].DateMs, readings[2].DateMs})
}

func TestQuerySinceCutoff(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, _ = store.InsertIfAbsent(ctx, testReading("old", 100, 1000))
	_, _ = store.InsertIfAbsent(ctx, testReading("new", 120, 5000))

	readings, err := store.QuerySince(ctx, 2000)
	require.NoError(t, err)

	require.Len(t, readings, 1)
	assert.Equal(t, "new", readings[0].ID)
}

func TestQuerySinceFiltersZeroValues(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, _ = store.InsertIfAbsent(ctx, testReading("z1", 0, 1000))
	_, _ = store.InsertIfAbsent(ctx, testReading("r1", 120, 2000))
	_, _ = store.InsertIfAbsent(ctx, testReading("z2", 0, 3000))
	_, _ = store.InsertIfAbsent(ctx, testReading("r2", 140, 4000))
	_, _ = store.InsertIfAbsent(ctx, testReading("z3", 0, 5000))

	readings, err := store.QuerySince(ctx, 0)
	require.NoError(t, err)

	require.Len(t, readings, 2)
	assert.Equal(t, 120, readings[0].SGV)
	assert.Equal(t, 140, readings[1].SGV)
}

func TestQuerySinceNullMetadata(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Simulate a row ingested with absent optional fields.
	_, err := store.db.ExecContext(ctx,
		"INSERT INTO readings (id, sgv, date_ms, date_string, trend, direction, device) VALUES (?, ?, ?, NULL, NULL, NULL, NULL)",
		"nulls", 110, int64(1000))
	require.NoError(t, err)

	readings, err := store.QuerySince(ctx, 0)
	require.NoError(t, err)

	require.Len(t, readings, 1)
	assert.Equal(t, "", readings[0].Direction)
	assert.Equal(t, "", readings[0].DateString)
}

func TestFileStorePersistsAcrossOpens(t *testing.T) {
	path := t.TempDir() + "/cgm.db"

	store, err := NewFileStore(path)
	require.NoError(t, err)
	_, _ = store.InsertIfAbsent(context.Background(), testReading("r1", 120, 1000))
	require.NoError(t, store.Close())

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
