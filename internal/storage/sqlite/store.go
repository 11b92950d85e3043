// Package sqlite provides a SQLite implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jwulff/cgm-go/internal/glucose"
	"github.com/jwulff/cgm-go/internal/storage"

	_ "modernc.org/sqlite"
)

// Store is a SQLite implementation of storage.Store.
type Store struct {
	db *sql.DB
}

// NewMemoryStore creates an in-memory SQLite store.
func NewMemoryStore() (*Store, error) {
	return newStore(":memory:")
}

// NewFileStore creates a file-based SQLite store.
func NewFileStore(path string) (*Store, error) {
	return newStore(path)
}

func newStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertIfAbsent inserts the reading unless its id already exists.
// INSERT OR IGNORE makes each insert atomic, so an interrupted sync
// never leaves a half-written row.
func (s *Store) InsertIfAbsent(ctx context.Context, r glucose.Reading) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO readings (id, sgv, date_ms, date_string, trend, direction, device)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.SGV, r.DateMs, r.DateString, r.Trend, r.Direction, r.Device)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the total number of stored readings.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM readings").Scan(&count)
	return count, err
}

// QuerySince returns non-zero readings at or after cutoffMs, ascending
// by timestamp.
func (s *Store) QuerySince(ctx context.Context, cutoffMs int64) ([]glucose.Reading, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sgv, date_ms, COALESCE(date_string, ''), COALESCE(trend, 0),
		       COALESCE(direction, ''), COALESCE(device, '')
		FROM readings
		WHERE date_ms >= ? AND sgv > 0
		ORDER BY date_ms ASC
	`, cutoffMs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []glucose.Reading
	for rows.Next() {
		var r glucose.Reading
		if err := rows.Scan(&r.ID, &r.SGV, &r.DateMs, &r.DateString, &r.Trend, &r.Direction, &r.Device); err != nil {
			return nil, err
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

// Verify interface compliance
var _ storage.Store = (*Store)(nil)
