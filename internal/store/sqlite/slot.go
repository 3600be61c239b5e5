// Package sqlite keeps the local fallback document in a single versioned
// key-value row of a SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrVersionConflict is returned by Put when the stored version no longer
// matches the one the caller read.
var ErrVersionConflict = errors.New("slot version conflict")

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key     TEXT PRIMARY KEY,
	value   BLOB NOT NULL,
	version INTEGER NOT NULL
)`

// Store is a SQLite-backed key-value table.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite file at path and ensures the schema.
// ":memory:" is accepted for tests.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection: every writer goes through the same handle and
	// ":memory:" databases stay shared.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value and version stored under key. An absent key
// yields (nil, 0, nil).
func (s *Store) Get(ctx context.Context, key string) ([]byte, int64, error) {
	var (
		value   []byte
		version int64
	)
	err := s.db.QueryRowContext(ctx, `SELECT value, version FROM kv WHERE key = ?`, key).Scan(&value, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", key, err)
	}
	return value, version, nil
}

// Put writes value under key if the stored version still equals expected
// (0 meaning "not written yet") and returns the new version.
func (s *Store) Put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if expected == 0 {
		res, err = s.db.ExecContext(ctx,
			`INSERT INTO kv (key, value, version) VALUES (?, ?, 1) ON CONFLICT(key) DO NOTHING`,
			key, value)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE kv SET value = ?, version = version + 1 WHERE key = ? AND version = ?`,
			value, key, expected)
	}
	if err != nil {
		return 0, fmt.Errorf("write %s: %w", key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("write %s: %w", key, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("write %s at version %d: %w", key, expected, ErrVersionConflict)
	}
	return expected + 1, nil
}
