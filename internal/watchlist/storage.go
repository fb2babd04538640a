// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watchlist persists bookmarked articles.
//
// Storage is a synced key-value namespace backed by SQLite: each slot holds
// one JSON value. The watch list lives in the "watchList" slot and is
// updated with a single transactional read-modify-write, so concurrent
// saves never observe an empty namespace or lose entries.
//
// See DESIGN.md § Bookmark Store.
package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/wiki-watch/pkg/types"
)

const dbFile = "wiki-watch.db"

// Storage is a key-value namespace persisted in SQLite.
type Storage struct {
	db   *sql.DB
	path string
}

// Open opens or creates the storage database at dataDir/wiki-watch.db and
// creates the schema if it does not exist.
func Open(cfg types.StorageConfig) (*Storage, error) {
	if cfg.DataDir == "" {
		return nil, errors.New("storage data directory is not configured")
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection serializes writers; read-modify-write stays atomic
	// without relying on busy retries.
	db.SetMaxOpenConns(1)

	s := &Storage{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Storage) Path() string {
	return s.path
}

func (s *Storage) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS sync_storage (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Get returns the value stored under key. ok is false when the slot is
// absent.
func (s *Storage) Get(ctx context.Context, key string) (value []byte, ok bool, err error) {
	return get(ctx, s.db, key)
}

// Set stores value under key, replacing any previous value.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	return set(ctx, s.db, key, value)
}

// Delete removes one slot. Deleting an absent slot is not an error.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sync_storage WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Clear removes every slot in the namespace.
func (s *Storage) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sync_storage`); err != nil {
		return fmt.Errorf("clearing storage: %w", err)
	}
	return nil
}

// Keys returns the occupied slot names in lexical order.
func (s *Storage) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM sync_storage ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// UpdateFunc computes the new value of a slot from its current value.
// ok is false when the slot is absent. Returning an error aborts the
// update and leaves the slot unchanged.
type UpdateFunc func(old []byte, ok bool) ([]byte, error)

// Update reads key, applies fn, and writes the result back inside one
// transaction. No other writer can interleave between the read and the
// write.
func (s *Storage) Update(ctx context.Context, key string, fn UpdateFunc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	old, ok, err := get(ctx, tx, key)
	if err != nil {
		return err
	}
	value, err := fn(old, ok)
	if err != nil {
		return err
	}
	if err := set(ctx, tx, key, value); err != nil {
		return err
	}
	return tx.Commit()
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func get(ctx context.Context, q querier, key string) ([]byte, bool, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM sync_storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func set(ctx context.Context, q querier, key string, value []byte) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO sync_storage (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		key, string(value), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
