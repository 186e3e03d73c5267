// Package sqlite keeps every blob store in one SQLite database, one row per
// store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bnema/guide-cli/internal/adapters/repo/blob"
)

const schema = `CREATE TABLE IF NOT EXISTS blobs (
	store TEXT PRIMARY KEY,
	body BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// DB is an open blob database.
type DB struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens the database at path, creating the file and table as needed.
func Open(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create blobs table: %w", err)
	}

	return &DB{sqlDB: sqlDB, now: time.Now}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sqlDB == nil {
		return nil
	}
	return d.sqlDB.Close()
}

// Store returns the blob.Store for one named store.
func (d *DB) Store(name string) blob.Store {
	return &store{db: d, name: name}
}

type store struct {
	db   *DB
	name string
}

var _ blob.Store = (*store)(nil)

func (s *store) Read(ctx context.Context) ([]byte, error) {
	var body []byte
	err := s.db.sqlDB.QueryRowContext(ctx, `SELECT body FROM blobs WHERE store = ?`, s.name).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, blob.ErrNotFound
		}
		return nil, fmt.Errorf("read %s blob: %w", s.name, err)
	}
	return body, nil
}

func (s *store) Write(ctx context.Context, data []byte) error {
	_, err := s.db.sqlDB.ExecContext(
		ctx,
		`INSERT INTO blobs (store, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(store) DO UPDATE SET
		    body = excluded.body,
		    updated_at = excluded.updated_at`,
		s.name,
		data,
		s.db.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("write %s blob: %w", s.name, err)
	}
	return nil
}

func (s *store) Delete(ctx context.Context) error {
	if _, err := s.db.sqlDB.ExecContext(ctx, `DELETE FROM blobs WHERE store = ?`, s.name); err != nil {
		return fmt.Errorf("delete %s blob: %w", s.name, err)
	}
	return nil
}
