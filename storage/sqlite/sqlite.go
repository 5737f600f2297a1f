// Package sqlite persists contact collections in a local SQLite database.
//
// Each namespace is one row holding the serialized collection, so a Save is a
// single atomic upsert.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/spachava753/crm/contacts"
)

const schema = `CREATE TABLE IF NOT EXISTS kv_store (
	namespace  TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Store is a contacts.Store backed by SQLite.
type Store struct {
	db *sql.DB
}

var _ contacts.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite: database path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: creating database directory failed: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", escapePath(path))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database failed: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: connecting to database failed: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: creating schema failed: %w", err)
	}
	return &Store{db: db}, nil
}

// escapePath percent-encodes each segment so that '?', '#' and '%' in a file
// name stay part of the name instead of starting the URI query or fragment.
func escapePath(path string) string {
	segments := strings.Split(filepath.ToSlash(path), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

// Load returns the record saved under namespace, or contacts.ErrNoRecord.
func (s *Store) Load(ctx context.Context, namespace string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_store WHERE namespace = ?`, namespace,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contacts.ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading namespace %q failed: %w", namespace, err)
	}
	return value, nil
}

// Save replaces the record under namespace.
func (s *Store) Save(ctx context.Context, namespace string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_store (namespace, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(namespace) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		namespace, data, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: writing namespace %q failed: %w", namespace, err)
	}
	return nil
}

// Namespaces lists the namespaces that hold a record, sorted.
func (s *Store) Namespaces(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT namespace FROM kv_store ORDER BY namespace`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing namespaces failed: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var namespace string
		if err := rows.Scan(&namespace); err != nil {
			return nil, fmt.Errorf("sqlite: scanning namespace failed: %w", err)
		}
		out = append(out, namespace)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating namespaces failed: %w", err)
	}
	return out, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
