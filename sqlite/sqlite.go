// Package sqlite provides SQLite-based storage for docidx sites and entries.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fwojciec/docidx"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// SchemaVersion is stored in PRAGMA user_version once the schema exists.
const SchemaVersion = 1

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use MemoryPath for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// pragmas run on every open, in order. WAL does not apply to memory databases.
func (db *DB) pragmas() []string {
	p := []string{"PRAGMA busy_timeout = 5000"}
	if db.path != MemoryPath {
		p = append(p, "PRAGMA journal_mode = WAL")
	}
	return append(p, "PRAGMA foreign_keys = ON")
}

// Open opens the database connection and creates the schema if needed.
// A database written by a newer schema version is rejected.
func (db *DB) Open() (err error) {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err != nil {
			conn.Close()
		}
	}()

	// One writer at a time.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	for _, p := range db.pragmas() {
		if _, err := conn.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}

	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > SchemaVersion {
		return docidx.Errorf(docidx.EINVALID, "database schema version %d is newer than supported version %d", version, SchemaVersion)
	}
	if version < SchemaVersion {
		if err := migrate(conn); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	db.db = conn
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}

const schema = `
	CREATE TABLE IF NOT EXISTS sites (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		source_url TEXT NOT NULL,
		index_url TEXT NOT NULL DEFAULT '',
		content_hash TEXT NOT NULL DEFAULT '',
		entry_count INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		refreshed_at TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS entries (
		site_id TEXT NOT NULL REFERENCES sites(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		location TEXT NOT NULL,
		page TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		text TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (site_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_entries_location ON entries(site_id, location);
	CREATE INDEX IF NOT EXISTS idx_entries_category ON entries(site_id, category);
`

// migrate creates the schema and stamps its version in one transaction.
func migrate(conn *sql.DB) error {
	tx, err := conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schema); err != nil {
		return err
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}
