// Package sqlite provides SQLite-based storage for discodex services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set busy timeout to wait 5 seconds before failing on lock contention.
	// This prevents immediate "database is locked" errors.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Enable WAL mode for file-based databases for better write performance.
	// A catalog walk inserts hundreds of rows per run and WAL keeps reads
	// open while the scraper is writing.
	// Note: WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	// Create schema
	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
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

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	// All extracted fields are stored as normalized strings; an album with
	// a NULL enriched_at has only been seen in the catalog listing.
	schema := `
		CREATE TABLE IF NOT EXISTS albums (
			id TEXT PRIMARY KEY,
			artist TEXT NOT NULL DEFAULT '',
			album TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL UNIQUE,
			label TEXT NOT NULL DEFAULT '',
			format TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			release_date TEXT NOT NULL DEFAULT '',
			year TEXT NOT NULL DEFAULT '',
			genres TEXT NOT NULL DEFAULT '',
			in_collection TEXT NOT NULL DEFAULT '',
			in_wantlist TEXT NOT NULL DEFAULT '',
			avg_rating TEXT NOT NULL DEFAULT '',
			rating_count TEXT NOT NULL DEFAULT '',
			last_sale TEXT NOT NULL DEFAULT '',
			price_low TEXT NOT NULL DEFAULT '',
			price_mid TEXT NOT NULL DEFAULT '',
			price_high TEXT NOT NULL DEFAULT '',
			page_hash TEXT NOT NULL DEFAULT '',
			enriched_at TEXT,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_albums_artist ON albums(artist);
	`

	_, err := db.db.Exec(schema)
	return err
}
