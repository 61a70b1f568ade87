// Package sqlite opens the default SQLite-backed store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/medtimer/medtimer-server/internal/store"
	"github.com/medtimer/medtimer-server/internal/store/sqlstore"
)

// Open opens the SQLite database at path and verifies the connection.
// The file is expected to exist; it is never created here.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite %s: %w", path, err)
	}
	return db, nil
}

// OpenMemory opens a private in-memory database. Each connection to
// :memory: is its own database, so the pool is pinned to one connection.
func OpenMemory() (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New wraps db as a store.
func New(db *sql.DB, f *store.Fetcher) *sqlstore.Store {
	return sqlstore.New(sqlstore.SQLite, db, f)
}

const schema = `
CREATE TABLE IF NOT EXISTS medication (
    uuid TEXT NOT NULL,
    name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS entry (
    uuid            TEXT NOT NULL,
    amount          INTEGER NOT NULL,
    time            TEXT NOT NULL,
    medication_uuid TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_medication_uuid ON medication(uuid);
CREATE INDEX IF NOT EXISTS idx_medication_name ON medication(name);
CREATE INDEX IF NOT EXISTS idx_entry_uuid ON entry(uuid);
CREATE INDEX IF NOT EXISTS idx_entry_time ON entry(time DESC);
CREATE INDEX IF NOT EXISTS idx_entry_medication ON entry(medication_uuid, time DESC);
`

// EnsureSchema creates the medication and entry tables when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite schema: %w", err)
	}
	return nil
}
