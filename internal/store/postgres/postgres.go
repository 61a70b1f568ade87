// Package postgres opens a Postgres-backed store through the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/medtimer/medtimer-server/internal/store"
	"github.com/medtimer/medtimer-server/internal/store/sqlstore"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New wraps db as a store.
func New(db *sql.DB, f *store.Fetcher) *sqlstore.Store {
	return sqlstore.New(sqlstore.Postgres, db, f)
}

// Columns are plain TEXT; the decoders validate them. time uses the C
// collation so that ordering is byte-wise.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS medication (
        uuid TEXT NOT NULL,
        name TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS entry (
        uuid            TEXT NOT NULL,
        amount          BIGINT NOT NULL,
        time            TEXT COLLATE "C" NOT NULL,
        medication_uuid TEXT NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_medication_uuid ON medication(uuid)`,
	`CREATE INDEX IF NOT EXISTS idx_medication_name ON medication(name)`,
	`CREATE INDEX IF NOT EXISTS idx_entry_uuid ON entry(uuid)`,
	`CREATE INDEX IF NOT EXISTS idx_entry_time ON entry(time DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_entry_medication ON entry(medication_uuid, time DESC)`,
}

// EnsureSchema creates the medication and entry tables when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("postgres schema: %w", err)
		}
	}
	return nil
}

// Truncate empties both tables. Tests use it to isolate runs sharing a database.
func Truncate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `TRUNCATE medication, entry`)
	return err
}
