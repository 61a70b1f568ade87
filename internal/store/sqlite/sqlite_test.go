package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/medtimer/medtimer-server/internal/model"
	"github.com/medtimer/medtimer-server/internal/store"
	"github.com/medtimer/medtimer-server/internal/store/sqlstore"
	"github.com/medtimer/medtimer-server/internal/store/storetest"
)

func makeMemoryFixture(t *testing.T) storetest.Fixture {
	t.Helper()
	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, EnsureSchema(context.Background(), db))

	f := store.NewFetcher(db, zerolog.Nop(), time.Second)
	return storetest.Fixture{
		Store:       New(db, f),
		DB:          db,
		Placeholder: sqlstore.SQLite.Placeholder,
	}
}

func TestSQLiteStore_Compliance(t *testing.T) {
	storetest.Run(t, makeMemoryFixture)
}

func TestOpen_FileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medtimer.db")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, EnsureSchema(context.Background(), db))
	// idempotent
	require.NoError(t, EnsureSchema(context.Background(), db))

	s := New(db, store.NewFetcher(db, zerolog.Nop(), time.Second))
	require.NoError(t, s.HealthPing(context.Background()))

	m := model.NewMedication("Aspirin")
	_, err = db.Exec(`INSERT INTO medication (uuid, name) VALUES (?, ?)`, m.UUID.String(), m.Name)
	require.NoError(t, err)

	got := s.Medications().Get(context.Background(), m.UUID)
	require.NotNil(t, got)
	require.Equal(t, m, *got)
}

func TestHealthPing_ClosedDB(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	s := New(db, store.NewFetcher(db, zerolog.Nop(), time.Second))
	require.NoError(t, db.Close())
	require.Error(t, s.HealthPing(context.Background()))
}
