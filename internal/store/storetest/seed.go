package storetest

import (
	"context"
	"testing"

	sq "github.com/Masterminds/squirrel"

	"github.com/medtimer/medtimer-server/internal/model"
)

func seedMedication(t *testing.T, fx Fixture, id, name string) {
	t.Helper()
	exec(t, fx, sq.Insert("medication").
		Columns("uuid", "name").
		Values(id, name))
}

func seedEntry(t *testing.T, fx Fixture, e model.Entry) {
	t.Helper()
	seedRawEntry(t, fx, e.UUID.String(), e.Amount, e.Time.String(), e.MedicationUUID.String())
}

// seedRawEntry writes column values verbatim so that tests can plant rows the
// decoders must reject.
func seedRawEntry(t *testing.T, fx Fixture, id string, amount int64, at, medicationID string) {
	t.Helper()
	exec(t, fx, sq.Insert("entry").
		Columns("uuid", "amount", "time", "medication_uuid").
		Values(id, amount, at, medicationID))
}

func exec(t *testing.T, fx Fixture, b sq.InsertBuilder) {
	t.Helper()
	text, args, err := b.PlaceholderFormat(fx.Placeholder).ToSql()
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}
	if _, err := fx.DB.ExecContext(context.Background(), text, args...); err != nil {
		t.Fatalf("seed: %v", err)
	}
}
