package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/medtimer/medtimer-server/internal/model"
)

// Store exposes the read operations required by services.
// Implementations live under internal/store/<driver>/ (sqlite, postgres).
//
// No method returns an error: store failures are logged by the implementation
// and surface as an empty result or a nil record.
type Store interface {
	Medications() Medications
	Entries() Entries
}

type Medications interface {
	// List returns up to limit medications matching f.
	List(ctx context.Context, f model.MedicationFilter, limit int) []model.Medication
	// Get returns the medication with the given uuid, or nil.
	Get(ctx context.Context, id uuid.UUID) *model.Medication
}

type Entries interface {
	// List returns up to limit entries matching f, most recent first.
	List(ctx context.Context, f model.EntryFilter, limit int) []model.Entry
	// Get returns the entry with the given uuid, or nil.
	Get(ctx context.Context, id uuid.UUID) *model.Entry
	// ListByMedicationName joins entries with their medication and returns up
	// to limit rows whose medication has exactly the given name, most recent first.
	ListByMedicationName(ctx context.Context, name string, limit int) []model.MedicationEntry
}
