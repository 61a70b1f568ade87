package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/medtimer/medtimer-server/internal/model"
	"github.com/medtimer/medtimer-server/internal/store"
)

// EntryService serves dosage entries. Every listing is most recent first.
type EntryService struct {
	store store.Store
	log   zerolog.Logger
}

func NewEntryService(s store.Store, log zerolog.Logger) *EntryService {
	return &EntryService{store: s, log: log.With().Str("service", "entries").Logger()}
}

func (s *EntryService) ListEntries(ctx context.Context, limit int) []model.Entry {
	return s.store.Entries().List(ctx, model.EntryFilter{}, limit)
}

func (s *EntryService) GetEntry(ctx context.Context, rawID string) *model.Entry {
	id, ok := parseID(s.log, "uuid", rawID)
	if !ok {
		return nil
	}
	return s.store.Entries().Get(ctx, id)
}

func (s *EntryService) ListEntriesByMedicationUUID(ctx context.Context, rawID string, limit int) []model.Entry {
	id, ok := parseID(s.log, "medication_uuid", rawID)
	if !ok {
		return []model.Entry{}
	}
	return s.store.Entries().List(ctx, model.EntryFilter{MedicationUUID: &id}, limit)
}

func (s *EntryService) ListEntriesByMedicationName(ctx context.Context, name string, limit int) []model.MedicationEntry {
	return s.store.Entries().ListByMedicationName(ctx, name, limit)
}
