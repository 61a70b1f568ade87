package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medtimer/medtimer-server/internal/model"
	"github.com/medtimer/medtimer-server/internal/store"
)

type MedicationService struct {
	store store.Store
	log   zerolog.Logger
}

func NewMedicationService(s store.Store, log zerolog.Logger) *MedicationService {
	return &MedicationService{store: s, log: log.With().Str("service", "medications").Logger()}
}

func (s *MedicationService) ListMedications(ctx context.Context, limit int) []model.Medication {
	return s.store.Medications().List(ctx, model.MedicationFilter{}, limit)
}

// GetMedication resolves rawID to a medication. An id that is not a UUID
// cannot match any row, so it returns nil without touching the store.
func (s *MedicationService) GetMedication(ctx context.Context, rawID string) *model.Medication {
	id, ok := parseID(s.log, "uuid", rawID)
	if !ok {
		return nil
	}
	return s.store.Medications().Get(ctx, id)
}

func (s *MedicationService) ListMedicationsByName(ctx context.Context, name string, limit int) []model.Medication {
	return s.store.Medications().List(ctx, model.MedicationFilter{Name: &name}, limit)
}

func parseID(log zerolog.Logger, param, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		log.Debug().Err(err).Str("param", param).Str("value", raw).Msg("ignoring malformed uuid")
		return uuid.Nil, false
	}
	return id, true
}
