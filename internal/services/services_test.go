package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtimer/medtimer-server/internal/model"
	"github.com/medtimer/medtimer-server/internal/store"
)

// fakeStore records the filters it receives and serves canned data.
type fakeStore struct {
	meds    []model.Medication
	entries []model.Entry
	joined  []model.MedicationEntry

	medFilters   []model.MedicationFilter
	entryFilters []model.EntryFilter
	limits       []int
	gets         []uuid.UUID
}

func (f *fakeStore) Medications() store.Medications { return fakeMeds{f} }
func (f *fakeStore) Entries() store.Entries         { return fakeEntries{f} }

type fakeMeds struct{ f *fakeStore }

func (m fakeMeds) List(_ context.Context, flt model.MedicationFilter, limit int) []model.Medication {
	m.f.medFilters = append(m.f.medFilters, flt)
	m.f.limits = append(m.f.limits, limit)
	if limit < len(m.f.meds) {
		return m.f.meds[:limit]
	}
	return m.f.meds
}

func (m fakeMeds) Get(_ context.Context, id uuid.UUID) *model.Medication {
	m.f.gets = append(m.f.gets, id)
	for i := range m.f.meds {
		if m.f.meds[i].UUID == id {
			return &m.f.meds[i]
		}
	}
	return nil
}

type fakeEntries struct{ f *fakeStore }

func (e fakeEntries) List(_ context.Context, flt model.EntryFilter, limit int) []model.Entry {
	e.f.entryFilters = append(e.f.entryFilters, flt)
	e.f.limits = append(e.f.limits, limit)
	return e.f.entries
}

func (e fakeEntries) Get(_ context.Context, id uuid.UUID) *model.Entry {
	e.f.gets = append(e.f.gets, id)
	for i := range e.f.entries {
		if e.f.entries[i].UUID == id {
			return &e.f.entries[i]
		}
	}
	return nil
}

func (e fakeEntries) ListByMedicationName(_ context.Context, _ string, limit int) []model.MedicationEntry {
	e.f.limits = append(e.f.limits, limit)
	return e.f.joined
}

func TestMedicationService(t *testing.T) {
	aspirin := model.NewMedication("Aspirin")
	fs := &fakeStore{meds: []model.Medication{aspirin, model.NewMedication("Ibuprofen")}}
	svc := NewMedicationService(fs, zerolog.Nop())
	ctx := context.Background()

	assert.Len(t, svc.ListMedications(ctx, 1), 1)
	require.Len(t, fs.medFilters, 1)
	assert.Nil(t, fs.medFilters[0].UUID)
	assert.Nil(t, fs.medFilters[0].Name)

	got := svc.GetMedication(ctx, aspirin.UUID.String())
	require.NotNil(t, got)
	assert.Equal(t, aspirin, *got)

	// uppercase is still a valid uuid
	assert.NotNil(t, svc.GetMedication(ctx, strings.ToUpper(aspirin.UUID.String())))

	svc.ListMedicationsByName(ctx, "Aspirin", 50)
	require.Len(t, fs.medFilters, 2)
	require.NotNil(t, fs.medFilters[1].Name)
	assert.Equal(t, "Aspirin", *fs.medFilters[1].Name)
	assert.Equal(t, 50, fs.limits[len(fs.limits)-1])
}

func TestMedicationService_MalformedIDSkipsStore(t *testing.T) {
	fs := &fakeStore{}
	svc := NewMedicationService(fs, zerolog.Nop())

	assert.Nil(t, svc.GetMedication(context.Background(), "not-a-uuid"))
	assert.Empty(t, fs.gets)
}

func TestEntryService(t *testing.T) {
	med := model.NewMedication("Aspirin")
	e := model.NewEntry(10, time.Now(), med.UUID)
	fs := &fakeStore{entries: []model.Entry{e}, joined: []model.MedicationEntry{{EntryUUID: e.UUID, MedicationName: "Aspirin"}}}
	svc := NewEntryService(fs, zerolog.Nop())
	ctx := context.Background()

	assert.Len(t, svc.ListEntries(ctx, 100), 1)
	assert.Equal(t, model.EntryFilter{}, fs.entryFilters[0])

	got := svc.GetEntry(ctx, e.UUID.String())
	require.NotNil(t, got)
	assert.Equal(t, e.UUID, got.UUID)

	svc.ListEntriesByMedicationUUID(ctx, med.UUID.String(), 7)
	require.Len(t, fs.entryFilters, 2)
	require.NotNil(t, fs.entryFilters[1].MedicationUUID)
	assert.Equal(t, med.UUID, *fs.entryFilters[1].MedicationUUID)
	assert.Nil(t, fs.entryFilters[1].UUID)

	joined := svc.ListEntriesByMedicationName(ctx, "Aspirin", 3)
	require.Len(t, joined, 1)
	assert.Equal(t, 3, fs.limits[len(fs.limits)-1])
}

func TestEntryService_MalformedIDs(t *testing.T) {
	fs := &fakeStore{}
	svc := NewEntryService(fs, zerolog.Nop())
	ctx := context.Background()

	assert.Nil(t, svc.GetEntry(ctx, "12345"))
	got := svc.ListEntriesByMedicationUUID(ctx, "nope", 10)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, fs.gets)
	assert.Empty(t, fs.entryFilters)
}
