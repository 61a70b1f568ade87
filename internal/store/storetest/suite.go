// Package storetest holds a compliance suite shared by every store driver.
package storetest

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/medtimer/medtimer-server/internal/model"
	"github.com/medtimer/medtimer-server/internal/store"
)

// Fixture is a clean store together with the handle used to seed it.
type Fixture struct {
	Store       store.Store
	DB          *sql.DB
	Placeholder sq.PlaceholderFormat
}

// Run exercises the read contract against a store.Store implementation.
// makeFixture must return an empty, isolated store on every call.
func Run(t *testing.T, makeFixture func(t *testing.T) Fixture) {
	t.Helper()

	t.Run("medications/round trip", func(t *testing.T) {
		fx := makeFixture(t)
		ctx := context.Background()

		m := model.NewMedication("Aspirin")
		seedMedication(t, fx, m.UUID.String(), m.Name)
		seedMedication(t, fx, uuid.NewString(), "Ibuprofen")

		got := fx.Store.Medications().Get(ctx, m.UUID)
		if got == nil || *got != m {
			t.Fatalf("Get: want %+v, got %+v", m, got)
		}
		if got := fx.Store.Medications().Get(ctx, uuid.New()); got != nil {
			t.Fatalf("Get unknown: want nil, got %+v", got)
		}
	})

	t.Run("medications/list respects limit", func(t *testing.T) {
		fx := makeFixture(t)
		ctx := context.Background()
		for i := 0; i < 7; i++ {
			seedMedication(t, fx, uuid.NewString(), "Paracetamol")
		}

		if n := len(fx.Store.Medications().List(ctx, model.MedicationFilter{}, 3)); n != 3 {
			t.Fatalf("List limit 3: got %d", n)
		}
		if n := len(fx.Store.Medications().List(ctx, model.MedicationFilter{}, 100)); n != 7 {
			t.Fatalf("List limit 100: got %d", n)
		}
		if got := fx.Store.Medications().List(ctx, model.MedicationFilter{}, 0); got == nil || len(got) != 0 {
			t.Fatalf("List limit 0: got %v", got)
		}
	})

	t.Run("medications/by name is exact", func(t *testing.T) {
		fx := makeFixture(t)
		ctx := context.Background()
		seedMedication(t, fx, uuid.NewString(), "Aspirin")
		seedMedication(t, fx, uuid.NewString(), "Aspirin")
		seedMedication(t, fx, uuid.NewString(), "Aspirin Forte")
		seedMedication(t, fx, uuid.NewString(), "aspirin")

		name := "Aspirin"
		got := fx.Store.Medications().List(ctx, model.MedicationFilter{Name: &name}, 100)
		if len(got) != 2 {
			t.Fatalf("List by name: want 2, got %d (%+v)", len(got), got)
		}
		for _, m := range got {
			if m.Name != name {
				t.Fatalf("List by name: unexpected %q", m.Name)
			}
		}
	})

	t.Run("medications/invalid rows dropped", func(t *testing.T) {
		fx := makeFixture(t)
		ctx := context.Background()
		seedMedication(t, fx, "not-a-uuid", "Broken")
		good := model.NewMedication("Fine")
		seedMedication(t, fx, good.UUID.String(), good.Name)

		got := fx.Store.Medications().List(ctx, model.MedicationFilter{}, 100)
		if len(got) != 1 || got[0] != good {
			t.Fatalf("List: want only %+v, got %+v", good, got)
		}
		got = fx.Store.Medications().List(ctx, model.MedicationFilter{}, 1)
		if len(got) != 1 || got[0] != good {
			t.Fatalf("List limit 1 must count decoded rows: got %+v", got)
		}
	})

	t.Run("medications/non-canonical uuid text dropped", func(t *testing.T) {
		fx := makeFixture(t)
		ctx := context.Background()
		seedMedication(t, fx, "6F1C3B8E-2A4D-4F6B-9C1E-0D2B3A4C5E6F", "Upper")
		seedMedication(t, fx, "0a1b2c3d4e5f4a6b8c7d9e0f1a2b3c4d", "NoDashes")
		seedMedication(t, fx, "{11111111-2222-4333-8444-555555555555}", "Braced")
		good := model.NewMedication("Fine")
		seedMedication(t, fx, good.UUID.String(), good.Name)

		got := fx.Store.Medications().List(ctx, model.MedicationFilter{}, 100)
		if len(got) != 1 || got[0] != good {
			t.Fatalf("List: want only %+v, got %+v", good, got)
		}
		for _, m := range got {
			if byID := fx.Store.Medications().Get(ctx, m.UUID); byID == nil || *byID != m {
				t.Fatalf("Get(%s) of a listed medication: got %+v", m.UUID, byID)
			}
		}

		at := model.NewTimestamp(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).String()
		seedRawEntry(t, fx, uuid.NewString(), 5, at, strings.ToUpper(good.UUID.String()))
		if got := fx.Store.Entries().List(ctx, model.EntryFilter{}, 100); len(got) != 0 {
			t.Fatalf("entry with uppercase medication uuid must be dropped, got %+v", got)
		}
	})

	t.Run("entries/most recent first", func(t *testing.T) {
		fx := makeFixture(t)
		ctx := context.Background()
		med := model.NewMedication("Aspirin")
		seedMedication(t, fx, med.UUID.String(), med.Name)

		base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
		for _, offset := range []time.Duration{3 * time.Hour, 0, 26 * time.Hour, time.Minute, 90 * time.Second} {
			seedEntry(t, fx, model.NewEntry(100, base.Add(offset), med.UUID))
		}

		got := fx.Store.Entries().List(ctx, model.EntryFilter{}, 100)
		if len(got) != 5 {
			t.Fatalf("List: want 5, got %d", len(got))
		}
		assertMostRecentFirst(t, entryTimes(got))

		capped := fx.Store.Entries().List(ctx, model.EntryFilter{}, 2)
		if len(capped) != 2 || !capped[0].Time.Equal(base.Add(26*time.Hour)) {
			t.Fatalf("List limit 2: got %+v", capped)
		}
	})

	t.Run("entries/by uuid and medication", func(t *testing.T) {
		fx := makeFixture(t)
		ctx := context.Background()
		a := model.NewMedication("Aspirin")
		b := model.NewMedication("Ibuprofen")
		seedMedication(t, fx, a.UUID.String(), a.Name)
		seedMedication(t, fx, b.UUID.String(), b.Name)

		base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		var target model.Entry
		for i := 0; i < 4; i++ {
			e := model.NewEntry(int64(i*100), base.Add(time.Duration(i)*time.Hour), a.UUID)
			seedEntry(t, fx, e)
			if i == 2 {
				target = e
			}
		}
		seedEntry(t, fx, model.NewEntry(400, base, b.UUID))

		got := fx.Store.Entries().Get(ctx, target.UUID)
		if got == nil || got.UUID != target.UUID || got.Amount != target.Amount ||
			got.MedicationUUID != a.UUID || !got.Time.Equal(target.Time.Time) {
			t.Fatalf("Get: want %+v, got %+v", target, got)
		}
		if got := fx.Store.Entries().Get(ctx, uuid.New()); got != nil {
			t.Fatalf("Get unknown: want nil, got %+v", got)
		}

		byMed := fx.Store.Entries().List(ctx, model.EntryFilter{MedicationUUID: &a.UUID}, 100)
		if len(byMed) != 4 {
			t.Fatalf("List by medication: want 4, got %d", len(byMed))
		}
		for _, e := range byMed {
			if e.MedicationUUID != a.UUID {
				t.Fatalf("List by medication: foreign entry %+v", e)
			}
		}
		assertMostRecentFirst(t, entryTimes(byMed))
	})

	t.Run("entries/invalid rows dropped", func(t *testing.T) {
		fx := makeFixture(t)
		ctx := context.Background()
		med := model.NewMedication("Aspirin")
		seedMedication(t, fx, med.UUID.String(), med.Name)

		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		ok := model.NewEntry(5, base, med.UUID)
		seedEntry(t, fx, ok)
		seedRawEntry(t, fx, "garbage", 5, model.NewTimestamp(base.Add(time.Hour)).String(), med.UUID.String())
		seedRawEntry(t, fx, uuid.NewString(), 5, model.NewTimestamp(base.Add(2*time.Hour)).String(), "also-garbage")
		seedRawEntry(t, fx, uuid.NewString(), -3, model.NewTimestamp(base.Add(3*time.Hour)).String(), med.UUID.String())
		seedRawEntry(t, fx, uuid.NewString(), 5, "not a time", med.UUID.String())

		got := fx.Store.Entries().List(ctx, model.EntryFilter{}, 100)
		if len(got) != 1 || got[0].UUID != ok.UUID {
			t.Fatalf("List: want only %s, got %+v", ok.UUID, got)
		}
	})

	t.Run("entries/joined by medication name", func(t *testing.T) {
		fx := makeFixture(t)
		ctx := context.Background()
		aspirin := model.NewMedication("Aspirin")
		other := model.NewMedication("Ibuprofen")
		seedMedication(t, fx, aspirin.UUID.String(), aspirin.Name)
		seedMedication(t, fx, other.UUID.String(), other.Name)

		base := time.Date(2024, 7, 1, 6, 0, 0, 0, time.UTC)
		want := map[uuid.UUID]model.Entry{}
		for i := 0; i < 5; i++ {
			e := model.NewEntry(int64(75+i), base.Add(time.Duration(i)*time.Hour), aspirin.UUID)
			seedEntry(t, fx, e)
			want[e.UUID] = e
		}
		seedEntry(t, fx, model.NewEntry(200, base.Add(10*time.Hour), other.UUID))
		// newer than every valid row, so they would lead the result if kept
		seedRawEntry(t, fx, "garbage", 90, model.NewTimestamp(base.Add(20*time.Hour)).String(), aspirin.UUID.String())
		seedRawEntry(t, fx, uuid.NewString(), 91, "not a time", aspirin.UUID.String())
		seedRawEntry(t, fx, uuid.NewString(), -1, model.NewTimestamp(base.Add(21*time.Hour)).String(), aspirin.UUID.String())

		got := fx.Store.Entries().ListByMedicationName(ctx, "Aspirin", 3)
		if len(got) != 3 {
			t.Fatalf("ListByMedicationName: want 3, got %d", len(got))
		}
		times := make([]time.Time, 0, len(got))
		for _, me := range got {
			e, found := want[me.EntryUUID]
			if !found {
				t.Fatalf("ListByMedicationName: unexpected entry %+v", me)
			}
			if me.MedicationName != "Aspirin" || me.MedicationUUID != aspirin.UUID ||
				me.EntryAmount != e.Amount || !me.EntryTime.Equal(e.Time.Time) {
				t.Fatalf("ListByMedicationName: mismatched row %+v for %+v", me, e)
			}
			times = append(times, me.EntryTime.Time)
		}
		assertMostRecentFirst(t, times)
		if !times[0].Equal(base.Add(4 * time.Hour)) {
			t.Fatalf("ListByMedicationName: newest first, got %s", times[0])
		}

		if got := fx.Store.Entries().ListByMedicationName(ctx, "Unknown", 10); got == nil || len(got) != 0 {
			t.Fatalf("ListByMedicationName unknown: got %v", got)
		}
	})
}

func entryTimes(es []model.Entry) []time.Time {
	out := make([]time.Time, len(es))
	for i, e := range es {
		out[i] = e.Time.Time
	}
	return out
}

func assertMostRecentFirst(t *testing.T, ts []time.Time) {
	t.Helper()
	if !sort.SliceIsSorted(ts, func(i, j int) bool { return ts[i].After(ts[j]) }) {
		t.Fatalf("not most-recent-first: %v", ts)
	}
	for i := 1; i < len(ts); i++ {
		if model.NewTimestamp(ts[i-1]).String() < model.NewTimestamp(ts[i]).String() {
			t.Fatalf("canonical strings increase at %d: %v", i, ts)
		}
	}
}
