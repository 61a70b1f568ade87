// Package sqlstore implements store.Store over database/sql. Statements are
// built with squirrel so that an absent filter simply omits its predicate;
// the driver packages only choose the placeholder dialect.
package sqlstore

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/medtimer/medtimer-server/internal/model"
	"github.com/medtimer/medtimer-server/internal/store"
)

const (
	TableMedication = "medication"
	TableEntry      = "entry"
)

// Dialect captures what differs between the supported SQL engines.
type Dialect struct {
	Name        string
	Placeholder sq.PlaceholderFormat
}

var (
	SQLite   = Dialect{Name: "sqlite", Placeholder: sq.Question}
	Postgres = Dialect{Name: "postgres", Placeholder: sq.Dollar}
)

// Store is safe for concurrent use; it holds only the injected pool.
type Store struct {
	db      *sql.DB
	fetcher *store.Fetcher
	dialect Dialect
	sb      sq.StatementBuilderType
}

func New(d Dialect, db *sql.DB, f *store.Fetcher) *Store {
	return &Store{
		db:      db,
		fetcher: f,
		dialect: d,
		sb:      sq.StatementBuilder.PlaceholderFormat(d.Placeholder),
	}
}

func (s *Store) Medications() store.Medications { return &medications{s: s} }
func (s *Store) Entries() store.Entries         { return &entries{s: s} }

// Dialect reports the engine this store was built for.
func (s *Store) Dialect() Dialect { return s.dialect }

// HealthPing implements health.HealthPinger.
func (s *Store) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// query renders b. A build failure is a programming error; it is logged and
// reported as !ok so callers fall back to an empty result.
func (s *Store) query(table string, b sq.Sqlizer) (store.Query, bool) {
	text, args, err := b.ToSql()
	if err != nil {
		log := s.fetcher.Logger()
		log.Error().Stack().Err(err).
			Str("kind", string(store.KindQuery)).
			Str("table", table).
			Msg("build query")
		return store.Query{}, false
	}
	return store.Query{Table: table, SQL: text, Args: args}, true
}

// --- Medications ---

type medications struct{ s *Store }

func (m *medications) selectWhere(f model.MedicationFilter) sq.SelectBuilder {
	sel := m.s.sb.Select(store.MedicationColumns...).From(TableMedication)
	if f.UUID != nil {
		sel = sel.Where(sq.Eq{"uuid": f.UUID.String()})
	}
	if f.Name != nil {
		sel = sel.Where(sq.Eq{"name": *f.Name})
	}
	return sel
}

func (m *medications) List(ctx context.Context, f model.MedicationFilter, limit int) []model.Medication {
	q, ok := m.s.query(TableMedication, m.selectWhere(f))
	if !ok {
		return []model.Medication{}
	}
	return store.Fetch(ctx, m.s.fetcher, q, limit, store.DecodeMedication)
}

func (m *medications) Get(ctx context.Context, id uuid.UUID) *model.Medication {
	q, ok := m.s.query(TableMedication, m.selectWhere(model.MedicationFilter{UUID: &id}))
	if !ok {
		return nil
	}
	return store.FetchOne(ctx, m.s.fetcher, q, store.DecodeMedication)
}

// --- Entries ---

type entries struct{ s *Store }

func (e *entries) selectWhere(f model.EntryFilter) sq.SelectBuilder {
	sel := e.s.sb.Select(store.EntryColumns...).From(TableEntry)
	if f.UUID != nil {
		sel = sel.Where(sq.Eq{"uuid": f.UUID.String()})
	}
	if f.MedicationUUID != nil {
		sel = sel.Where(sq.Eq{"medication_uuid": f.MedicationUUID.String()})
	}
	// canonical time strings sort chronologically
	return sel.OrderBy("time DESC")
}

func (e *entries) List(ctx context.Context, f model.EntryFilter, limit int) []model.Entry {
	q, ok := e.s.query(TableEntry, e.selectWhere(f))
	if !ok {
		return []model.Entry{}
	}
	return store.Fetch(ctx, e.s.fetcher, q, limit, store.DecodeEntry)
}

func (e *entries) Get(ctx context.Context, id uuid.UUID) *model.Entry {
	q, ok := e.s.query(TableEntry, e.selectWhere(model.EntryFilter{UUID: &id}))
	if !ok {
		return nil
	}
	return store.FetchOne(ctx, e.s.fetcher, q, store.DecodeEntry)
}

func (e *entries) ListByMedicationName(ctx context.Context, name string, limit int) []model.MedicationEntry {
	sel := e.s.sb.Select(
		"e.uuid AS entry_uuid",
		"e.amount AS entry_amount",
		"e.time AS entry_time",
		"m.uuid AS medication_uuid",
		"m.name AS medication_name",
	).
		From(TableEntry + " e").
		Join(TableMedication + " m ON m.uuid = e.medication_uuid").
		Where(sq.Eq{"m.name": name}).
		OrderBy("e.time DESC")

	q, ok := e.s.query(TableEntry, sel)
	if !ok {
		return []model.MedicationEntry{}
	}
	return store.Fetch(ctx, e.s.fetcher, q, limit, store.DecodeMedicationEntry)
}
