package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// DefaultQueryTimeout bounds a fetch when the caller configures none.
const DefaultQueryTimeout = 5 * time.Second

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Query is a fixed statement, its bind values and the table it reads, which
// is only used to give log lines context.
type Query struct {
	Table string
	SQL   string
	Args  []any
}

// Fetcher runs queries for the generic fetch helpers. It owns no state beyond
// its collaborators and is safe for concurrent use.
type Fetcher struct {
	q       Querier
	stats   func() sql.DBStats
	log     zerolog.Logger
	sqlLog  zerolog.Logger
	timeout time.Duration
}

// NewFetcher wraps a connection pool. A non-positive timeout selects
// DefaultQueryTimeout.
func NewFetcher(db *sql.DB, log zerolog.Logger, timeout time.Duration) *Fetcher {
	f := NewFetcherWithQuerier(db, log, timeout)
	f.stats = db.Stats
	return f
}

// NewFetcherWithQuerier builds a Fetcher over any Querier. Without pool stats
// exhaustion cannot be told apart from a plain timeout.
func NewFetcherWithQuerier(q Querier, log zerolog.Logger, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &Fetcher{
		q:       q,
		log:     log,
		sqlLog:  log,
		timeout: timeout,
	}
}

// WithSQLLogger sets the logger used for statement tracing.
func (f *Fetcher) WithSQLLogger(l zerolog.Logger) *Fetcher {
	f.sqlLog = l
	return f
}

// Logger returns the fetcher's diagnostic logger.
func (f *Fetcher) Logger() zerolog.Logger { return f.log }

// Fetch executes q and decodes rows in store order until limit records have
// decoded successfully. Rows that fail to decode are logged and skipped.
// Any store failure is logged and yields whatever was decoded before it, so
// the result is never nil and no error escapes.
func Fetch[T any](ctx context.Context, f *Fetcher, q Query, limit int, decode Decoder[T]) []T {
	out := make([]T, 0)
	if limit <= 0 {
		return out
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	f.sqlLog.Debug().
		Str("table", q.Table).
		Str("query", q.SQL).
		Interface("args", q.Args).
		Int("limit", limit).
		Msg("query")

	start := time.Now()
	defer func() { queryDuration.WithLabelValues(q.Table).Observe(time.Since(start).Seconds()) }()

	rows, err := f.q.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		f.storeFailure(err, q, "query failed")
		return out
	}
	defer func() { _ = rows.Close() }()

	dropped := 0
	for len(out) < limit && rows.Next() {
		rec, err := decode(rows)
		if err != nil {
			dropped++
			f.decodeFailure(err, q)
			continue
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		f.storeFailure(err, q, "row iteration failed")
	}

	f.sqlLog.Trace().
		Str("table", q.Table).
		Int("returned", len(out)).
		Int("dropped", dropped).
		Dur("elapsed", time.Since(start)).
		Msg("query done")
	return out
}

// FetchOne runs q with a limit of one. It returns nil when no row decodes.
func FetchOne[T any](ctx context.Context, f *Fetcher, q Query, decode Decoder[T]) *T {
	recs := Fetch(ctx, f, q, 1, decode)
	if len(recs) == 0 {
		f.log.Debug().
			Str("kind", string(KindNoRows)).
			Str("table", q.Table).
			Interface("args", q.Args).
			Msg("no matching row")
		return nil
	}
	return &recs[0]
}

func (f *Fetcher) classify(err error) Kind {
	kind := Classify(err)
	if kind == KindTimeout && f.stats != nil {
		st := f.stats()
		if st.MaxOpenConnections > 0 && st.InUse >= st.MaxOpenConnections {
			return KindPoolExhausted
		}
	}
	return kind
}

func (f *Fetcher) storeFailure(err error, q Query, msg string) {
	kind := f.classify(err)
	failuresTotal.WithLabelValues(q.Table, string(kind)).Inc()
	ev := f.log.Error()
	if kind == KindCanceled {
		// the client went away; nothing for an operator to fix
		ev = f.log.Debug()
	}
	ev.Stack().Err(err).
		Str("kind", string(kind)).
		Str("table", q.Table).
		Str("query", q.SQL).
		Msg(msg)
}

func (f *Fetcher) decodeFailure(err error, q Query) {
	rowsDroppedTotal.WithLabelValues(q.Table).Inc()
	ev := f.log.Debug().Err(err).
		Str("kind", string(KindDecode)).
		Str("table", q.Table)
	var de *DecodeError
	if errors.As(err, &de) {
		ev = ev.Str("field", de.Field).Str("row_uuid", de.RowID)
	}
	ev.Msg("dropping undecodable row")
}
