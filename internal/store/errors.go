package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind labels a store failure for logs. Callers never branch on it; every
// kind collapses to an empty or partial result at the HTTP boundary.
type Kind string

const (
	KindNoRows        Kind = "no_rows"
	KindDecode        Kind = "decode"
	KindTimeout       Kind = "timeout"
	KindCanceled      Kind = "canceled"
	KindPoolExhausted Kind = "pool_exhausted"
	KindConnectivity  Kind = "connectivity"
	KindQuery         Kind = "query"
)

// DecodeError reports a row that could not be turned into a record.
type DecodeError struct {
	Field string
	// RowID is the raw uuid text of the row when it could be read.
	RowID string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode row: %v", e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Classify maps err onto a Kind.
func Classify(err error) Kind {
	var decodeErr *DecodeError
	var netErr net.Error
	var connectErr *pgconn.ConnectError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, sql.ErrNoRows):
		return KindNoRows
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.As(err, &connectErr),
		errors.As(err, &netErr):
		return KindConnectivity
	default:
		return KindQuery
	}
}
