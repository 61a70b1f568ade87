package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_CountsDroppedRows(t *testing.T) {
	db := openMemDB(t)
	insertMed(t, db, "broken", "a")
	insertMed(t, db, "6F1C3B8E-2A4D-4F6B-9C1E-0D2B3A4C5E6F", "b")
	insertMed(t, db, uuid.NewString(), "c")
	f := NewFetcher(db, zerolog.Nop(), time.Second)

	dropped := rowsDroppedTotal.WithLabelValues("medication")
	before := testutil.ToFloat64(dropped)

	got := Fetch(context.Background(), f, medQuery, 10, DecodeMedication)
	require.Len(t, got, 1)
	assert.Equal(t, before+2, testutil.ToFloat64(dropped))
}

func TestFetch_CountsFailuresByKind(t *testing.T) {
	db := openMemDB(t)
	f := NewFetcher(db, zerolog.Nop(), time.Second)
	q := Query{Table: "medication", SQL: `SELECT name, uuid FROM no_such_table`}

	failures := failuresTotal.WithLabelValues("medication", string(KindQuery))
	before := testutil.ToFloat64(failures)

	assert.Empty(t, Fetch(context.Background(), f, q, 10, DecodeMedication))
	assert.Equal(t, before+1, testutil.ToFloat64(failures))
}

func TestFetch_ObservesDuration(t *testing.T) {
	db := openMemDB(t)
	f := NewFetcher(db, zerolog.Nop(), time.Second)
	before := testutil.CollectAndCount(queryDuration)

	Fetch(context.Background(), f, Query{Table: "duration_" + uuid.NewString(), SQL: medQuery.SQL}, 1, DecodeMedication)
	assert.Equal(t, before+1, testutil.CollectAndCount(queryDuration))
}
