package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "medtimer",
			Subsystem: "store",
			Name:      "query_duration_seconds",
			Help:      "Wall time of a fetch, from query start to the last decoded row.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"table"},
	)

	rowsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medtimer",
			Subsystem: "store",
			Name:      "rows_dropped_total",
			Help:      "Rows skipped because they did not decode.",
		},
		[]string{"table"},
	)

	failuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medtimer",
			Subsystem: "store",
			Name:      "failures_total",
			Help:      "Store failures that turned into an empty or partial result.",
		},
		[]string{"table", "kind"},
	)
)
