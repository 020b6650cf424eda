package queries

import (
	"proxy-logs/internal/shared/metrics"
)

// actionLogQuery labels queries that read logs rather than answering an action.
const actionLogQuery = "get_data"

var (
	metricQueryTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubQuery,
			Name:      "total",
		},
		[]string{"action", metrics.FieldErrorCode},
	)

	metricQueryStageDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubQuery,
			Name:      "stage_duration_seconds",
			Buckets:   metrics.StageBuckets,
		},
		[]string{"stage"},
	)
)
