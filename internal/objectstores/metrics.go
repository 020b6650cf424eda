package objectstores

import (
	"proxy-logs/internal/shared/metrics"
)

var (
	metricObjectsDownloadedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubObjectStore,
			Name:      "objects_downloaded_total",
		},
		[]string{"bucket_type", metrics.FieldErrorCode},
	)

	metricObjectBytesDownloadedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubObjectStore,
			Name:      "object_bytes_downloaded_total",
		},
		[]string{"bucket_type"},
	)
)
