package sidecaches

import (
	"proxy-logs/internal/shared/metrics"
)

const (
	resultWritten   = "written"
	resultUnchanged = "unchanged"
	resultConflict  = "conflict"
	resultError     = "error"
)

var (
	metricSideCacheWriteTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSideCache,
			Name:      "write_total",
		},
		[]string{"document", "result"},
	)
)
