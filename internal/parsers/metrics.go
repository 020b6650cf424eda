package parsers

import (
	"proxy-logs/internal/shared/metrics"
)

const (
	outcomeMatched     = "matched"
	outcomeMalformed   = "malformed"
	outcomeIgnored     = "ignored"
	outcomeTooRecent   = "too_recent"
	outcomeFilteredOut = "filtered_out"
)

// metricLinesScannedTotal counts the log lines read by the backward scan, by outcome.
// Lines older than the window are never read, so the sum over outcomes tracks the work
// done per query rather than the size of the log files.
var (
	metricLinesScannedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubParser,
			Name:      "log_lines_scanned_total",
		},
		[]string{"outcome"},
	)
)
