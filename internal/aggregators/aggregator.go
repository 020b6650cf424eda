package aggregators

import (
	"proxy-logs/internal/models"
)

//go:generate mockgen -source=aggregator.go -destination=./mocks/aggregator_mock.go -package=mocks
type Aggregator interface {
	// Aggregate tallies entries per dimension. Every server in servers gets a request count,
	// zero when none of its lines matched, so idle servers still show up.
	Aggregate(servers []string, entries []*models.LogEntry) *models.AggregateCounts
}

type aggregator struct{}

func NewAggregator() Aggregator {
	return &aggregator{}
}

func (a *aggregator) Aggregate(servers []string, entries []*models.LogEntry) *models.AggregateCounts {
	counts := models.NewEmptyAggregateCounts()
	for _, server := range servers {
		counts.RequestsByServer[server] = 0
	}

	for _, entry := range entries {
		counts.RequestsByServer[entry.ServerName]++
		counts.RequestsByClientIP[entry.ClientIP]++
		counts.RequestsByMethod[entry.Method]++
		counts.RequestsByDomain[entry.Domain()]++
		counts.RequestsByStatusCode[entry.StatusCode]++
		counts.RequestsByHow[entry.Hierarchy()]++
		counts.BytesByClientIP[entry.ClientIP] += entry.Bytes
	}

	return counts
}
