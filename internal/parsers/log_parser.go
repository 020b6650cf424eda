package parsers

import (
	"strconv"
	"strings"
	"time"

	"proxy-logs/internal/models"
)

// epochDigits caps the seconds part of a squid timestamp ("1700000000.123").
const epochDigits = 10

// ParseStats counts what happened to each line the backward scan yielded.
type ParseStats struct {
	Visited     int
	Malformed   int
	Ignored     int
	TooRecent   int
	FilteredOut int
	Matched     int
}

// Add accumulates other into s.
func (s *ParseStats) Add(other ParseStats) {
	s.Visited += other.Visited
	s.Malformed += other.Malformed
	s.Ignored += other.Ignored
	s.TooRecent += other.TooRecent
	s.FilteredOut += other.FilteredOut
	s.Matched += other.Matched
}

type ParserOptions struct {
	Layout models.FieldLayout
	// IgnoreStatusCodes are dropped before any other check, e.g. NONE/000 for aborted requests.
	IgnoreStatusCodes []string
	TimeZone          *time.Location
}

//go:generate mockgen -source=log_parser.go -destination=mocks/log_parser_mock.go -package=mocks
type LogParser interface {
	// Parse scans one server's log from its newest line backwards and returns the lines in
	// window that satisfy filter, newest first. The scan stops at the first line at or
	// before the window start, so older history is never tokenized.
	Parse(serverName string, blob []byte, window models.QueryWindow, filter models.FieldFilter) ([]*models.LogEntry, ParseStats)
}

type logParser struct {
	layout models.FieldLayout
	ignore map[string]struct{}
	tz     *time.Location
}

func NewLogParser(opts ParserOptions) LogParser {
	ignore := make(map[string]struct{}, len(opts.IgnoreStatusCodes))
	for _, code := range opts.IgnoreStatusCodes {
		ignore[code] = struct{}{}
	}
	tz := opts.TimeZone
	if tz == nil {
		tz = time.Local
	}
	layout := opts.Layout
	if layout.Width() == 0 {
		layout = models.DefaultFieldLayout()
	}
	return &logParser{layout: layout, ignore: ignore, tz: tz}
}

func (p *logParser) Parse(serverName string, blob []byte, window models.QueryWindow, filter models.FieldFilter) ([]*models.LogEntry, ParseStats) {
	var (
		stats   ParseStats
		entries []*models.LogEntry
	)

	lines := newReverseLineReader(blob)
	for {
		line, ok := lines.Next()
		if !ok {
			break
		}
		stats.Visited++

		fields := strings.Fields(string(line))
		if len(fields) < p.layout.Width() {
			stats.Malformed++
			continue
		}
		if _, ignored := p.ignore[fields[p.layout.Index(models.FieldStatusCode)]]; ignored {
			stats.Ignored++
			continue
		}
		ts, ok := epochSeconds(fields[p.layout.Index(models.FieldTimestamp)])
		if !ok {
			stats.Malformed++
			continue
		}
		if ts >= window.End {
			stats.TooRecent++
			continue
		}
		if ts <= window.Start {
			break
		}

		urlIdx := p.layout.Index(models.FieldURL)
		fields[urlIdx] = NormalizeURL(fields[urlIdx])
		if !p.matches(fields, filter) {
			stats.FilteredOut++
			continue
		}

		entries = append(entries, p.newEntry(serverName, ts, fields))
		stats.Matched++
	}

	recordStats(stats)
	return entries, stats
}

func (p *logParser) matches(fields []string, filter models.FieldFilter) bool {
	for field, want := range filter {
		if want == "" {
			continue
		}
		if !strings.Contains(fields[p.layout.Index(field)], want) {
			return false
		}
	}
	return true
}

func (p *logParser) newEntry(serverName string, ts int64, fields []string) *models.LogEntry {
	get := func(f models.Field) string {
		return fields[p.layout.Index(f)]
	}
	elapsed, _ := strconv.ParseInt(get(models.FieldElapsed), 10, 64)
	size, _ := strconv.ParseInt(get(models.FieldBytes), 10, 64)

	return &models.LogEntry{
		Timestamp:    FormatTimestamp(ts, p.tz),
		Elapsed:      FormatElapsed(elapsed),
		ClientIP:     get(models.FieldClientIP),
		StatusCode:   get(models.FieldStatusCode),
		Bytes:        size,
		Size:         FormatBytes(size),
		Method:       get(models.FieldMethod),
		URL:          get(models.FieldURL),
		RFC931:       get(models.FieldRFC931),
		How:          get(models.FieldHow),
		ContentType:  get(models.FieldContentType),
		ServerName:   serverName,
		EpochSeconds: ts,
	}
}

// epochSeconds reads the whole seconds of a squid timestamp: the digits before the
// fractional part, capped at the leading ten.
func epochSeconds(field string) (int64, bool) {
	digits, _, _ := strings.Cut(field, ".")
	if len(digits) > epochDigits {
		digits = digits[:epochDigits]
	}
	if digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	ts, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}

func recordStats(stats ParseStats) {
	for outcome, n := range map[string]int{
		outcomeMatched:     stats.Matched,
		outcomeMalformed:   stats.Malformed,
		outcomeIgnored:     stats.Ignored,
		outcomeTooRecent:   stats.TooRecent,
		outcomeFilteredOut: stats.FilteredOut,
	} {
		if n > 0 {
			metricLinesScannedTotal.WithLabelValues(outcome).Add(float64(n))
		}
	}
}
