package queries

import (
	"context"
	"fmt"
	"time"

	"proxy-logs/internal/shared/loggers"
)

// Stage names, reported in the durations of every log query.
const (
	stageGetSettings     = "get_settings"
	stageGetLocations    = "get_locations"
	stageGetServers      = "get_servers"
	stageListObjects     = "list_objects"
	stageSaveServers     = "save_servers"
	stageReadObjects     = "read_objects"
	stageProcessObjects  = "process_objects"
	stageDoCounts        = "do_counts"
	stageSortEntries     = "sort_entries"
	stageZipEntries      = "zip_entries"
	stageSaveStatusCodes = "save_status_codes"
	stageSaveClientIPs   = "save_client_ips"
	stageTotal           = "total"
)

// stageTimer measures consecutive stages of one query.
type stageTimer struct {
	now       func() time.Time
	start     time.Time
	last      time.Time
	durations map[string]string
}

func newStageTimer(now func() time.Time) *stageTimer {
	t := now()
	return &stageTimer{now: now, start: t, last: t, durations: make(map[string]string)}
}

// done closes stage, which started when the previous one ended.
func (t *stageTimer) done(ctx context.Context, stage string) {
	now := t.now()
	t.record(ctx, stage, now.Sub(t.last))
	t.last = now
}

// total records the time since the timer was created.
func (t *stageTimer) total(ctx context.Context) map[string]string {
	t.record(ctx, stageTotal, t.now().Sub(t.start))
	return t.durations
}

func (t *stageTimer) record(ctx context.Context, stage string, d time.Duration) {
	t.durations[stage] = fmt.Sprintf("%.3f", d.Seconds())
	metricQueryStageDurationSeconds.WithLabelValues(stage).Observe(d.Seconds())
	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldStage, stage).
		Dur(loggers.FieldDuration, d).
		Msg("query stage done")
}
