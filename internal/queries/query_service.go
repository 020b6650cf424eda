package queries

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"proxy-logs/internal/aggregators"
	"proxy-logs/internal/locations"
	"proxy-logs/internal/models"
	"proxy-logs/internal/objectstores"
	"proxy-logs/internal/parsers"
	"proxy-logs/internal/shared/loggers"
	"proxy-logs/internal/shared/metrics"
	"proxy-logs/internal/shared/svcerrors"
	"proxy-logs/internal/shared/ulid"
	"proxy-logs/internal/sidecaches"
)

const defaultIntervalSeconds = 900

type QueryOptions struct {
	// DefaultLocation is used when the request names no location.
	DefaultLocation string
	// DefaultInterval is the window length in seconds when start_time is omitted.
	DefaultInterval int64
	// ExcludedObjectMarkers drop listed objects whose name contains any of them.
	ExcludedObjectMarkers []string
	// AllowPartialDownloads reports failed servers instead of failing the query.
	AllowPartialDownloads bool
	Client                objectstores.ClientOptions
	// MaxConcurrentParses bounds the logs scanned at once. Zero uses GOMAXPROCS.
	MaxConcurrentParses int
	// Now is the clock used for default windows and stage timings.
	Now func() time.Time
}

//go:generate mockgen -source=query_service.go -destination=./mocks/query_service_mock.go -package=mocks
type QueryService interface {
	// FetchLogData answers one query. Errors are *svcerrors.ServiceError.
	FetchLogData(ctx context.Context, params map[string]string) (*models.QueryResult, error)
}

type queryService struct {
	locations  locations.LocationStore
	provider   objectstores.Provider
	parser     parsers.LogParser
	aggregator aggregators.Aggregator
	sideCache  sidecaches.SideCache
	opts       QueryOptions
}

func NewQueryService(
	locationStore locations.LocationStore,
	provider objectstores.Provider,
	parser parsers.LogParser,
	aggregator aggregators.Aggregator,
	sideCache sidecaches.SideCache,
	opts QueryOptions,
) QueryService {
	if opts.DefaultInterval <= 0 {
		opts.DefaultInterval = defaultIntervalSeconds
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxConcurrentParses <= 0 {
		opts.MaxConcurrentParses = runtime.GOMAXPROCS(0)
	}
	return &queryService{
		locations:  locationStore,
		provider:   provider,
		parser:     parser,
		aggregator: aggregator,
		sideCache:  sideCache,
		opts:       opts,
	}
}

// serverLog is one downloaded object and the server it belongs to.
type serverLog struct {
	server string
	name   string
	blob   []byte
}

func (s *queryService) FetchLogData(ctx context.Context, params map[string]string) (*models.QueryResult, error) {
	action := actionLogQuery
	if a, ok := actionAliases[params[ParamAction]]; ok {
		action = a
	}

	result, err := s.fetch(ctx, params)
	if err != nil {
		svcErr, ok := svcerrors.AsServiceError(err)
		if !ok {
			svcErr = svcerrors.NewInternalErrorUndefined(err)
		}
		metricQueryTotal.WithLabelValues(action, svcErr.Code).Inc()
		return nil, svcErr
	}

	metricQueryTotal.WithLabelValues(action, metrics.ValueNoError).Inc()
	return result, nil
}

func (s *queryService) fetch(ctx context.Context, params map[string]string) (*models.QueryResult, error) {
	timer := newStageTimer(s.opts.Now)
	queryID := ulid.NewULIDAt(s.opts.Now())
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldQueryID, queryID).Logger()
	ctx = logger.WithContext(ctx)

	req, err := parseParams(params, s.opts.DefaultLocation, s.opts.DefaultInterval, s.opts.Now())
	if err != nil {
		return nil, err
	}
	timer.done(ctx, stageGetSettings)

	if req.action == models.ActionGetLocations {
		return &models.QueryResult{QueryID: queryID, Action: req.action, Locations: s.locations.Names()}, nil
	}

	location, err := s.resolveLocation(req)
	if err != nil {
		return nil, err
	}
	logger = logger.With().Str(loggers.FieldLocation, location.Name).Logger()
	ctx = logger.WithContext(ctx)
	timer.done(ctx, stageGetLocations)

	if req.action != "" {
		return s.answerAction(ctx, queryID, req, location)
	}

	logger.Debug().Msgf("querying location %s from %d to %d, server group %q, filter %v",
		location.Name, req.window.Start, req.window.End, req.serverGroup, req.filter)

	store, err := s.provider.Open(ctx, location)
	if err != nil {
		if errors.Is(err, objectstores.ErrAuth) {
			return nil, errCredentialFailure(location.Name, err)
		}
		return nil, errStorageUnavailable(err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close object store")
		}
	}()
	client := objectstores.NewClient(store, location.BucketType, s.opts.Client)
	timer.done(ctx, stageGetServers)

	objects, err := client.ListCurrentObjects(ctx, location.PathPrefix, req.window.StartTime())
	if err != nil {
		return nil, errStorageUnavailable(err)
	}
	objects = s.excludeMarked(objects)
	allServers := serverNames(objects)
	objects = narrowToGroup(objects, req.serverGroup)
	servers := serverNames(objects)
	timer.done(ctx, stageListObjects)

	if req.serverGroup == "" {
		if err := s.sideCache.SaveServers(ctx, location.Name, allServers); err != nil {
			return nil, errSideCacheFailed(err)
		}
	}
	timer.done(ctx, stageSaveServers)

	logs, failed, err := s.download(ctx, client, objects)
	if err != nil {
		return nil, err
	}
	timer.done(ctx, stageReadObjects)

	entries := s.parse(ctx, logs, req)
	timer.done(ctx, stageProcessObjects)

	counts := s.aggregator.Aggregate(servers, entries)
	timer.done(ctx, stageDoCounts)

	slices.SortStableFunc(entries, func(a, b *models.LogEntry) int {
		return cmp.Compare(b.EpochSeconds, a.EpochSeconds)
	})
	timer.done(ctx, stageSortEntries)

	result := &models.QueryResult{
		QueryID:         queryID,
		Entries:         entries,
		Filter:          req.filter,
		AggregateCounts: *counts,
		TimeRange:       req.window,
		Servers:         servers,
	}
	if len(failed) > 0 {
		result.FailedServers = failed
	}
	timer.done(ctx, stageZipEntries)

	if err := s.sideCache.MergeStatusCodes(ctx, location.Name, mapKeys(counts.RequestsByStatusCode)); err != nil {
		return nil, errSideCacheFailed(err)
	}
	timer.done(ctx, stageSaveStatusCodes)

	if req.serverGroup != "" {
		if err := s.sideCache.SaveClientIPs(ctx, location.Name, req.serverGroup, mapKeys(counts.RequestsByClientIP)); err != nil {
			return nil, errSideCacheFailed(err)
		}
	}
	timer.done(ctx, stageSaveClientIPs)

	result.Durations = timer.total(ctx)
	logger.Info().
		Int("servers", len(servers)).
		Int("entries", len(entries)).
		Str(loggers.FieldDuration, result.Durations[stageTotal]).
		Msg("log query done")
	return result, nil
}

func (s *queryService) resolveLocation(req *queryRequest) (models.Location, error) {
	if req.locationName == "" {
		return models.Location{}, errUnknownLocation("no location given and no default location configured", nil)
	}
	location, err := s.locations.Get(req.locationName)
	if err != nil {
		return models.Location{}, errUnknownLocation(fmt.Sprintf("unknown location %q", req.locationName), err)
	}
	if !location.AcceptsServerGroup(req.serverGroup) {
		return models.Location{}, errInvalidParams(
			fmt.Sprintf("server group %q is not one of %v for location %q", req.serverGroup, location.ServerGroups, location.Name), nil)
	}
	return location, nil
}

// answerAction serves the selection lists from the side caches, without any storage access.
func (s *queryService) answerAction(ctx context.Context, queryID string, req *queryRequest, location models.Location) (*models.QueryResult, error) {
	result := &models.QueryResult{QueryID: queryID, Action: req.action}

	switch req.action {
	case models.ActionGetServers:
		servers, err := s.sideCache.Servers(ctx, location.Name)
		if err != nil {
			return nil, errSideCacheFailed(err)
		}
		result.Servers = narrowNames(servers, req.serverGroup)
	case models.ActionGetClientIPs:
		ips, err := s.sideCache.ClientIPs(ctx, location.Name, req.serverGroup)
		if err != nil {
			return nil, errSideCacheFailed(err)
		}
		result.ClientIPs = ips
	case models.ActionGetStatusCodes:
		codes, err := s.sideCache.StatusCodes(ctx, location.Name)
		if err != nil {
			return nil, errSideCacheFailed(err)
		}
		merged := append(slices.Clone(codes), location.StatusCodes...)
		slices.Sort(merged)
		result.StatusCodes = slices.Compact(merged)
	}

	return result, nil
}

// download fetches every object. With partial downloads allowed, failed servers are returned
// by name with the error message and the query goes on unless nothing could be read.
func (s *queryService) download(ctx context.Context, client *objectstores.Client, objects []models.ObjectDescriptor) ([]serverLog, map[string]string, error) {
	names := make([]string, len(objects))
	for i, obj := range objects {
		names[i] = obj.Name
	}

	if !s.opts.AllowPartialDownloads {
		blobs, err := client.DownloadObjects(ctx, names)
		if err != nil {
			return nil, nil, errStorageUnavailable(err)
		}
		logs := make([]serverLog, len(objects))
		for i, obj := range objects {
			logs[i] = serverLog{server: obj.ServerName(), name: obj.Name, blob: blobs[i]}
		}
		return logs, nil, nil
	}

	var (
		logs    []serverLog
		failed  = make(map[string]string)
		lastErr error
	)
	for i, r := range client.DownloadEach(ctx, names) {
		server := objects[i].ServerName()
		if r.Err != nil {
			loggers.Ctx(ctx).Warn().Err(r.Err).Str(loggers.FieldServer, server).Msg("skipping server whose log could not be downloaded")
			failed[server] = r.Err.Error()
			lastErr = r.Err
			continue
		}
		logs = append(logs, serverLog{server: server, name: r.Name, blob: r.Blob})
	}
	if len(logs) == 0 && lastErr != nil {
		return nil, nil, errStorageUnavailable(lastErr)
	}
	return logs, failed, nil
}

// parse scans the logs in parallel, bounded by MaxConcurrentParses, and concatenates the entries in server order.
func (s *queryService) parse(ctx context.Context, logs []serverLog, req *queryRequest) []*models.LogEntry {
	perServer := make([][]*models.LogEntry, len(logs))
	stats := make([]parsers.ParseStats, len(logs))

	var g errgroup.Group
	g.SetLimit(s.opts.MaxConcurrentParses)
	for i, l := range logs {
		i, l := i, l
		g.Go(func() error {
			perServer[i], stats[i] = s.parser.Parse(l.server, l.blob, req.window, req.filter)
			return nil
		})
	}
	// Parse never fails; Wait only joins the workers.
	_ = g.Wait()

	var (
		total   int
		summary parsers.ParseStats
	)
	for i := range logs {
		total += len(perServer[i])
		summary.Add(stats[i])
		loggers.Ctx(ctx).Debug().
			Str(loggers.FieldServer, logs[i].server).
			Str("object", logs[i].name).
			Int("visited", stats[i].Visited).
			Int("malformed", stats[i].Malformed).
			Int("matched", stats[i].Matched).
			Msg("parsed server log")
	}

	entries := make([]*models.LogEntry, 0, total)
	for _, e := range perServer {
		entries = append(entries, e...)
	}
	if summary.Malformed > 0 {
		loggers.Ctx(ctx).Info().Int("malformed", summary.Malformed).Msg("skipped malformed log lines")
	}
	return entries
}

func (s *queryService) excludeMarked(objects []models.ObjectDescriptor) []models.ObjectDescriptor {
	return slices.DeleteFunc(objects, func(obj models.ObjectDescriptor) bool {
		for _, marker := range s.opts.ExcludedObjectMarkers {
			if marker != "" && strings.Contains(obj.Name, marker) {
				return true
			}
		}
		return false
	})
}

func narrowToGroup(objects []models.ObjectDescriptor, group string) []models.ObjectDescriptor {
	if group == "" {
		return objects
	}
	var out []models.ObjectDescriptor
	for _, obj := range objects {
		if strings.Contains(obj.ServerName(), group) {
			out = append(out, obj)
		}
	}
	return out
}

func narrowNames(names []string, group string) []string {
	if group == "" {
		return names
	}
	var out []string
	for _, n := range names {
		if strings.Contains(n, group) {
			out = append(out, n)
		}
	}
	return out
}

func serverNames(objects []models.ObjectDescriptor) []string {
	names := make([]string, len(objects))
	for i, obj := range objects {
		names[i] = obj.ServerName()
	}
	return names
}

func mapKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

