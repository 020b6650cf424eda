package queries

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"proxy-logs/internal/models"
)

// Recognised query parameters.
const (
	ParamAction          = "action"
	ParamLocation        = "location"
	ParamDefaultLocation = "default_location"
	ParamServerGroup     = "server_group"
	ParamInterval        = "interval"
	ParamStartTime       = "start_time"
	ParamEndTime         = "end_time"
)

var actionAliases = map[string]string{
	models.ActionGetLocations:   models.ActionGetLocations,
	"list_locations":            models.ActionGetLocations,
	models.ActionGetServers:     models.ActionGetServers,
	"list_servers":              models.ActionGetServers,
	models.ActionGetClientIPs:   models.ActionGetClientIPs,
	models.ActionGetStatusCodes: models.ActionGetStatusCodes,
}

// queryRequest is the validated form of the request parameters.
type queryRequest struct {
	action       string
	locationName string
	serverGroup  string
	window       models.QueryWindow
	filter       models.FieldFilter
}

// parseParams validates params. now and defaultInterval fill a missing time range:
// end defaults to now and start to end minus the interval.
func parseParams(params map[string]string, defaultLocation string, defaultInterval int64, now time.Time) (*queryRequest, error) {
	req := &queryRequest{
		serverGroup: strings.TrimSpace(params[ParamServerGroup]),
		filter:      models.NewFieldFilter(params),
	}

	if raw := strings.TrimSpace(params[ParamAction]); raw != "" {
		action, ok := actionAliases[raw]
		if !ok {
			return nil, errInvalidParams(fmt.Sprintf("unknown action %q", raw), nil)
		}
		req.action = action
	}

	req.locationName = firstNonEmpty(params[ParamLocation], params[ParamDefaultLocation], defaultLocation)

	interval := defaultInterval
	if raw := params[ParamInterval]; raw != "" {
		v, err := parseSeconds(ParamInterval, raw)
		if err != nil {
			return nil, err
		}
		if v <= 0 {
			return nil, errInvalidParams(fmt.Sprintf("%s must be positive, got %d", ParamInterval, v), nil)
		}
		interval = v
	}

	end := now.Unix()
	if raw := params[ParamEndTime]; raw != "" {
		v, err := parseSeconds(ParamEndTime, raw)
		if err != nil {
			return nil, err
		}
		end = v
	}
	start := end - interval
	if raw := params[ParamStartTime]; raw != "" {
		v, err := parseSeconds(ParamStartTime, raw)
		if err != nil {
			return nil, err
		}
		start = v
	}

	window, err := models.NewQueryWindow(start, end)
	if err != nil {
		return nil, errInvalidParams(err.Error(), err)
	}
	req.window = window

	return req, nil
}

func parseSeconds(name, raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, errInvalidParams(fmt.Sprintf("%s must be an integer number of seconds, got %q", name, raw), err)
	}
	return v, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
