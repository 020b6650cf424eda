package models

// Query actions that answer from configuration and side caches only.
const (
	ActionGetLocations   = "get_locations"
	ActionGetServers     = "get_servers"
	ActionGetClientIPs   = "get_client_ips"
	ActionGetStatusCodes = "get_status_codes"
)

// QueryResult is the document returned by one log query.
//
// For an action query only Action and the matching list are set, and Document returns
// that bare list.
type QueryResult struct {
	QueryID string      `json:"query_id"`
	Entries []*LogEntry `json:"entries"`
	Filter  FieldFilter `json:"filter"`
	AggregateCounts
	Durations map[string]string `json:"durations"`
	TimeRange QueryWindow       `json:"time_range"`
	// FailedServers lists servers whose log could not be downloaded, by server name.
	// Only populated when partial downloads are allowed.
	FailedServers map[string]string `json:"failed_servers,omitempty"`

	Action      string   `json:"-"`
	Locations   []string `json:"-"`
	Servers     []string `json:"-"`
	ClientIPs   []string `json:"-"`
	StatusCodes []string `json:"-"`
}

// Document is the value to serialize for the caller: the full result for log queries,
// the requested list for actions.
func (r *QueryResult) Document() any {
	switch r.Action {
	case ActionGetLocations:
		return nonNil(r.Locations)
	case ActionGetServers:
		return nonNil(r.Servers)
	case ActionGetClientIPs:
		return nonNil(r.ClientIPs)
	case ActionGetStatusCodes:
		return nonNil(r.StatusCodes)
	}
	return r
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
