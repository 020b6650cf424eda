package models

// AggregateCounts are the per-dimension tallies of one query's entries.
//
// Example JSON (embedded in QueryResult):
//
//	{
//	  "requests_by_server": {"proxy-01": 2, "proxy-02": 0},
//	  "requests_by_client_ip": {"10.0.0.1": 2},
//	  "requests_by_method": {"GET": 1, "CONNECT": 1},
//	  "requests_by_domain": {"example.com:80": 1, "example.org:443": 1},
//	  "requests_by_status_code": {"TCP_MISS/200": 1, "TCP_TUNNEL/200": 1},
//	  "requests_by_how": {"HIER_DIRECT": 2},
//	  "bytes_by_client_ip": {"10.0.0.1": 5120}
//	}
type AggregateCounts struct {
	RequestsByServer     map[string]int64 `json:"requests_by_server"`
	RequestsByClientIP   map[string]int64 `json:"requests_by_client_ip"`
	RequestsByMethod     map[string]int64 `json:"requests_by_method"`
	RequestsByDomain     map[string]int64 `json:"requests_by_domain"`
	RequestsByStatusCode map[string]int64 `json:"requests_by_status_code"`
	RequestsByHow        map[string]int64 `json:"requests_by_how"`
	BytesByClientIP      map[string]int64 `json:"bytes_by_client_ip"`
}

func NewEmptyAggregateCounts() *AggregateCounts {
	return &AggregateCounts{
		RequestsByServer:     make(map[string]int64),
		RequestsByClientIP:   make(map[string]int64),
		RequestsByMethod:     make(map[string]int64),
		RequestsByDomain:     make(map[string]int64),
		RequestsByStatusCode: make(map[string]int64),
		RequestsByHow:        make(map[string]int64),
		BytesByClientIP:      make(map[string]int64),
	}
}
