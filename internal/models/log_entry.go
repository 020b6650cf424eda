package models

import "strings"

// LogEntry is one parsed, in-window access-log line, already normalized for display.
// Entries are built by the parser and never modified afterwards.
type LogEntry struct {
	Timestamp   string `json:"timestamp"`
	Elapsed     string `json:"elapsed"`
	ClientIP    string `json:"client_ip"`
	StatusCode  string `json:"status_code"`
	Bytes       int64  `json:"bytes"`
	Size        string `json:"size"`
	Method      string `json:"method"`
	URL         string `json:"url"`
	RFC931      string `json:"rfc931"`
	How         string `json:"how"`
	ContentType string `json:"content_type"`
	ServerName  string `json:"server_name"`

	// EpochSeconds is the raw event time, kept for ordering merged server lists.
	EpochSeconds int64 `json:"-"`
}

// Domain is the host the request went to. URLs are normalized to host:port at parse time,
// so this is the URL itself.
func (e *LogEntry) Domain() string {
	return e.URL
}

// Hierarchy is the cache-hierarchy code of the how field, without the peer:
//
//	HIER_DIRECT/93.184.216.34 -> HIER_DIRECT
func (e *LogEntry) Hierarchy() string {
	hierarchy, _, _ := strings.Cut(e.How, "/")
	return hierarchy
}
