package models

import (
	"path"
	"strings"
	"time"
)

const logFileSuffix = ".log"

// ObjectDescriptor is one item of an object-store listing.
type ObjectDescriptor struct {
	Name    string
	Size    int64
	Updated time.Time
}

// IsCurrent reports whether the object may hold lines newer than since.
// Empty and stale objects are never downloaded.
func (o ObjectDescriptor) IsCurrent(since time.Time) bool {
	return o.Size > 0 && o.Updated.After(since)
}

// ServerName is the proxy server the object belongs to: its base name without ".log".
//
//	squid/eu/proxy-01.log -> proxy-01
func (o ObjectDescriptor) ServerName() string {
	return strings.TrimSuffix(path.Base(o.Name), logFileSuffix)
}
