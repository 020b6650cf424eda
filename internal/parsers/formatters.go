package parsers

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	unknownValue    = "unknown"
	unknownHost     = "unknownhost.unknowndomain"
	defaultHTTPPort = ":80"
	timestampLayout = "2006-01-02 15:04:05"
)

var sizeUnits = []string{"KB", "MB", "GB", "TB", "PB"}

// FormatElapsed renders a duration given in milliseconds.
//
//	0 -> "unknown", 999 -> "999 ms", 1000 -> "1 s", 1500 -> "1.5 s", 61000 -> "61 s"
//
// Durations above a minute are rounded to whole seconds.
func FormatElapsed(ms int64) string {
	if ms <= 0 {
		return unknownValue
	}
	if ms < 1000 {
		return fmt.Sprintf("%d ms", ms)
	}
	seconds := float64(ms) / 1000
	if seconds > 60 {
		seconds = math.RoundToEven(seconds)
	}
	return strconv.FormatFloat(seconds, 'f', -1, 64) + " s"
}

// FormatBytes renders a byte count with decimal units.
//
//	0 -> "unknown", 999 -> "999 Bytes", 1000 -> "1.0 KB", 999999 -> "999.999 KB", 999999999 -> "1.0 GB"
//
// Each step divides by 1000 and rounds to three decimals, and the next unit is tried
// until the value is below 1000. PB is the largest unit.
func FormatBytes(n int64) string {
	if n <= 0 {
		return unknownValue
	}
	if n < 1000 {
		return fmt.Sprintf("%d Bytes", n)
	}

	size := float64(n)
	unit := ""
	for _, unit = range sizeUnits {
		size = roundTo(size/1000, 3)
		if size < 1000 {
			break
		}
	}
	return formatDecimal(size) + " " + unit
}

// FormatTimestamp renders epoch seconds as a local date-time.
func FormatTimestamp(epochSeconds int64, tz *time.Location) string {
	return time.Unix(epochSeconds, 0).In(tz).Format(timestampLayout)
}

// NormalizeURL reduces plain HTTP URLs to host:port, so that requests count per domain.
//
//	http://example.com/a?b=c -> example.com:80
//	http://example.com:8080/ -> example.com:8080
//	example.org:443          -> example.org:443 (CONNECT)
//	""                       -> unknownhost.unknowndomain
func NormalizeURL(url string) string {
	if url == "" {
		return unknownHost
	}
	if !strings.HasPrefix(url, "http:") {
		return url
	}

	rest := strings.TrimPrefix(strings.TrimPrefix(url, "http:"), "//")
	host, _, _ := strings.Cut(rest, "/")
	host, _, _ = strings.Cut(host, "?")
	if host == "" {
		return unknownHost
	}
	if !strings.Contains(host, ":") {
		host += defaultHTTPPort
	}
	return host
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// formatDecimal prints v in its shortest form with at least one decimal.
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
