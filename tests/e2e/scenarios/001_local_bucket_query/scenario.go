package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	serverCount    = 4    // Number of proxy servers, one log object each
	linesPerServer = 6000 // Lines per server log
	lineSpacing    = 1    // Seconds between two lines of a server
	windowLength   = 900  // Seconds per queried window
)

var (
	statusCodes = []string{"TCP_MISS/200", "TCP_HIT/200", "TCP_TUNNEL/200", "TCP_DENIED/403", "NONE/000"}
	urls        = []string{"http://example.com/", "http://example.com/about", "example.org:443", "http://other.net/img.png"}
)

// ### End - fixed configs

type generatedLine struct {
	server     string
	epoch      int64
	clientIP   string
	statusCode string
	url        string
	domain     string
}

type queryCase struct {
	name   string
	params url.Values
	want   map[string]int64
}

type queryResponse struct {
	RequestsByServer map[string]int64 `json:"requests_by_server"`
	Entries          []struct {
		Timestamp string `json:"timestamp"`
	} `json:"entries"`
}

// main runs the e2e scenario: 001_local_bucket_query
//
// This scenario writes squid access logs of several proxy servers into a local bucket
// directory, then runs concurrent GET /get_data queries against a running server whose
// configuration declares that directory as location "local" (bucket_type: file,
// path_prefix: squid/).
//
// What it tests:
//   - Freshness listing and download of every server log of the local bucket
//   - Backward scanning with exclusive window bounds
//   - NONE/000 lines being ignored
//   - Substring filters on url and status_code, combined with AND
//   - Zero-seeded counts for servers without matching lines
//   - Concurrent queries sharing the side caches
//
// Expected results:
//   - Every query returns 200
//   - requests_by_server equals the counts computed from the generated lines
//   - Entries are ordered newest first
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080" // Base URL of the proxy-logs API server
	bucketDir := ".tmp/buckets/local"  // Local bucket directory path relative to project root
	parallel := 4                      // Number of concurrent queries
	rounds := 5                        // Times every query case is sent
	wantCleanBucket := true            // If true, clean up the bucket directory before running scenario

	baseEpoch := time.Now().Unix() - 2*linesPerServer*lineSpacing // First line timestamp

	// Get project root directory by looking for go.mod file
	// Start from current working directory and walk up until we find go.mod
	projectRoot, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to get current working directory: %v\n", err)
		os.Exit(1)
	}

	// Walk up the directory tree to find go.mod
	for i := 0; i < 10; i++ {
		goModPath := filepath.Join(projectRoot, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			fmt.Fprintf(os.Stderr, "ERROR: Could not find go.mod file. Please run from project root\n")
			os.Exit(1)
		}
		projectRoot = parent
	}

	bucketPath, err := filepath.Abs(filepath.Join(projectRoot, bucketDir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to resolve bucket path: %v\n", err)
		os.Exit(1)
	}

	if wantCleanBucket {
		fmt.Printf("Cleaning bucket directory: %s\n", bucketPath)
		if err := os.RemoveAll(bucketPath); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: Failed to clean bucket directory: %v\n", err)
		}
		fmt.Println()
	}

	fmt.Println("Starting e2e scenario: 001_local_bucket_query")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("BUCKET_PATH: %s\n", bucketPath)
	fmt.Printf("SERVER_COUNT: %d\n", serverCount)
	fmt.Printf("LINES_PER_SERVER: %d\n", linesPerServer)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("ROUNDS: %d\n", rounds)
	fmt.Printf("BASE_EPOCH: %d\n", baseEpoch)
	fmt.Println()

	// Generate and write all server logs
	lines := generateAllLines(baseEpoch)
	if err := writeServerLogs(bucketPath, lines); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to write server logs: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d lines for %d servers\n", len(lines), serverCount)
	fmt.Println()

	cases := buildQueryCases(baseEpoch, lines)

	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errors []error
	var queriesSent int64
	var queriesMatched int64

	for round := 0; round < rounds; round++ {
		for _, qc := range cases {
			wg.Add(1)
			workerChan <- struct{}{} // Acquire worker slot

			go func(qc queryCase) {
				defer wg.Done()
				defer func() { <-workerChan }() // Release worker slot

				atomic.AddInt64(&queriesSent, 1)
				if err := runQuery(baseURL, qc); err != nil {
					mu.Lock()
					errors = append(errors, fmt.Errorf("%s: %w", qc.name, err))
					mu.Unlock()
					fmt.Fprintf(os.Stderr, "ERROR: Query %s failed: %v\n", qc.name, err)
					return
				}
				atomic.AddInt64(&queriesMatched, 1)
				fmt.Printf("Query %s matched\n", qc.name)
			}(qc)
		}
	}

	wg.Wait()

	fmt.Println()
	fmt.Println("=== Statistics ===")
	fmt.Printf("Queries sent: %d\n", atomic.LoadInt64(&queriesSent))
	fmt.Printf("Queries matched: %d\n", atomic.LoadInt64(&queriesMatched))
	if len(errors) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d queries failed\n", len(errors))
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

func serverName(s int) string {
	return fmt.Sprintf("proxy-%02d", s+1)
}

func generateAllLines(baseEpoch int64) []generatedLine {
	lines := make([]generatedLine, 0, serverCount*linesPerServer)
	for s := 0; s < serverCount; s++ {
		for i := 0; i < linesPerServer; i++ {
			// server 4 only logs during the first third, so later windows see it idle
			if s == serverCount-1 && i >= linesPerServer/3 {
				break
			}
			u := urls[(i+s)%len(urls)]
			lines = append(lines, generatedLine{
				server:     serverName(s),
				epoch:      baseEpoch + int64(i*lineSpacing),
				clientIP:   fmt.Sprintf("10.0.%d.%d", s, i%8),
				statusCode: statusCodes[(i*7+s)%len(statusCodes)],
				url:        u,
				domain:     normalize(u),
			})
		}
	}
	return lines
}

func normalize(u string) string {
	host := strings.TrimPrefix(u, "http://")
	host, _, _ = strings.Cut(host, "/")
	if !strings.Contains(host, ":") {
		host += ":80"
	}
	return host
}

func writeServerLogs(bucketPath string, lines []generatedLine) error {
	dir := filepath.Join(bucketPath, "squid")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	perServer := make(map[string]*strings.Builder)
	for _, l := range lines {
		b, ok := perServer[l.server]
		if !ok {
			b = &strings.Builder{}
			perServer[l.server] = b
		}
		fmt.Fprintf(b, "%d.%03d %d %s %s %d GET %s - HIER_DIRECT/192.0.2.1 text/html\n",
			l.epoch, l.epoch%1000, 10+l.epoch%90, l.clientIP, l.statusCode, 100+l.epoch%5000, l.url)
	}
	for server, b := range perServer {
		if err := os.WriteFile(filepath.Join(dir, server+".log"), []byte(b.String()), 0o644); err != nil {
			return err
		}
	}
	// listing noise that must be skipped
	return os.WriteFile(filepath.Join(dir, "summary.json"), []byte(`{}`), 0o644)
}

func buildQueryCases(baseEpoch int64, lines []generatedLine) []queryCase {
	type window struct{ start, end int64 }
	windows := []window{
		{baseEpoch + 100, baseEpoch + 100 + windowLength},
		{baseEpoch + 3000, baseEpoch + 3000 + windowLength},
		{baseEpoch + linesPerServer - windowLength, baseEpoch + linesPerServer + 10},
	}
	filters := []map[string]string{
		{},
		{"url": "example.com"},
		{"url": "example", "status_code": "200"},
		{"status_code": "TCP_DENIED"},
	}

	var cases []queryCase
	for wi, w := range windows {
		for fi, f := range filters {
			params := url.Values{}
			params.Set("location", "local")
			params.Set("start_time", strconv.FormatInt(w.start, 10))
			params.Set("end_time", strconv.FormatInt(w.end, 10))
			for k, v := range f {
				params.Set(k, v)
			}
			cases = append(cases, queryCase{
				name:   fmt.Sprintf("window%d-filter%d", wi, fi),
				params: params,
				want:   expectedCounts(lines, w.start, w.end, f),
			})
		}
	}
	return cases
}

// expectedCounts mirrors the server rules: exclusive bounds, NONE/000 ignored, AND of substrings.
func expectedCounts(lines []generatedLine, start, end int64, filter map[string]string) map[string]int64 {
	counts := make(map[string]int64)
	for s := 0; s < serverCount; s++ {
		counts[serverName(s)] = 0
	}
	for _, l := range lines {
		if l.epoch <= start || l.epoch >= end || l.statusCode == "NONE/000" {
			continue
		}
		if v, ok := filter["url"]; ok && !strings.Contains(l.domain, v) {
			continue
		}
		if v, ok := filter["status_code"]; ok && !strings.Contains(l.statusCode, v) {
			continue
		}
		if v, ok := filter["client_ip"]; ok && !strings.Contains(l.clientIP, v) {
			continue
		}
		counts[l.server]++
	}
	return counts
}

func runQuery(baseURL string, qc queryCase) error {
	resp, err := http.Get(baseURL + "/get_data?" + qc.params.Encode())
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result queryResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	for server, want := range qc.want {
		if got := result.RequestsByServer[server]; got != want {
			return fmt.Errorf("server %s: got %d requests, want %d", server, got, want)
		}
	}
	for i := 1; i < len(result.Entries); i++ {
		if result.Entries[i-1].Timestamp < result.Entries[i].Timestamp {
			return fmt.Errorf("entries not ordered newest first at index %d", i)
		}
	}
	return nil
}
