package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParamFlags(t *testing.T) {
	t.Parallel()

	params, err := parseParamFlags([]string{"location=eu", "url=http://example.com/?a=b", "interval=60", "interval=120", "client_ip="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"location":  "eu",
		"url":       "http://example.com/?a=b",
		"interval":  "120",
		"client_ip": "",
	}, params)

	_, err = parseParamFlags([]string{"location"})
	assert.ErrorContains(t, err, `invalid --param "location"`)

	_, err = parseParamFlags([]string{"=eu"})
	assert.Error(t, err)
}

func writeLocalSetup(t *testing.T) string {
	t.Helper()
	bucket := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(bucket, "squid"), 0o755))
	lines := "1100.000 5 10.0.0.1 TCP_MISS/200 512 GET http://example.com/a - HIER_DIRECT/192.0.2.1 text/html\n" +
		"1500.000 2500 10.0.0.2 TCP_TUNNEL/200 4096 CONNECT example.org:443 - HIER_DIRECT/192.0.2.2 -\n"
	require.NoError(t, os.WriteFile(filepath.Join(bucket, "squid", "proxy-01.log"), []byte(lines), 0o644))

	config := `
log:
  level: warn
side_cache:
  root_dir: ` + t.TempDir() + `
query:
  default_location: local
  timezone: UTC
locations:
  local:
    bucket_name: ` + bucket + `
    bucket_type: file
    path_prefix: squid/
`
	path := filepath.Join(t.TempDir(), "configs.yml")
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))
	return path
}

func TestQueryCmd_PrintsResult(t *testing.T) {
	configPath := writeLocalSetup(t)

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"query", "--config", configPath, "-p", "start_time=1000", "-p", "end_time=2000", "-p", "url=example"})

	require.NoError(t, cmd.Execute())

	var result struct {
		Entries []struct {
			Timestamp string `json:"timestamp"`
			Elapsed   string `json:"elapsed"`
			Size      string `json:"size"`
			URL       string `json:"url"`
		} `json:"entries"`
		RequestsByDomain map[string]int64 `json:"requests_by_domain"`
		TimeRange        []int64          `json:"time_range"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "1970-01-01 00:25:00", result.Entries[0].Timestamp)
	assert.Equal(t, "2.5 s", result.Entries[0].Elapsed)
	assert.Equal(t, "4.096 KB", result.Entries[0].Size)
	assert.Equal(t, "example.com:80", result.Entries[1].URL)
	assert.Equal(t, map[string]int64{"example.com:80": 1, "example.org:443": 1}, result.RequestsByDomain)
	assert.Equal(t, []int64{1000, 2000}, result.TimeRange)
	assert.Contains(t, stderr.String(), "2 entries")
	assert.Contains(t, stderr.String(), "seconds")
}

func TestQueryCmd_Action(t *testing.T) {
	configPath := writeLocalSetup(t)

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"query", "-c", configPath, "-p", "action=list_locations"})

	require.NoError(t, cmd.Execute())
	assert.JSONEq(t, `["local"]`, stdout.String())
}

func TestQueryCmd_ServiceError(t *testing.T) {
	configPath := writeLocalSetup(t)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"query", "-c", configPath, "-p", "location=mars"})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "QRY_1000")
}

func TestQueryCmd_MissingConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"query", "-c", filepath.Join(t.TempDir(), "missing.yml")})

	assert.ErrorContains(t, cmd.Execute(), "failed to load config")
}
