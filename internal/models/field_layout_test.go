package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFieldLayout(t *testing.T) {
	t.Parallel()

	layout := DefaultFieldLayout()

	assert.Equal(t, 10, layout.Width())
	assert.Equal(t, 0, layout.Index(FieldTimestamp))
	assert.Equal(t, 2, layout.Index(FieldClientIP))
	assert.Equal(t, 3, layout.Index(FieldStatusCode))
	assert.Equal(t, 6, layout.Index(FieldURL))
	assert.Equal(t, 9, layout.Index(FieldContentType))
}

func TestNewFieldLayout_Reordered(t *testing.T) {
	t.Parallel()

	layout, err := NewFieldLayout([]string{
		"timestamp", "elapsed", "-", "client_ip", "status_code", "bytes",
		"method", "url", "rfc931", "how", "content_type",
	})
	require.NoError(t, err)

	assert.Equal(t, 11, layout.Width())
	assert.Equal(t, 3, layout.Index(FieldClientIP))
	assert.Equal(t, 10, layout.Index(FieldContentType))
}

func TestNewFieldLayout_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		names    []string
		contains string
	}{
		{
			name:     "unknown field",
			names:    []string{"timestamp", "elapsed", "client_ip", "status_code", "bytes", "method", "url", "rfc931", "how", "mime"},
			contains: `unknown field "mime"`,
		},
		{
			name:     "duplicate field",
			names:    []string{"timestamp", "timestamp", "elapsed", "client_ip", "status_code", "bytes", "method", "url", "rfc931", "how", "content_type"},
			contains: `"timestamp" appears twice`,
		},
		{
			name:     "missing fields",
			names:    []string{"timestamp", "elapsed", "client_ip", "status_code", "bytes", "method", "url"},
			contains: "missing fields rfc931, how, content_type",
		},
		{
			name:     "empty",
			names:    nil,
			contains: "missing fields",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewFieldLayout(tt.names)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidFieldLayout)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLogEntry_Hierarchy(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "HIER_DIRECT", (&LogEntry{How: "HIER_DIRECT/93.184.216.34"}).Hierarchy())
	assert.Equal(t, "HIER_NONE", (&LogEntry{How: "HIER_NONE/-"}).Hierarchy())
	assert.Equal(t, "PARENT_HIT", (&LogEntry{How: "PARENT_HIT"}).Hierarchy())
}
