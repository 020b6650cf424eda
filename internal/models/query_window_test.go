package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueryWindow(t *testing.T) {
	t.Parallel()

	w, err := NewQueryWindow(100, 200)
	require.NoError(t, err)
	assert.Equal(t, QueryWindow{Start: 100, End: 200}, w)

	_, err = NewQueryWindow(200, 200)
	assert.ErrorIs(t, err, ErrInvalidQueryWindow)

	_, err = NewQueryWindow(300, 200)
	assert.ErrorIs(t, err, ErrInvalidQueryWindow)
}

func TestQueryWindow_ContainsIsExclusive(t *testing.T) {
	t.Parallel()

	w := QueryWindow{Start: 120, End: 280}

	assert.False(t, w.Contains(120))
	assert.True(t, w.Contains(121))
	assert.True(t, w.Contains(279))
	assert.False(t, w.Contains(280))
}

func TestQueryWindow_JSONIsPair(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(QueryWindow{Start: 1700000000, End: 1700000900})
	require.NoError(t, err)
	assert.JSONEq(t, `[1700000000, 1700000900]`, string(data))

	var decoded QueryWindow
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, QueryWindow{Start: 1700000000, End: 1700000900}, decoded)
}

func TestNewFieldFilter_DropsEmptyAndUnknown(t *testing.T) {
	t.Parallel()

	filter := NewFieldFilter(map[string]string{
		"client_ip":   "10.0",
		"status_code": "",
		"url":         "example.com",
		"method":      "GET",
	})

	assert.Equal(t, FieldFilter{FieldClientIP: "10.0", FieldURL: "example.com"}, filter)
	assert.Empty(t, NewFieldFilter(nil))
}
