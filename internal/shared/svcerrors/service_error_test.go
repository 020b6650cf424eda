package svcerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr *ServiceError
		wantOk  bool
	}{
		{
			name:    "nil input",
			err:     nil,
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "regular error",
			err:     errors.New("x"),
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "direct ServiceError",
			err:     NewInvalidArgumentError("QRY_1000", "unknown location", nil),
			wantErr: NewInvalidArgumentError("QRY_1000", "unknown location", nil),
			wantOk:  true,
		},
		{
			name:    "wrapped ServiceError",
			err:     fmt.Errorf("wrap: %w", NewUnavailableError("QRY_9200", "object store unavailable", nil)),
			wantErr: NewUnavailableError("QRY_9200", "object store unavailable", nil),
			wantOk:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotErr, gotOk := AsServiceError(tt.err)

			assert.Equal(t, tt.wantOk, gotOk, "AsServiceError() ok value mismatch")

			if tt.wantErr == nil {
				assert.Nil(t, gotErr, "AsServiceError() should return nil error")
			} else {
				require.NotNil(t, gotErr, "AsServiceError() should return non-nil error")
				assert.Equal(t, tt.wantErr.Category, gotErr.Category, "Category mismatch")
				assert.Equal(t, tt.wantErr.Code, gotErr.Code, "Code mismatch")
				assert.Equal(t, tt.wantErr.Message, gotErr.Message, "Message mismatch")
			}
		})
	}
}

func TestServiceError_Categories(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")

	tests := []struct {
		name          string
		err           *ServiceError
		wantStatus    int
		wantInternal  bool
		wantRetryable bool
	}{
		{"invalid argument", NewInvalidArgumentError("QRY_1000", "bad", cause), 400, false, false},
		{"credential failure", NewCredentialError("QRY_9100", "no credential", cause), 502, false, false},
		{"unavailable", NewUnavailableError("QRY_9200", "storage down", cause), 503, false, true},
		{"internal", NewInternalError("QRY_9300", cause), 500, true, false},
		{"panic", NewInternalErrorPanic(cause), 500, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.HttpStatusCode)
			assert.Equal(t, tt.wantInternal, tt.err.IsInternalError())
			assert.Equal(t, tt.wantRetryable, tt.err.IsRetryable())
			assert.ErrorIs(t, tt.err, cause)
		})
	}
}

func TestNewResourceExhaustedError(t *testing.T) {
	t.Parallel()

	err := NewResourceExhaustedError("HTTP_4290", "too many requests")

	assert.Equal(t, 429, err.HttpStatusCode)
	assert.Equal(t, "resource_exhausted", err.Category)
	assert.Equal(t, "HTTP_4290: too many requests", err.Error())
	assert.False(t, err.IsInternalError())
	assert.False(t, err.IsRetryable())
	assert.Nil(t, err.Unwrap())
}
