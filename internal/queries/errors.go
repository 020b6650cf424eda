package queries

import (
	"fmt"

	"proxy-logs/internal/shared/svcerrors"
)

// QueryService errors
const (
	codeUnknownLocation = "QRY_1000"
	codeInvalidParams   = "QRY_1001"

	codeCredentialFailure  = "QRY_9100"
	codeStorageUnavailable = "QRY_9200"
	codeSideCacheFailed    = "QRY_9300"
)

func errUnknownLocation(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeUnknownLocation, msg, cause)
}

func errInvalidParams(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidParams, msg, cause)
}

// errCredentialFailure returns an error when the location's storage credential cannot be acquired.
func errCredentialFailure(location string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewCredentialError(codeCredentialFailure, fmt.Sprintf("cannot access the log bucket of location %q", location), cause)
}

// errStorageUnavailable returns an error when listing or downloading logs failed.
func errStorageUnavailable(cause error) *svcerrors.ServiceError {
	return svcerrors.NewUnavailableError(codeStorageUnavailable, "log storage unavailable, try again later", cause)
}

// errSideCacheFailed returns an error when a side cache document cannot be read or written.
func errSideCacheFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeSideCacheFailed, fmt.Errorf("sideCacheFailed: %w", cause))
}
