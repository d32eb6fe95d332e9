package backend

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/MGabeD/chrysus/internal/errors"
)

// TransportError wraps a network-level failure: the request never
// produced an HTTP response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is a non-success HTTP status from the backend, optionally
// carrying the structured detail message FastAPI-style backends attach.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// DecodeError is a 2xx response whose body could not be decoded into
// the expected shape.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed payload from %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Classify maps a backend error onto the facade's error-code taxonomy.
// A 404 means the backend has no data behind the holder; every other
// non-success status is a generic backend rejection.
func Classify(err error) apperrors.ErrorCode {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusNotFound {
			return apperrors.HolderNoData
		}
		return apperrors.FetchBadStatus
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return apperrors.FetchMalformedBody
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return apperrors.FetchTransportFailed
	}

	return apperrors.SystemInternalError
}

// DisplayMessage converts any backend error into the human-readable
// text a view surfaces. Structured backend detail wins when present.
func DisplayMessage(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Detail != "" {
		return statusErr.Detail
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return "The analysis backend returned an unreadable payload"
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return "Failed to reach the analysis backend"
	}

	if errors.As(err, &statusErr) {
		return fmt.Sprintf("The analysis backend rejected the request (HTTP %d)", statusErr.StatusCode)
	}

	return "Failed to fetch data"
}
