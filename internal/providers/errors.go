package providers

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable is returned when no data source is configured.
var ErrSourceUnavailable = errors.New("data source unavailable")

// ErrMalformedPayload marks a response body that could not be decoded or failed validation.
var ErrMalformedPayload = errors.New("malformed payload")

// FetchError captures a failed call to the remote data source: a transport error,
// a non-success status, or a payload that could not be understood.
type FetchError struct {
	Source     string
	Op         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	msg := "fetch failed"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	prefix := e.Op
	if e.Source != "" {
		prefix = e.Source + " " + e.Op
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status=%d)", prefix, msg, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", prefix, msg)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps err as a FetchError unless it already is one.
func NewFetchError(source, op string, status int, err error) error {
	if fe, ok := AsFetchError(err); ok {
		return fe
	}
	return &FetchError{Source: source, Op: op, StatusCode: status, Err: err}
}

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
