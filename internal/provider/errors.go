package provider

import (
	"errors"
	"fmt"
)

// ErrWordNotFound means the dictionary service reports the word does not exist.
// It is an outcome, not a failure: callers turn it into a not-found result.
var ErrWordNotFound = errors.New("word not found")

// ErrNoResponse means the request was sent but no response was received
// (connection refused, timeout, reset).
var ErrNoResponse = errors.New("no response from dictionary service")

// ErrMalformedResponse means a 2xx response could not be decoded into the
// expected shape. Lookups fail fast instead of guessing.
var ErrMalformedResponse = errors.New("malformed dictionary response")

// ServerError is a non-2xx response other than 404.
type ServerError struct {
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("bad response from dictionary service: status %d", e.Status)
}

// RequestSetupError means the request could not even be constructed.
type RequestSetupError struct {
	Err error
}

func (e *RequestSetupError) Error() string {
	return "set up dictionary request: " + e.Err.Error()
}

func (e *RequestSetupError) Unwrap() error { return e.Err }

// IsTransportError reports whether err is one of the failures that leave the
// lookup state untouched: server error, no response, request setup or a
// malformed body.
func IsTransportError(err error) bool {
	if err == nil {
		return false
	}
	var se *ServerError
	var rse *RequestSetupError
	return errors.As(err, &se) ||
		errors.As(err, &rse) ||
		errors.Is(err, ErrNoResponse) ||
		errors.Is(err, ErrMalformedResponse)
}
