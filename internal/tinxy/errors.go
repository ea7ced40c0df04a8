package tinxy

import (
	"errors"
	"fmt"
)

// Sentinel errors for Tinxy cloud operations.
var (
	// ErrTimeout indicates the vendor call exceeded the request timeout.
	ErrTimeout = errors.New("tinxy: request timed out")

	// ErrConnectionFailed indicates a network-level failure (DNS,
	// connection refused, reset) before an HTTP response was received.
	ErrConnectionFailed = errors.New("tinxy: connection failed")

	// ErrMalformedResponse indicates the vendor returned a payload that
	// could not be parsed.
	ErrMalformedResponse = errors.New("tinxy: malformed response")

	// ErrStateUndetermined indicates a toggle was refused because the
	// current channel state could not be read. Toggling blind is
	// disallowed: the complement of an unknown state is a guess.
	ErrStateUndetermined = errors.New("tinxy: current state undetermined")
)

// HTTPError is returned when the vendor responds with a non-2xx status.
// The response is never retried at this layer; callers interpret the
// status code themselves.
type HTTPError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("tinxy: HTTP %d: %s", e.StatusCode, e.Body)
}
