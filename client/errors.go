package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamUnreachable is returned when the upstream API cannot be
	// reached or answers with a non-success status.
	ErrUpstreamUnreachable = errors.New("upstream unreachable")

	// ErrMalformedResponse is returned when a response body does not have
	// the expected JSON shape.
	ErrMalformedResponse = errors.New("malformed response")
)

// HTTPError represents an HTTP error response.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.URL)
}

// IsNotFound returns true if the error represents a 404 response.
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == 404
}

func (e *HTTPError) Unwrap() error {
	return ErrUpstreamUnreachable
}

// RateLimitError is returned when the upstream rate limits requests.
type RateLimitError struct {
	RetryAfter int // seconds
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %d seconds", e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return ErrUpstreamUnreachable
}

// TransportError wraps a network level failure.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrUpstreamUnreachable, e.Err}
}

// MalformedResponseError reports a body that failed to decode or validate.
type MalformedResponseError struct {
	URL string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
}

func (e *MalformedResponseError) Unwrap() []error {
	return []error{ErrMalformedResponse, e.Err}
}
