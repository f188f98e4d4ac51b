package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBody is returned when a provider answers 2xx without a usable payload.
	ErrEmptyBody = errors.New("empty response body")

	// ErrNoResults is returned when every location provider came up empty.
	ErrNoResults = errors.New("no locations found")

	// ErrNoProviders is returned when the gateway has nothing to call.
	ErrNoProviders = errors.New("no providers configured")
)

// HTTPError reports a non-2xx response from an upstream provider.
type HTTPError struct {
	Provider string
	Status   int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: unexpected status code %d", e.Provider, e.Status)
}

// TransportError reports a failure to reach an upstream provider at all:
// connection refused, DNS, timeout or an open circuit.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusOf returns the HTTP status carried by err, or 0 if there is none.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}
