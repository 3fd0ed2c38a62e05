package avito

import "fmt"

// TransportError wraps connection-level failures (dial errors, timeouts).
// The executor retries these after the configured delay.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AuthError indicates a failed client-credentials token exchange. It is
// fatal for the request chain that triggered the refresh.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("token refresh failed (status %d): %s", e.Status, e.Body)
}

// APIError carries a non-retryable 4xx response (excluding 401) with the
// server-provided detail.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.Status, e.Body)
}

// RetryExhaustedError is returned when a request chain used up its attempt
// budget without reaching a terminal state.
type RetryExhaustedError struct {
	Endpoint string
	Attempts int
	Last     error
}

func (e *RetryExhaustedError) Error() string {
	if e.Last == nil {
		return fmt.Sprintf("retries exhausted after %d attempts for %s", e.Attempts, e.Endpoint)
	}
	return fmt.Sprintf("retries exhausted after %d attempts for %s: %v", e.Attempts, e.Endpoint, e.Last)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Last
}
