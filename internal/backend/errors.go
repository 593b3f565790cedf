package backend

import (
	"errors"
	"fmt"
)

// Sentinel errors for backend failure classes. Callers match with
// [errors.Is]; structured details travel in the wrapper types below and are
// extracted with [errors.As].
var (
	// ErrAuth is returned when the backend rejects the channel credential.
	ErrAuth = errors.New("backend rejected credential")

	// ErrRateLimited is returned when the backend's commit quota is
	// exhausted for the current time window.
	ErrRateLimited = errors.New("backend rate limit exceeded")

	// ErrBackend covers all other non-2xx backend replies.
	ErrBackend = errors.New("backend request failed")
)

// RateLimitError wraps [ErrRateLimited] and carries the backend's raw
// retry-after hint in seconds (0 when the backend provided none).
type RateLimitError struct {
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("backend rate limit exceeded, retry after %ds", e.RetryAfter)
	}
	return "backend rate limit exceeded"
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }
