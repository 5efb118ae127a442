package domain

import (
	"errors"
	"fmt"
)

// Error kinds the transport layer maps to status codes. Callers branch with
// errors.Is / errors.As, never on message text.

var (
	// ErrNotFound: the feed has no object for a by-id lookup.
	ErrNotFound = errors.New("neo not found")

	// ErrValidation: malformed caller parameters, raised before any cache
	// lookup or upstream call.
	ErrValidation = errors.New("invalid request parameters")
)

// UpstreamError reports a network failure or non-success status from the
// feed. Status is 0 when no HTTP response was received.
type UpstreamError struct {
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream feed returned status %d", e.Status)
	}
	return fmt.Sprintf("upstream feed unavailable: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Validationf wraps ErrValidation with a caller-facing detail.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}
