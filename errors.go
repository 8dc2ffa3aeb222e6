package promptstudio

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoImage is returned when the remote call succeeded at the transport
// level but its response contained no image payload.
var ErrNoImage = errors.New("no image in model response")

// ErrStorageNotConfigured is returned when an export is attempted without a
// configured storage backend.
var ErrStorageNotConfigured = errors.New("storage not configured")

// RateLimitError is returned when the request rate limit is hit.
type RateLimitError struct {
	RetryAfter time.Duration
	Model      string
	Err        error // Underlying error from the provider, if any
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s: retry after %v",
		e.Model, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// IsRateLimitError checks if an error is a RateLimitError.
func IsRateLimitError(err error) bool {
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}
