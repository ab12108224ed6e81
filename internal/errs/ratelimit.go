package errs

import (
	"fmt"
	"time"
)

// RetryAfterError is a rate-limit failure carrying how long the caller must wait.
type RetryAfterError struct {
	After time.Duration
}

func (e *RetryAfterError) Error() string {
	return fmt.Sprintf("%s: retry after %s", ErrRateLimited, e.After.Round(time.Second))
}

// Unwrap lets errors.Is match ErrRateLimited.
func (e *RetryAfterError) Unwrap() error { return ErrRateLimited }
