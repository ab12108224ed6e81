// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service/http layers.
var (
	// ErrNotFound indicates the requested entity does not exist or is not visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates a missing or invalid session, or a role the route does not accept.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBadRequest indicates malformed or missing input fields.
	ErrBadRequest = errors.New("bad request")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")
)
