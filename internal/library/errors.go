package library

import "errors"

var (
	// ErrInvalidPayload marks requests rejected at the service boundary
	// before any store or index access.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrNotFound marks mutations against an unknown record id. No partial
	// mutation occurs.
	ErrNotFound = errors.New("record not found")

	// ErrIndexUnavailable marks a request that failed because the search
	// index could not be built after a retry.
	ErrIndexUnavailable = errors.New("search index unavailable")
)
