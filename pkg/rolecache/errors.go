package rolecache

import "errors"

var (
	// ErrNotFound indicates no cached entry exists for the user.
	ErrNotFound = errors.New("rolecache.not_found")

	// ErrInvalidEntry indicates a nil or keyless entry was passed to a store.
	ErrInvalidEntry = errors.New("rolecache.invalid_entry")

	// ErrEmptyRole indicates the remote lookup succeeded but returned no role.
	ErrEmptyRole = errors.New("rolecache.empty_role")

	// ErrNoLookup indicates a resolver was constructed without a lookup function.
	ErrNoLookup = errors.New("rolecache.no_lookup")
)
