package contract

import "errors"

// Error taxonomy for cache operations. Callers match with errors.Is.
var (
	// ErrInvalidReference means the input could not be parsed as a repository
	// reference or failed owner/repo name validation. No filesystem or
	// network action was taken.
	ErrInvalidReference = errors.New("invalid repository reference")

	// ErrFetchFailed means the clone collaborator reported failure or its
	// output failed post-clone validation. Any partial clone has been
	// cleaned up before this error surfaces.
	ErrFetchFailed = errors.New("repository fetch failed")

	// ErrStoreUnavailable means a metadata store write failed after a load
	// succeeded. Surfaced rather than swallowed so the durable state is
	// never silently out of sync with the in-memory view.
	ErrStoreUnavailable = errors.New("cache store unavailable")

	// ErrDeletionFailed means clone removal failed during an evict/delete
	// step. The store record is deliberately left intact so the cache never
	// advertises an entry it cannot serve.
	ErrDeletionFailed = errors.New("cache deletion failed")
)
