package lazycache

import "errors"

var (
	// ErrNoProvider is returned by Provide and ProvideAsync when the cache
	// was created without WithProvider. It is a programming error, and it is
	// returned before any asynchronous work is started.
	ErrNoProvider = errors.New("lazycache: no provider has been configured")
	// ErrProviderPanic wraps the value recovered from a provider that panicked.
	// The in-flight registration is still cleared, so the next call retries.
	ErrProviderPanic = errors.New("lazycache: provider panicked")
	// ErrInvalidType is returned when a provider returns a value that can't be
	// stored in the cache because of its type.
	ErrInvalidType = errors.New("lazycache: invalid response type")
)
