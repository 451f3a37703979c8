package lazycache

import (
	"context"
	"fmt"
)

// Flight is the shared result of a provider call. Every caller of Provide
// that asks for the same key while the call is outstanding gets the same Flight.
type Flight[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newResolvedFlight[T any](val T) *Flight[T] {
	f := &Flight[T]{done: make(chan struct{}), val: val}
	close(f.done)
	return f
}

// Done returns a channel that is closed once the flight has a result.
func (f *Flight[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the provider has returned, or until ctx is done. A
// cancelled ctx only stops this caller from waiting; the provider call
// itself runs to completion.
func (f *Flight[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// newFlight should be called with a lock.
func (c *Cache[T]) newFlight(key string) *Flight[T] {
	call := &Flight[T]{done: make(chan struct{})}
	c.inFlightMap[key] = call
	return call
}

// endFlight removes the registration before the value is stored, and then
// releases the callers that are waiting on the flight.
func (c *Cache[T]) endFlight(call *Flight[T], key string, response any, err error) {
	c.mu.Lock()
	if c.inFlightMap[key] == call {
		delete(c.inFlightMap, key)
	}
	if err == nil {
		var absent bool
		call.val, absent, call.err = unwrap[T](response)
		switch {
		case call.err != nil:
		case absent:
			c.remove(key)
		default:
			c.set(key, call.val, DefaultExpiration)
		}
	} else {
		call.err = err
	}
	c.mu.Unlock()
	close(call.done)
}

// unwrap converts a provider response to T. A nil response is reported as
// absent, since its zero value may not be absent for T.
func unwrap[T any](response any) (value T, absent bool, err error) {
	if response == nil {
		return value, true, nil
	}
	res, ok := response.(T)
	if !ok {
		return value, false, ErrInvalidType
	}
	return res, false, nil
}

func (c *Cache[T]) callProvider(ctx context.Context, call *Flight[T], key string, args []any) {
	var (
		response any
		err      error
	)
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("lazycache: recovered from panic in provider", "key", key, "panic", fmt.Sprint(r))
			err = fmt.Errorf("%w: %v", ErrProviderPanic, r)
		}
		c.endFlight(call, key, response, err)
	}()
	response, err = c.cfg.provider(ctx, args...)
}

// ProvideAsync returns the cached value for the key derived from args, or
// the flight of a provider call that will produce it. Concurrent calls for
// the same key share a single provider call. The provider is called with a
// context that keeps ctx's values but is never cancelled.
//
// ErrNoProvider is returned straight away if the cache has no provider.
func (c *Cache[T]) ProvideAsync(ctx context.Context, args ...any) (*Flight[T], error) {
	if c.cfg.provider == nil {
		return nil, ErrNoProvider
	}

	key := c.argsKey(args...)

	c.mu.Lock()
	if value, ok := c.get(key); ok {
		c.reportCacheHits(true)
		c.maybeVacuum()
		c.mu.Unlock()
		return newResolvedFlight(value), nil
	}
	c.reportCacheHits(false)
	c.maybeVacuum()

	if call, ok := c.inFlightMap[key]; ok {
		c.mu.Unlock()
		c.reportProviderCoalesced()
		return call, nil
	}

	call := c.newFlight(key)
	c.mu.Unlock()

	providerCtx := context.WithoutCancel(ctx)
	go c.callProvider(providerCtx, call, key, args)
	return call, nil
}

// Provide is ProvideAsync followed by a Wait on the returned flight.
func (c *Cache[T]) Provide(ctx context.Context, args ...any) (T, error) {
	call, err := c.ProvideAsync(ctx, args...)
	if err != nil {
		var zero T
		return zero, err
	}
	return call.Wait(ctx)
}
