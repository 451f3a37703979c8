package lazycache

import (
	"context"
	"time"
)

const (
	// DefaultExpiration makes SetWithTTL use the TTL the cache was created with.
	DefaultExpiration time.Duration = 0
	// NoExpiration makes SetWithTTL store an entry that never expires by TTL.
	NoExpiration time.Duration = -1

	defaultVacuumFrequency      = 30 * time.Second
	defaultVacuumOverflowFactor = 2.0
)

// ProviderFunc fetches the value for a cache miss in Provide.
type ProviderFunc[T any] func(ctx context.Context, args ...any) (T, error)

// ArgsKeyFunc derives a cache key from the arguments passed to Provide.
type ArgsKeyFunc func(args ...any) string

// Scheduler runs a deferred vacuum. The task takes the cache lock, so it must
// not be run inline by the scheduler.
type Scheduler func(task func())

type anyProvider func(ctx context.Context, args ...any) (any, error)

type config struct {
	ttl                  time.Duration
	capacity             int
	vacuumFrequency      time.Duration
	vacuumOverflowFactor float64
	vacuumInBackground   bool
	provider             anyProvider
	argsKeyFn            ArgsKeyFunc
	hashProviderKeys     bool
	clock                Clock
	scheduler            Scheduler
	metricsRecorder      MetricsRecorder
	log                  Logger
}

type Option func(*config)

// WithTTL sets the TTL that entries get unless SetWithTTL says otherwise.
// Zero, the default, means that entries never expire.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.ttl = ttl
	}
}

// WithCapacity bounds the number of entries. Entries beyond the capacity are
// evicted in least recently used order the next time the cache vacuums. Zero,
// the default, leaves the cache unbounded and skips the recency bookkeeping.
func WithCapacity(capacity int) Option {
	return func(c *config) {
		c.capacity = capacity
	}
}

// WithVacuumFrequency sets the minimum interval between time triggered vacuums.
func WithVacuumFrequency(frequency time.Duration) Option {
	return func(c *config) {
		c.vacuumFrequency = frequency
	}
}

// WithVacuumOverflowFactor forces a vacuum once the cache holds
// capacity*factor entries, regardless of the vacuum frequency.
func WithVacuumOverflowFactor(factor float64) Option {
	return func(c *config) {
		c.vacuumOverflowFactor = factor
	}
}

// WithBackgroundVacuum controls whether vacuums are deferred to the scheduler
// (the default) or run inline by the operation that triggered them.
func WithBackgroundVacuum(enabled bool) Option {
	return func(c *config) {
		c.vacuumInBackground = enabled
	}
}

// WithProvider sets the function that Provide calls on a cache miss. The
// values it returns must be assignable to the cache's type parameter.
func WithProvider[V any](fn ProviderFunc[V]) Option {
	return func(c *config) {
		if fn == nil {
			c.provider = nil
			return
		}
		c.provider = func(ctx context.Context, args ...any) (any, error) {
			return fn(ctx, args...)
		}
	}
}

// WithArgsKeyFunc overrides how Provide turns its arguments into a cache key.
func WithArgsKeyFunc(fn ArgsKeyFunc) Option {
	return func(c *config) {
		c.argsKeyFn = fn
	}
}

// WithHashedProviderKeys makes the default provider key a 64 bit hash of the
// canonicalized arguments rather than the arguments themselves.
func WithHashedProviderKeys() Option {
	return func(c *config) {
		c.hashProviderKeys = true
	}
}

// WithClock can be used to change the clock that the cache uses. This is useful for testing.
func WithClock(clock Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithScheduler replaces the goroutine that deferred vacuums run on.
func WithScheduler(scheduler Scheduler) Option {
	return func(c *config) {
		c.scheduler = scheduler
	}
}

// WithMetrics is used to make the cache report metrics.
func WithMetrics(recorder MetricsRecorder) Option {
	return func(c *config) {
		c.metricsRecorder = recorder
	}
}

// WithLog sets the logger. *slog.Logger can be passed as is.
func WithLog(log Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

func defaultConfig() config {
	//nolint: exhaustruct // The options are going to set the remaining fields.
	return config{
		vacuumFrequency:      defaultVacuumFrequency,
		vacuumOverflowFactor: defaultVacuumOverflowFactor,
		vacuumInBackground:   true,
		clock:                NewClock(),
		log:                  noopLogger{},
	}
}

// validateConfig is a helper function that panics if the configuration is invalid.
func validateConfig(cfg *config) {
	if cfg.ttl < 0 {
		panic("ttl must not be negative")
	}

	if cfg.capacity < 0 {
		panic("capacity must not be negative")
	}

	if cfg.vacuumFrequency <= 0 {
		panic("vacuum frequency must be greater than 0")
	}

	if cfg.vacuumOverflowFactor < 1 {
		panic("vacuum overflow factor must be at least 1")
	}

	if cfg.clock == nil {
		panic("clock must not be nil")
	}

	if cfg.log == nil {
		panic("logger must not be nil")
	}

	if cfg.hashProviderKeys && cfg.argsKeyFn != nil {
		panic("hashed provider keys can't be combined with a custom args key function")
	}
}
