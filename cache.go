package lazycache

import (
	"sync"
	"time"
)

// Cache is an in-memory key-value cache with optional LRU capacity bounding
// and per-entry TTLs. Expired and overflowing entries are removed by vacuums
// that the cache's own operations trigger; there is no janitor goroutine.
type Cache[T any] struct {
	cfg config
	log Logger

	mu sync.Mutex

	// The entries live in an arena. index maps canonical keys to slots,
	// and free holds the slots that can be reused.
	slots []entry[T]
	free  []int32
	index map[string]int32

	// Recency list over the arena. Only maintained when capacity > 0.
	head int32
	tail int32

	finiteTTL     int
	lastVacuumAt  time.Time
	vacuumPending bool

	inFlightMap map[string]*Flight[T]
}

// New creates a new Cache instance with the specified configuration.
// Invalid options result in a panic.
func New[T any](opts ...Option) *Cache[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	validateConfig(&cfg)

	c := &Cache[T]{
		cfg:         cfg,
		log:         cfg.log,
		index:       make(map[string]int32),
		head:        nilSlot,
		tail:        nilSlot,
		inFlightMap: make(map[string]*Flight[T]),
	}
	c.lastVacuumAt = cfg.clock.Now()

	if cfg.metricsRecorder != nil {
		cfg.metricsRecorder.ObserveCacheSize(c.Size)
	}

	return c
}

// Size returns the number of entries in the cache. Expired entries that
// haven't been vacuumed yet are included.
func (c *Cache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// NumKeysInflight returns the number of provider calls that are in-flight.
func (c *Cache[T]) NumKeysInflight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.inFlightMap)
}

func (c *Cache[T]) bounded() bool {
	return c.cfg.capacity > 0
}
