package lazycache

type MetricsRecorder interface {
	// CacheHit is called for every Get that finds a live entry.
	CacheHit()
	// CacheMiss is called for every Get that doesn't.
	CacheMiss()
	// Vacuum is called every time the cache runs a vacuum.
	Vacuum()
	// EntriesExpired is called with the number of entries a vacuum removed
	// because their TTL had elapsed.
	EntriesExpired(int)
	// EntriesEvicted is called with the number of entries a vacuum removed to
	// bring the cache back within its capacity.
	EntriesEvicted(int)
	// ProviderCoalesced is called when a call to Provide joins a fetch that
	// is already in-flight instead of starting a new one.
	ProviderCoalesced()
	// ObserveCacheSize is called to report the size of the cache.
	ObserveCacheSize(callback func() int)
}

// reportCacheHits is used to report cache hits and misses to the metrics recorder.
func (c *Cache[T]) reportCacheHits(cacheHit bool) {
	if c.cfg.metricsRecorder == nil {
		return
	}
	if !cacheHit {
		c.cfg.metricsRecorder.CacheMiss()
		return
	}
	c.cfg.metricsRecorder.CacheHit()
}

func (c *Cache[T]) reportVacuum(expired, evicted int) {
	if c.cfg.metricsRecorder == nil {
		return
	}
	c.cfg.metricsRecorder.Vacuum()
	if expired > 0 {
		c.cfg.metricsRecorder.EntriesExpired(expired)
	}
	if evicted > 0 {
		c.cfg.metricsRecorder.EntriesEvicted(evicted)
	}
}

func (c *Cache[T]) reportProviderCoalesced() {
	if c.cfg.metricsRecorder == nil {
		return
	}
	c.cfg.metricsRecorder.ProviderCoalesced()
}
