package lazycache

// get looks up the canonical key, removing it if it has expired and moving
// it to the head of the recency list if it hasn't. NOTE: Should be called with a lock.
func (c *Cache[T]) get(key string) (value T, exists bool) {
	idx, ok := c.index[key]
	if !ok {
		return value, false
	}

	e := &c.slots[idx]
	if e.expired(c.cfg.clock.Now()) {
		c.remove(key)
		return value, false
	}

	if c.bounded() {
		c.touch(idx)
	}
	return e.value, true
}

// Get retrieves a value from the cache. An expired entry is removed and
// reported as missing.
func (c *Cache[T]) Get(key any) (T, bool) {
	k := c.canonicalKey(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.get(k)
	c.reportCacheHits(ok)
	c.maybeVacuum()
	return value, ok
}

// Has reports whether the key is in the cache. It is a Get that discards the
// value, so it touches the entry and may trigger a vacuum just like Get does.
func (c *Cache[T]) Has(key any) bool {
	_, ok := c.Get(key)
	return ok
}
