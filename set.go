package lazycache

import "time"

// set replaces any entry for key with a new one. NOTE: Should be called with a lock.
func (c *Cache[T]) set(key string, value T, ttl time.Duration) {
	if isAbsent(value) {
		c.remove(key)
		return
	}
	c.remove(key)
	c.insert(key, value, c.resolveTTL(ttl))
	c.maybeVacuum()
}

// Set writes a value to the cache using the cache's default TTL. Setting an
// absent value, such as a nil pointer, deletes the key. Set always returns true.
func (c *Cache[T]) Set(key any, value T) bool {
	return c.SetWithTTL(key, value, DefaultExpiration)
}

// SetWithTTL writes a value that expires after ttl. DefaultExpiration uses
// the cache's TTL and NoExpiration stores a value that never expires. An
// existing entry for the key is replaced, which resets both its TTL and its
// position in the recency list.
func (c *Cache[T]) SetWithTTL(key any, value T, ttl time.Duration) bool {
	k := c.canonicalKey(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.set(k, value, ttl)
	return true
}

// Delete removes a single entry from the cache. It returns true if the key was present.
func (c *Cache[T]) Delete(key any) bool {
	k := c.canonicalKey(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.remove(k)
}

// EmptyOut deletes every entry in the cache.
func (c *Cache[T]) EmptyOut() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.index {
		c.remove(key)
	}
}
