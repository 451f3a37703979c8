package lazycache

// RecencyOrder returns the keys from the most to the least recently used.
func (c *Cache[T]) RecencyOrder() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.index))
	for idx := c.head; idx != nilSlot; idx = c.slots[idx].next {
		keys = append(keys, c.slots[idx].key)
	}
	return keys
}

// ReverseRecencyOrder walks the recency list from the tail.
func (c *Cache[T]) ReverseRecencyOrder() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.index))
	for idx := c.tail; idx != nilSlot; idx = c.slots[idx].prev {
		keys = append(keys, c.slots[idx].key)
	}
	return keys
}

// Neighbours returns the keys linked before and after key, or "" when there is none.
func (c *Cache[T]) Neighbours(key string) (prev, next string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.slots[c.index[key]]
	if e.prev != nilSlot {
		prev = c.slots[e.prev].key
	}
	if e.next != nilSlot {
		next = c.slots[e.next].key
	}
	return prev, next
}

// Ends returns the keys at the head and tail of the recency list.
func (c *Cache[T]) Ends() (head, tail string, empty bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.head == nilSlot && c.tail == nilSlot {
		return "", "", true
	}
	return c.slots[c.head].key, c.slots[c.tail].key, false
}

// FiniteTTLCount returns the number of entries that have a TTL.
func (c *Cache[T]) FiniteTTLCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finiteTTL
}

// VacuumPending reports whether a deferred vacuum is waiting to run.
func (c *Cache[T]) VacuumPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vacuumPending
}
