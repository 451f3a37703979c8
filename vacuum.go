package lazycache

// maybeVacuum decides whether the cache should be vacuumed now, later, or
// not at all. It runs at the end of every get and set. NOTE: Should be called with a lock.
func (c *Cache[T]) maybeVacuum() {
	if c.vacuumPending {
		return
	}

	size := len(c.index)
	if c.finiteTTL == 0 && (!c.bounded() || size < c.cfg.capacity) {
		return
	}

	due := c.cfg.clock.Now().Sub(c.lastVacuumAt) >= c.cfg.vacuumFrequency
	overflowing := c.bounded() && float64(size) >= float64(c.cfg.capacity)*c.cfg.vacuumOverflowFactor
	if !due && !overflowing {
		return
	}

	if !c.cfg.vacuumInBackground {
		c.vacuum()
		return
	}

	c.vacuumPending = true
	c.schedule(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// A forced vacuum could have run since this one was scheduled.
		if !c.vacuumPending {
			return
		}
		c.vacuum()
	})
}

func (c *Cache[T]) schedule(task func()) {
	if c.cfg.scheduler != nil {
		c.cfg.scheduler(task)
		return
	}
	c.safeGo(task)
}

// vacuum removes the expired entries, and then evicts the least recently
// used entries until the cache is within its capacity. NOTE: Should be called with a lock.
func (c *Cache[T]) vacuum() {
	c.vacuumPending = false
	now := c.cfg.clock.Now()
	c.lastVacuumAt = now

	var expired int
	if c.finiteTTL > 0 {
		for key, idx := range c.index {
			if c.slots[idx].expired(now) {
				c.remove(key)
				expired++
			}
			if c.finiteTTL == 0 {
				break
			}
		}
	}

	var evicted int
	if c.bounded() {
		for len(c.index) > c.cfg.capacity && c.tail != nilSlot {
			c.remove(c.slots[c.tail].key)
			evicted++
		}
	}

	c.reportVacuum(expired, evicted)
	c.log.Debug("lazycache: vacuumed",
		"expired", expired,
		"evicted", evicted,
		"size", len(c.index),
	)
}
