package lazycache

// attachToHead links the entry at idx in as the most recently used entry.
func (c *Cache[T]) attachToHead(idx int32) {
	e := &c.slots[idx]
	e.prev = nilSlot
	e.next = c.head
	if c.head != nilSlot {
		c.slots[c.head].prev = idx
	}
	c.head = idx
	if c.tail == nilSlot {
		c.tail = idx
	}
}

// detach unlinks the entry at idx and clears its own links.
func (c *Cache[T]) detach(idx int32) {
	e := &c.slots[idx]
	if e.prev != nilSlot {
		c.slots[e.prev].next = e.next
	} else if c.head == idx {
		c.head = e.next
	}
	if e.next != nilSlot {
		c.slots[e.next].prev = e.prev
	} else if c.tail == idx {
		c.tail = e.prev
	}
	e.prev = nilSlot
	e.next = nilSlot
}

// touch marks the entry at idx as the most recently used one.
func (c *Cache[T]) touch(idx int32) {
	if c.head == idx {
		return
	}
	c.detach(idx)
	c.attachToHead(idx)
}
