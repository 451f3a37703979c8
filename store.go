package lazycache

import (
	"reflect"
	"time"
)

// alloc places e in a free slot, growing the arena when there is none.
func (c *Cache[T]) alloc(e entry[T]) int32 {
	e.prev = nilSlot
	e.next = nilSlot
	if n := len(c.free); n > 0 {
		idx := c.free[n-1]
		c.free = c.free[:n-1]
		c.slots[idx] = e
		return idx
	}
	c.slots = append(c.slots, e)
	return int32(len(c.slots) - 1)
}

// release zeroes the slot so that the value can be garbage collected.
func (c *Cache[T]) release(idx int32) {
	c.slots[idx] = entry[T]{prev: nilSlot, next: nilSlot}
	c.free = append(c.free, idx)
}

// insert stores a new entry for key. The caller must have removed any
// previous entry for the same key. NOTE: Should be called with a lock.
func (c *Cache[T]) insert(key string, value T, ttl time.Duration) {
	idx := c.alloc(entry[T]{
		key:       key,
		value:     value,
		ttl:       ttl,
		createdAt: c.cfg.clock.Now(),
	})
	if c.bounded() {
		c.attachToHead(idx)
	}
	c.index[key] = idx
	if ttl > 0 {
		c.finiteTTL++
	}
}

// remove deletes the entry for key. Every deletion, explicit or not, goes
// through here. NOTE: Should be called with a lock.
func (c *Cache[T]) remove(key string) bool {
	idx, ok := c.index[key]
	if !ok {
		return false
	}
	if c.bounded() {
		c.detach(idx)
	}
	if c.slots[idx].ttl > 0 {
		c.finiteTTL--
	}
	delete(c.index, key)
	c.release(idx)
	return true
}

// resolveTTL turns the TTL passed to SetWithTTL into the one that is stored.
func (c *Cache[T]) resolveTTL(ttl time.Duration) time.Duration {
	switch {
	case ttl == DefaultExpiration:
		return c.cfg.ttl
	case ttl < 0:
		return 0
	default:
		return ttl
	}
}

// isAbsent reports whether v is the value that Set treats as a deletion: a
// nil interface, pointer, chan, func or unsafe pointer. Nil maps and slices
// are stored like any other value.
func isAbsent[T any](v T) bool {
	a := any(v)
	if a == nil {
		return true
	}
	rv := reflect.ValueOf(a)
	//nolint:exhaustive // Only the kinds that have a nil value that means "nothing".
	switch rv.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
