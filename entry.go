package lazycache

import "time"

// nilSlot marks the absence of a link in the recency list.
const nilSlot int32 = -1

// entry is a slot in the cache's arena. The prev and next links are
// indices into the same arena and are only maintained when the cache
// has a capacity.
type entry[T any] struct {
	key       string
	value     T
	ttl       time.Duration
	createdAt time.Time
	prev      int32
	next      int32
}

func (e *entry[T]) expired(now time.Time) bool {
	return e.ttl > 0 && now.Sub(e.createdAt) > e.ttl
}
