package lazycache

import "fmt"

// safeGo runs fn on a new goroutine. A panic is logged instead of taking the process down.
func (c *Cache[T]) safeGo(fn func()) {
	go func() {
		defer func() {
			if err := recover(); err != nil {
				c.log.Error("lazycache: recovered from panic in background task", "panic", fmt.Sprint(err))
			}
		}()
		fn()
	}()
}
