package lazycache

import (
	"sync"
	"time"
)

// Clock is the source of time for entry timestamps and vacuum scheduling.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

// NewClock returns a Clock backed by time.Now.
func NewClock() Clock {
	return &realClock{}
}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// TestClock is a Clock that only moves when it is told to. This is useful for testing.
type TestClock struct {
	mu   sync.Mutex
	time time.Time
}

func NewTestClock(t time.Time) *TestClock {
	return &TestClock{time: t}
}

func (c *TestClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.time
}

// Set moves the clock to t.
func (c *TestClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.time = t
}

// Add moves the clock forward by d.
func (c *TestClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.time = c.time.Add(d)
}
