package clock

import (
	"sync"
	"time"
)

// Clock is the time source used by scheduling logic.
type Clock interface {
	Now() time.Time
}

type clock struct{}

func New() Clock {
	return &clock{}
}

func (c *clock) Now() time.Time {
	return time.Now()
}

// ManagedClock is a hand-driven clock for tests.
type ManagedClock struct {
	mu        sync.Mutex
	startTime time.Time
	offset    time.Duration
}

func NewManaged(startTime time.Time) *ManagedClock {
	return &ManagedClock{startTime: startTime}
}

func (c *ManagedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startTime.Add(c.offset)
}

// WarpForward moves the clock forward by offset and returns the new time.
func (c *ManagedClock) WarpForward(offset time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset += offset
	return c.startTime.Add(c.offset)
}
