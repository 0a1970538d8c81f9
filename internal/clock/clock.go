// Package clock provides a time abstraction for testable time-dependent code.
// Use RealClock for production and MockClock for testing.
package clock

import (
	"context"
	"sync"
	"time"
)

// Clock is an interface for time operations, allowing time to be mocked in tests.
type Clock interface {
	// Now returns the current wall clock time
	Now() time.Time

	// Since returns the time elapsed since t
	Since(t time.Time) time.Duration

	// Until returns the duration until t
	Until(t time.Time) time.Duration

	// WaitUntil blocks until the wall clock reaches deadline or ctx is done.
	// It returns nil once the deadline has been reached, including when it was
	// already in the past, and ctx.Err() on cancellation.
	WaitUntil(ctx context.Context, deadline time.Time) error
}

// RealClock implements Clock using the system wall clock
type RealClock struct{}

// NewRealClock creates a new RealClock instance
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t
func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// Until returns the duration until t
func (c *RealClock) Until(t time.Time) time.Duration {
	return time.Until(t)
}

// WaitUntil blocks until the wall clock reaches deadline. The wait is tied to
// the absolute deadline rather than a duration measured up front, so time the
// machine spends suspended counts towards it.
func (c *RealClock) WaitUntil(ctx context.Context, deadline time.Time) error {
	// Strip the monotonic reading so comparisons use the wall clock.
	return waitUntil(ctx, deadline.Round(0))
}

// MockClock is a Clock implementation for testing that allows manual time control
type MockClock struct {
	mu      sync.Mutex
	current time.Time
	waiters []*mockWaiter
}

type mockWaiter struct {
	deadline time.Time
	done     chan struct{}
}

// NewMockClock creates a new MockClock starting at the given time
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{
		current: start,
		waiters: make([]*mockWaiter, 0),
	}
}

// Now returns the mock current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Since returns the time elapsed since t using the mock current time
func (c *MockClock) Since(t time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Sub(t)
}

// Until returns the duration until t using the mock current time
func (c *MockClock) Until(t time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return t.Sub(c.current)
}

// WaitUntil blocks until Advance or Set moves the mock time to deadline or
// beyond, or until ctx is done.
func (c *MockClock) WaitUntil(ctx context.Context, deadline time.Time) error {
	c.mu.Lock()
	if !deadline.After(c.current) {
		c.mu.Unlock()
		return nil
	}
	w := &mockWaiter{deadline: deadline, done: make(chan struct{})}
	c.waiters = append(c.waiters, w)
	c.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		c.remove(w)
		return ctx.Err()
	}
}

// PendingWaiters returns the number of WaitUntil calls currently blocked.
// Tests use it to know when a goroutine has started waiting.
func (c *MockClock) PendingWaiters() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}

func (c *MockClock) remove(w *mockWaiter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, other := range c.waiters {
		if other == w {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			return
		}
	}
}

// Advance moves the mock clock forward by duration d and releases any waiters
// whose deadline has been reached
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.setLocked(c.current.Add(d))
	c.mu.Unlock()
}

// Set sets the mock clock to a specific time and releases any waiters whose
// deadline has been reached. Setting the time backwards releases nothing.
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.setLocked(t)
	c.mu.Unlock()
}

func (c *MockClock) setLocked(t time.Time) {
	c.current = t

	remaining := c.waiters[:0]
	for _, w := range c.waiters {
		if w.deadline.After(t) {
			remaining = append(remaining, w)
			continue
		}
		close(w.done)
	}
	c.waiters = remaining
}
