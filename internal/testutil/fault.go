package testutil

import (
	"sync"
	"time"

	"github.com/arloliu/radguard/types"
)

// FaultRecorder collects calls made to a types.FaultHandler.
type FaultRecorder struct {
	mu       sync.Mutex
	patterns []types.FaultPattern
	details  []string
}

// Handle implements types.FaultHandler; pass recorder.Handle where a handler is expected.
func (r *FaultRecorder) Handle(pattern types.FaultPattern, detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patterns = append(r.patterns, pattern)
	r.details = append(r.details, detail)
}

// Patterns returns the recorded patterns in call order.
func (r *FaultRecorder) Patterns() []types.FaultPattern {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.FaultPattern(nil), r.patterns...)
}

// Details returns the recorded details in call order.
func (r *FaultRecorder) Details() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.details...)
}

// Len returns the number of recorded calls.
func (r *FaultRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.patterns)
}

// FakeClock is a manually advanced clock for deterministic time-based tests.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock creates a clock starting at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the current fake time. Pass clock.Now where a clock func is expected.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
