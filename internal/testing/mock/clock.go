package mock

import (
	"sync"
	"time"
)

// Clock is the time source the bridge stamps forwarded events with.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

// Now returns time.Now.
func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock is a Clock that only moves when told to. It is safe for use from
// listeners running on other goroutines.
type MockClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewMockClock returns a clock stopped at t, or at the current time when t
// is zero.
func NewMockClock(t time.Time) *MockClock {
	if t.IsZero() {
		t = time.Now()
	}
	return &MockClock{current: t}
}

// Now returns the stopped time.
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// NowMillis returns the stopped time in milliseconds since the epoch, the
// unit of registry.Event.Timestamp.
func (m *MockClock) NowMillis() int64 {
	return m.Now().UnixMilli()
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

// Set moves the clock to t.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}
