package shared

import "time"

// Clock supplies wall-clock time to the engine so cycle timestamps can be
// pinned in tests.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock in UTC
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return RealClock{}
}

// MockClock is a Clock that only moves when told to.
type MockClock struct {
	CurrentTime time.Time
}

// NewMockClock creates a MockClock at start, or at a fixed epoch when start
// is zero.
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return &MockClock{CurrentTime: start}
}

func (m *MockClock) Now() time.Time {
	return m.CurrentTime
}

// Advance moves the clock forward by d
func (m *MockClock) Advance(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
}
