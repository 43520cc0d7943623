package service

import "time"

// PerformanceTracker is a monotonic clock. Only differences between two Now
// readings are meaningful.
type PerformanceTracker interface {
	Now() time.Duration
}

type monotonicClock struct{ start time.Time }

// NewMonotonicClock returns a PerformanceTracker measuring time since its creation.
func NewMonotonicClock() PerformanceTracker {
	return monotonicClock{start: time.Now()}
}

func (c monotonicClock) Now() time.Duration { return time.Since(c.start) }
