package model

import "time"

// Clock abstracts wall-clock time so retention-boundary behavior is
// deterministically testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock used outside of tests.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time { return time.Now() }
