// Package clock stamps snapshot records so tests can pin the time
package clock

import "time"

// Clock reports the current instant
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock
type Func func() time.Time

// Now calls f
func (f Func) Now() time.Time {
	return f()
}

// New returns the wall clock in UTC
func New() Clock {
	return Func(func() time.Time { return time.Now().UTC() })
}

// Fixed always reports At
type Fixed struct {
	At time.Time
}

func (c *Fixed) Now() time.Time {
	return c.At
}
