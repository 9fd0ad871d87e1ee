package clock

import "time"

// Clock is the source of record timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System reads the wall clock in UTC.
var System Clock = systemClock{}

// Fixed always returns the same instant. Set moves it.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time {
	return f.T
}

// Set changes the instant returned by Now.
func (f *Fixed) Set(t time.Time) {
	f.T = t
}
