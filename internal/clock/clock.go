package clock

import "time"

// Clock abstracts wall time and one-shot timers so timed behavior can be
// fast-forwarded in tests.
type Clock interface {
	Now() time.Time
	// AfterFunc schedules f to run once after d. The callback must never run
	// from inside AfterFunc itself.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or was already stopped.
	Stop() bool
}

// Real is the production clock backed by package time.
type Real struct{}

// New returns the production clock
func New() Real {
	return Real{}
}

// Now returns the current local time
func (Real) Now() time.Time {
	return time.Now()
}

// AfterFunc wraps time.AfterFunc
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
