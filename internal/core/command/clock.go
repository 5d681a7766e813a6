package command

import "time"

// Clock is the time source of the response lifecycle. It drives the autodefer
// grace period, the validity windows and delete-after timers.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
