// Package clock abstracts wall time and timers so key schedules can be
// driven by a simulated clock in tests.
package clock

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock reports the current time and schedules callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(delay time.Duration, fn func()) Timer
}

type realClock struct{}

// Real returns the system clock.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(delay time.Duration, fn func()) Timer {
	return time.AfterFunc(delay, fn)
}

// NowMs returns the clock time as epoch milliseconds.
func NowMs(clock Clock) int64 {
	return clock.Now().UnixMilli()
}
