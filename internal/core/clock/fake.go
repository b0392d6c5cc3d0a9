package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced clock. Timers fire synchronously from Advance
// in deadline order.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock *Fake
	when  time.Time
	seq   int
	fn    func()
}

// NewFake returns a fake clock positioned at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the simulated time.
func (fake *Fake) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.now
}

// AfterFunc schedules fn to run once the clock has advanced by delay.
func (fake *Fake) AfterFunc(delay time.Duration, fn func()) Timer {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.seq++
	timer := &fakeTimer{clock: fake, when: fake.now.Add(delay), seq: fake.seq, fn: fn}
	fake.timers = append(fake.timers, timer)
	return timer
}

// Advance moves the clock forward, firing every timer that falls due.
// Timers scheduled by callbacks fire too if they are due before the target.
func (fake *Fake) Advance(delta time.Duration) {
	fake.mu.Lock()
	target := fake.now.Add(delta)
	fake.mu.Unlock()

	for {
		fake.mu.Lock()
		next := fake.popDueLocked(target)
		if next == nil {
			fake.now = target
			fake.mu.Unlock()
			return
		}
		fake.now = next.when
		fake.mu.Unlock()
		next.fn()
	}
}

// Set advances the clock to an absolute time. Moving backwards only
// changes Now.
func (fake *Fake) Set(at time.Time) {
	now := fake.Now()
	if at.Before(now) {
		fake.mu.Lock()
		fake.now = at
		fake.mu.Unlock()
		return
	}
	fake.Advance(at.Sub(now))
}

// Pending returns the number of timers that have not fired or been stopped.
func (fake *Fake) Pending() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.timers)
}

func (fake *Fake) popDueLocked(target time.Time) *fakeTimer {
	if len(fake.timers) == 0 {
		return nil
	}
	sort.SliceStable(fake.timers, func(i, j int) bool {
		if fake.timers[i].when.Equal(fake.timers[j].when) {
			return fake.timers[i].seq < fake.timers[j].seq
		}
		return fake.timers[i].when.Before(fake.timers[j].when)
	})
	next := fake.timers[0]
	if next.when.After(target) {
		return nil
	}
	fake.timers = fake.timers[1:]
	return next
}

func (timer *fakeTimer) Stop() bool {
	fake := timer.clock
	fake.mu.Lock()
	defer fake.mu.Unlock()
	for i, pending := range fake.timers {
		if pending == timer {
			fake.timers = append(fake.timers[:i], fake.timers[i+1:]...)
			return true
		}
	}
	return false
}
