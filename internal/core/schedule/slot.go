// Package schedule provides single-slot timers for per-key schedules.
package schedule

import (
	"time"

	"deckwatch/internal/core/clock"
)

// Executor runs fn on the owner's serialized context. Slot callbacks always
// go through it, so they never interleave with the owner's event handlers.
type Executor func(fn func())

// Direct runs callbacks on the firing goroutine.
func Direct(fn func()) {
	fn()
}

// Slot holds at most one pending timer. Arming always cancels the previous
// timer first, and a fire that raced with a cancel is dropped.
//
// Every method except the callbacks must be called from the executor context.
type Slot struct {
	clock clock.Clock
	exec  Executor
	timer clock.Timer
	gen   uint64
}

// NewSlot creates an idle slot.
func NewSlot(source clock.Clock, exec Executor) *Slot {
	if exec == nil {
		exec = Direct
	}
	return &Slot{clock: source, exec: exec}
}

// After arms a one-shot timer.
func (slot *Slot) After(delay time.Duration, fn func()) {
	slot.Cancel()
	gen := slot.gen
	slot.timer = slot.clock.AfterFunc(delay, func() {
		slot.exec(func() {
			if slot.gen != gen {
				return
			}
			slot.timer = nil
			fn()
		})
	})
}

// Repeat runs fn once per period until cancelled, starting one period from now.
func (slot *Slot) Repeat(period time.Duration, fn func()) {
	slot.Cancel()
	slot.armTick(slot.gen, period, fn)
}

// Cancel stops the pending timer, if any.
func (slot *Slot) Cancel() {
	slot.gen++
	if slot.timer != nil {
		slot.timer.Stop()
		slot.timer = nil
	}
}

// armTick schedules the next tick before running fn, so a tick that fails
// or panics does not end the schedule. fn may Cancel the slot.
func (slot *Slot) armTick(gen uint64, period time.Duration, fn func()) {
	slot.timer = slot.clock.AfterFunc(period, func() {
		slot.exec(func() {
			if slot.gen != gen {
				return
			}
			slot.armTick(gen, period, fn)
			fn()
		})
	})
}
