package schedule

import (
	"testing"
	"time"

	"deckwatch/internal/core/clock"
)

func TestAfterFiresOnce(t *testing.T) {
	fake := clock.NewFake(time.UnixMilli(0))
	slot := NewSlot(fake, nil)
	count := 0
	slot.After(700*time.Millisecond, func() { count++ })
	if fake.Pending() != 1 {
		t.Fatalf("expected one pending timer, got %d", fake.Pending())
	}
	fake.Advance(699 * time.Millisecond)
	if count != 0 {
		t.Fatalf("fired early")
	}
	fake.Advance(time.Millisecond)
	if count != 1 || fake.Pending() != 0 {
		t.Fatalf("expected one fire and an idle slot, got count %d pending %d", count, fake.Pending())
	}
	fake.Advance(time.Hour)
	if count != 1 {
		t.Fatalf("expected a single fire, got %d", count)
	}
}

func TestRearmCancelsPrevious(t *testing.T) {
	fake := clock.NewFake(time.UnixMilli(0))
	slot := NewSlot(fake, nil)
	var fired []string
	slot.After(100*time.Millisecond, func() { fired = append(fired, "first") })
	slot.After(200*time.Millisecond, func() { fired = append(fired, "second") })
	fake.Advance(time.Second)
	if len(fired) != 1 || fired[0] != "second" {
		t.Fatalf("expected only the second timer, got %v", fired)
	}
	if fake.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", fake.Pending())
	}
}

func TestRepeatRearmKeepsOneTimer(t *testing.T) {
	fake := clock.NewFake(time.UnixMilli(0))
	slot := NewSlot(fake, nil)
	var ticks []int64
	slot.Repeat(250*time.Millisecond, func() { ticks = append(ticks, clock.NowMs(fake)) })
	fake.Advance(time.Second)
	if len(ticks) != 4 || ticks[3] != 1000 {
		t.Fatalf("unexpected ticks: %v", ticks)
	}

	slot.Repeat(250*time.Millisecond, func() { ticks = append(ticks, -1) })
	if fake.Pending() != 1 {
		t.Fatalf("expected exactly one pending timer, got %d", fake.Pending())
	}
	slot.Cancel()
	fake.Advance(time.Second)
	if len(ticks) != 4 {
		t.Fatalf("expected no ticks after cancel, got %v", ticks)
	}
}

func TestRepeatSurvivesPanickingTick(t *testing.T) {
	fake := clock.NewFake(time.UnixMilli(0))
	slot := NewSlot(fake, func(fn func()) {
		defer func() { _ = recover() }()
		fn()
	})
	count := 0
	slot.Repeat(100*time.Millisecond, func() {
		count++
		if count == 2 {
			panic("tick failed")
		}
	})
	fake.Advance(500 * time.Millisecond)
	if count != 5 {
		t.Fatalf("expected ticks to continue after a panic, got %d", count)
	}
	if fake.Pending() != 1 {
		t.Fatalf("expected the schedule to stay armed, got %d pending", fake.Pending())
	}
}

func TestRepeatCancelInsideTick(t *testing.T) {
	fake := clock.NewFake(time.UnixMilli(0))
	slot := NewSlot(fake, nil)
	count := 0
	slot.Repeat(100*time.Millisecond, func() {
		count++
		slot.Cancel()
	})
	fake.Advance(time.Second)
	if count != 1 || fake.Pending() != 0 {
		t.Fatalf("expected a single tick and no timers, got count %d pending %d", count, fake.Pending())
	}
}

func TestStaleFireDropped(t *testing.T) {
	fake := clock.NewFake(time.UnixMilli(0))
	var deferred []func()
	// Queue callbacks instead of running them, like a busy event loop.
	slot := NewSlot(fake, func(fn func()) { deferred = append(deferred, fn) })
	fired := false
	slot.After(10*time.Millisecond, func() { fired = true })
	fake.Advance(10 * time.Millisecond)
	slot.Cancel()
	for _, fn := range deferred {
		fn()
	}
	if fired {
		t.Fatalf("expected a fire racing with cancel to be dropped")
	}
}

func TestRepeatWaitsOnePeriod(t *testing.T) {
	fake := clock.NewFake(time.UnixMilli(0))
	slot := NewSlot(fake, nil)
	count := 0
	slot.Repeat(100*time.Millisecond, func() { count++ })
	if count != 0 {
		t.Fatalf("expected no immediate fire")
	}
	fake.Advance(350 * time.Millisecond)
	if count != 3 {
		t.Fatalf("expected 3 fires, got %d", count)
	}
}
