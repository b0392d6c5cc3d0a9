package model

import "testing"

func TestToggleStartStop(t *testing.T) {
	state := DefaultState()
	state.Toggle(0)
	if !state.Running || state.StartedAt != 0 {
		t.Fatalf("expected running from 0, got %+v", state)
	}
	state.Toggle(5000)
	if state.Running || state.ElapsedMs != 5000 {
		t.Fatalf("expected stopped at 5000, got %+v", state)
	}
}

func TestToggleResumeKeepsAccumulation(t *testing.T) {
	state := DefaultState()
	state.ElapsedMs = 5000
	state.Toggle(10000)
	if state.StartedAt != 5000 {
		t.Fatalf("expected startedAt 5000, got %d", state.StartedAt)
	}
	if got := state.LiveElapsed(12000); got != 7000 {
		t.Fatalf("expected live elapsed 7000, got %d", got)
	}
}

func TestToggleDelta(t *testing.T) {
	for _, delta := range []int64{0, 1, 999, 3_725_000} {
		state := DefaultState()
		state.Toggle(100)
		state.Toggle(100 + delta)
		if state.ElapsedMs != delta {
			t.Fatalf("expected elapsed %d, got %d", delta, state.ElapsedMs)
		}
		state.Toggle(50_000_000)
		if state.StartedAt != 50_000_000-delta {
			t.Fatalf("expected startedAt %d, got %d", 50_000_000-delta, state.StartedAt)
		}
	}
}

func TestResetIdempotent(t *testing.T) {
	state := DefaultState()
	state.Toggle(10)
	state.Reset()
	once := state
	state.Reset()
	if state != once {
		t.Fatalf("reset not idempotent: %+v vs %+v", once, state)
	}
	if state.Running || state.ElapsedMs != 0 || state.StartedAt != 0 {
		t.Fatalf("expected initial state, got %+v", state)
	}
}

func TestLiveElapsedStopped(t *testing.T) {
	state := DefaultState()
	state.ElapsedMs = 42
	state.StartedAt = 999
	if got := state.LiveElapsed(1_000_000); got != 42 {
		t.Fatalf("expected frozen 42, got %d", got)
	}
	state.Running = true
	state.StartedAt = 2_000_000
	if got := state.LiveElapsed(1_000_000); got != 0 {
		t.Fatalf("expected clock skew to clamp at 0, got %d", got)
	}
}
