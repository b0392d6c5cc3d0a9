package model

// Toggle starts a stopped stopwatch or stops a running one at nowMs.
// Resuming back-dates StartedAt so earlier accumulation is kept.
func (state *StopwatchState) Toggle(nowMs int64) {
	if !state.Running {
		state.Running = true
		state.StartedAt = nowMs - state.ElapsedMs
		return
	}
	state.Running = false
	state.ElapsedMs = nonNegative(nowMs - state.StartedAt)
}

// Reset returns the stopwatch to its initial state.
func (state *StopwatchState) Reset() {
	state.Running = false
	state.StartedAt = 0
	state.ElapsedMs = 0
}

// LiveElapsed returns the elapsed milliseconds as of nowMs.
func (state StopwatchState) LiveElapsed(nowMs int64) int64 {
	if state.Running {
		return nonNegative(nowMs - state.StartedAt)
	}
	return state.ElapsedMs
}

func nonNegative(value int64) int64 {
	if value < 0 {
		return 0
	}
	return value
}
