package stopwatch

import (
	"time"

	"deckwatch/internal/core/model"
	"deckwatch/internal/core/schedule"
)

// keyRuntime is the process-local record of one visible key instance.
type keyRuntime struct {
	handle keyHandle
	state  model.StopwatchState

	redraw    *schedule.Slot
	longPress *schedule.Slot

	pressed    bool
	pressedAt  time.Time
	resetFired bool
}

func (key *keyRuntime) tickPeriod() time.Duration {
	return time.Duration(key.state.TickMs) * time.Millisecond
}

func (key *keyRuntime) longPressDelay() time.Duration {
	return time.Duration(key.state.LongPressMs) * time.Millisecond
}

func (key *keyRuntime) cancelSchedules() {
	key.redraw.Cancel()
	key.longPress.Cancel()
}
