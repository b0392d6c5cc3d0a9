package stopwatch

import "time"

// Action is the state change a gesture resolves to.
type Action int

const (
	ActionNone Action = iota
	ActionToggle
	ActionReset
)

func (action Action) String() string {
	switch action {
	case ActionToggle:
		return "toggle"
	case ActionReset:
		return "reset"
	default:
		return "none"
	}
}

// GestureKind tells which edge of a gesture is being interpreted.
type GestureKind int

const (
	// GestureRelease is the up edge of a discrete down/up pair.
	GestureRelease GestureKind = iota
	// GestureHoldElapsed is the long-press timer firing while still pressed.
	GestureHoldElapsed
	// GestureTap is a combined event from a touch surface.
	GestureTap
)

// Gesture carries everything needed to decide on an Action.
type Gesture struct {
	Kind       GestureKind
	Held       time.Duration
	Hold       bool
	ResetFired bool
}

// Interpret maps both input modalities onto the same set of actions.
func Interpret(gesture Gesture, longPress time.Duration) Action {
	switch gesture.Kind {
	case GestureHoldElapsed:
		return ActionReset
	case GestureTap:
		if gesture.Hold {
			return ActionReset
		}
		return ActionToggle
	case GestureRelease:
		if gesture.ResetFired {
			return ActionNone
		}
		if gesture.Held < longPress {
			return ActionToggle
		}
		return ActionNone
	}
	return ActionNone
}
