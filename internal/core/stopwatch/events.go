package stopwatch

import "deckwatch/internal/core/model"

// EventType identifies a host notification.
type EventType string

const (
	EventWillAppear      EventType = "will_appear"
	EventWillDisappear   EventType = "will_disappear"
	EventKeyDown         EventType = "key_down"
	EventKeyUp           EventType = "key_up"
	EventTap             EventType = "tap"
	EventSettingsChanged EventType = "settings_changed"
)

// Event is a lifecycle or input notification for one key instance.
type Event struct {
	Type     EventType
	Instance string
	// Settings is the host's persisted snapshot, nil if it has none.
	Settings *model.RawSettings
	// Hold is set on EventTap when the touch surface reports a hold.
	Hold bool
}
