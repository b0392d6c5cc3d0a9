package model

// Format selects how elapsed time is drawn on a key.
type Format string

const (
	FormatMinSec       Format = "mm:ss"
	FormatHourMinSec   Format = "hh:mm:ss"
	FormatMinSecTenths Format = "mm:ss.S"
)

const (
	DefaultFormat      = FormatMinSec
	DefaultTickMs      = 250
	DefaultLongPressMs = 700

	MinTickMs      = 100
	MaxTickMs      = 1000
	MinLongPressMs = 300
	MaxLongPressMs = 2000
)

// Valid reports whether the format is one of the known selectors.
func (format Format) Valid() bool {
	switch format {
	case FormatMinSec, FormatHourMinSec, FormatMinSecTenths:
		return true
	}
	return false
}

// RawSettings is the persisted per-key record as the host stores it.
// A nil field was never written.
type RawSettings struct {
	Running     *bool   `json:"running,omitempty" yaml:"running,omitempty"`
	StartedAt   *int64  `json:"startedAt,omitempty" yaml:"started_at,omitempty"`
	ElapsedMs   *int64  `json:"elapsedMs,omitempty" yaml:"elapsed_ms,omitempty"`
	Format      *string `json:"format,omitempty" yaml:"format,omitempty"`
	TickMs      *int    `json:"tickMs,omitempty" yaml:"tick_ms,omitempty"`
	LongPressMs *int    `json:"longPressMs,omitempty" yaml:"long_press_ms,omitempty"`
}

// StopwatchState is the fully populated state of one key instance.
type StopwatchState struct {
	Running     bool
	StartedAt   int64
	ElapsedMs   int64
	Format      Format
	TickMs      int
	LongPressMs int
}

// DefaultState returns the state of a key that has never been touched.
func DefaultState() StopwatchState {
	return StopwatchState{
		Format:      DefaultFormat,
		TickMs:      DefaultTickMs,
		LongPressMs: DefaultLongPressMs,
	}
}

// Normalize fills every missing field with its default and clamps the
// bounded ones. It never fails.
func Normalize(raw *RawSettings) StopwatchState {
	state := DefaultState()
	if raw == nil {
		return state
	}

	if raw.Running != nil {
		state.Running = *raw.Running
	}
	if raw.StartedAt != nil {
		state.StartedAt = *raw.StartedAt
	}
	if raw.ElapsedMs != nil && *raw.ElapsedMs > 0 {
		state.ElapsedMs = *raw.ElapsedMs
	}
	if raw.Format != nil && Format(*raw.Format).Valid() {
		state.Format = Format(*raw.Format)
	}
	if raw.TickMs != nil {
		state.TickMs = clamp(*raw.TickMs, MinTickMs, MaxTickMs)
	}
	if raw.LongPressMs != nil {
		state.LongPressMs = clamp(*raw.LongPressMs, MinLongPressMs, MaxLongPressMs)
	}
	return state
}

// Raw converts the state back into its persisted shape with every field set.
func (state StopwatchState) Raw() *RawSettings {
	running := state.Running
	startedAt := state.StartedAt
	elapsed := state.ElapsedMs
	format := string(state.Format)
	tick := state.TickMs
	longPress := state.LongPressMs
	return &RawSettings{
		Running:     &running,
		StartedAt:   &startedAt,
		ElapsedMs:   &elapsed,
		Format:      &format,
		TickMs:      &tick,
		LongPressMs: &longPress,
	}
}

// Complete reports whether the record already equals its normalised form.
func (raw *RawSettings) Complete() bool {
	if raw == nil {
		return false
	}
	if raw.Running == nil || raw.StartedAt == nil || raw.ElapsedMs == nil ||
		raw.Format == nil || raw.TickMs == nil || raw.LongPressMs == nil {
		return false
	}
	normalized := Normalize(raw)
	return normalized.Running == *raw.Running &&
		normalized.StartedAt == *raw.StartedAt &&
		normalized.ElapsedMs == *raw.ElapsedMs &&
		string(normalized.Format) == *raw.Format &&
		normalized.TickMs == *raw.TickMs &&
		normalized.LongPressMs == *raw.LongPressMs
}

func clamp(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}
