package stopwatch

import (
	"testing"
	"time"
)

func TestInterpret(t *testing.T) {
	longPress := 700 * time.Millisecond
	tests := []struct {
		name    string
		gesture Gesture
		want    Action
	}{
		{"short release", Gesture{Kind: GestureRelease, Held: 400 * time.Millisecond}, ActionToggle},
		{"release at threshold", Gesture{Kind: GestureRelease, Held: 700 * time.Millisecond}, ActionNone},
		{"release after reset", Gesture{Kind: GestureRelease, Held: 900 * time.Millisecond, ResetFired: true}, ActionNone},
		{"quick release after reset", Gesture{Kind: GestureRelease, ResetFired: true}, ActionNone},
		{"hold elapsed", Gesture{Kind: GestureHoldElapsed}, ActionReset},
		{"tap", Gesture{Kind: GestureTap}, ActionToggle},
		{"tap with hold", Gesture{Kind: GestureTap, Hold: true}, ActionReset},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Interpret(tc.gesture, longPress); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
