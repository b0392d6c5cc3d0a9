package timefmt

import (
	"strings"
	"testing"

	"deckwatch/internal/core/model"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		elapsed int64
		format  model.Format
		want    string
	}{
		{0, model.FormatMinSec, "0:00"},
		{65_000, model.FormatMinSec, "1:05"},
		{3_599_999, model.FormatMinSec, "59:59"},
		{3_600_000, model.FormatMinSec, "1:00:00"},
		{3_725_000, model.FormatMinSec, "1:02:05"},
		{36_000_000 * 4, model.FormatMinSec, "40:00:00"},
		{0, model.FormatHourMinSec, "00:00:00"},
		{3_725_999, model.FormatHourMinSec, "01:02:05"},
		{360_000_000, model.FormatHourMinSec, "100:00:00"},
		{0, model.FormatMinSecTenths, "00:00.0"},
		{65_190, model.FormatMinSecTenths, "01:05.1"},
		{65_999, model.FormatMinSecTenths, "01:05.9"},
		{3_725_000, model.FormatMinSecTenths, "62:05.0"},
		{-20, model.FormatMinSec, "0:00"},
		{65_000, model.Format("bogus"), "1:05"},
	}
	for _, tc := range tests {
		if got := Format(tc.elapsed, tc.format); got != tc.want {
			t.Fatalf("Format(%d, %q): expected %q, got %q", tc.elapsed, tc.format, tc.want, got)
		}
	}
}

func TestHourMinSecMonotonic(t *testing.T) {
	previous := ""
	for elapsed := int64(0); elapsed < 7_300_000; elapsed += 37_013 {
		got := Format(elapsed, model.FormatHourMinSec)
		parts := strings.Split(got, ":")
		if len(parts) != 3 {
			t.Fatalf("expected three fields, got %q", got)
		}
		// Fixed width below 100h, so lexical order matches numeric order.
		if got < previous {
			t.Fatalf("expected non-decreasing output, %q came after %q", got, previous)
		}
		previous = got
	}
}
