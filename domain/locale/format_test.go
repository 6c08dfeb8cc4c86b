package locale

import (
	"strings"
	"testing"
)

func TestFormatReleaseDisplay(t *testing.T) {
	got := FormatReleaseDisplay("Germany", "2026-01-12", "16:00")

	if got != "Mon, Jan 12, 2026 · 16:00 (local, Europe/Berlin)" {
		t.Errorf("unexpected label: %q", got)
	}
}

func TestFormatReleaseDisplayNeverShiftsTime(t *testing.T) {
	// The stored time is the literal local wall-clock value; the formatter
	// must reproduce it untouched regardless of the zone it runs in.
	got := FormatReleaseDisplay("Germany", "2026-01-12", "16:00")

	if !strings.Contains(got, "16:00") {
		t.Errorf("label %q lost the literal release time", got)
	}
	if !strings.Contains(got, "Europe/Berlin") {
		t.Errorf("label %q lost the timezone name", got)
	}
}

func TestFormatReleaseDisplayMalformedDate(t *testing.T) {
	tests := []struct {
		name string
		date string
	}{
		{"not a date", "not-a-date"},
		{"wrong layout", "12/01/2026"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatReleaseDisplay("Germany", tt.date, "16:00")
			if got == "" {
				t.Fatal("malformed date must not produce an empty label")
			}
			if !strings.Contains(got, tt.date) && tt.date != "" {
				t.Errorf("label %q should pass the raw date through", got)
			}
			if !strings.Contains(got, "16:00") {
				t.Errorf("label %q should keep the time", got)
			}
		})
	}
}

func TestFormatReleaseDisplayUnknownCountry(t *testing.T) {
	got := FormatReleaseDisplay("Nonexistent Country", "2026-01-12", "09:30")
	if !strings.Contains(got, "UTC") {
		t.Errorf("label %q should fall back to UTC for unknown countries", got)
	}
}
