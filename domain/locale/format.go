package locale

import (
	"fmt"
	"time"
)

const releaseDateLayout = "2006-01-02"

// FormatReleaseDisplay renders a stored release date/time as a label like
//
//	"Mon, Jan 12, 2026 · 16:00 (local, Europe/Berlin)"
//
// The stored values are the literal local wall-clock date and time for the
// country; no timezone conversion happens here. The zone name is appended
// for clarity only. A date that fails to parse is passed through verbatim
// so a bad row never breaks a listing.
func FormatReleaseDisplay(country, date, tm string) string {
	tz := GetTimeZoneForCountry(country)

	parsed, err := time.Parse(releaseDateLayout, date)
	if err != nil {
		return fmt.Sprintf("%s · %s (local, %s)", date, tm, tz)
	}

	return fmt.Sprintf("%s · %s (local, %s)", parsed.Format("Mon, Jan 2, 2006"), tm, tz)
}
