package clocktime

import (
	"strings"
	"time"
)

// AllDay is the sentinel display value for events with no time component.
const AllDay = "All Day"

// clockLayout matches display strings like "6:30 PM". The hour has no
// leading zero in stored data but time.Parse accepts one anyway.
const clockLayout = "3:04 PM"

// ClockTime is an hour/minute pair parsed from a display string.
type ClockTime struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// fallback is returned for unparsable input. Calendar exports and duration
// math must not abort a whole batch over one bad record, so callers that
// need strict parsing validate upstream.
var fallback = ClockTime{Hour: 12, Minute: 0}

// IsAllDay reports whether s is the all-day sentinel.
// PRE: none
// POST: Returns true for "All Day" in any casing
func IsAllDay(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), AllDay)
}

// Parse converts a "H:MM AM/PM" display string to a ClockTime.
// PRE: none
// POST: Returns the parsed time, or noon for malformed input
func Parse(s string) ClockTime {
	t, err := time.Parse(clockLayout, strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return fallback
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

// Minutes returns the minutes elapsed since midnight.
// PRE: ClockTime holds valid hour/minute values
// POST: Returns Hour*60 + Minute
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

// DurationHours returns the elapsed hours between two display strings.
// PRE: none
// POST: Returns (end - start) in hours; negative or zero spans and all-day
// values yield 0, because an event cannot contribute negative required hours
func DurationHours(start, end string) float64 {
	if IsAllDay(start) || IsAllDay(end) {
		return 0
	}
	mins := Parse(end).Minutes() - Parse(start).Minutes()
	if mins <= 0 {
		return 0
	}
	return float64(mins) / 60
}
