package storage

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the storage format for calendar dates (event dates,
// recurrence bounds).
const DateLayout = "2006-01-02"

// ParseInstant parses a stored timestamp. Rows written by this engine use
// RFC3339; rows imported from older systems may carry epoch milliseconds
// or a handful of legacy layouts, all of which must keep loading.
// PRE: value is non-empty
// POST: Returns the instant in UTC, or an error for unsupported formats
func ParseInstant(value string) (time.Time, error) {
	if isAllDigits(value) {
		ms, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("unsupported time format: %q", value)
		}
		return time.UnixMilli(ms).UTC(), nil
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		DateLayout,
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format: %q", value)
}

// FormatInstant formats a timestamp for storage.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
