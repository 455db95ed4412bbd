package season

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyName    = errors.New("season name cannot be empty")
	ErrInvalidMonth = errors.New("season months must be between 1 and 12")
)

// Season represents an organization-defined month range used to scope
// attendance reporting per year. EndMonth numerically less than StartMonth
// means the season wraps into the next calendar year (e.g. Sep-Jun).
type Season struct {
	ID         string
	OrgID      string
	Name       string
	StartMonth int // 1-12
	EndMonth   int // 1-12
}

// Validate checks if the Season has valid data.
// PRE: Season struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Season) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if s.StartMonth < 1 || s.StartMonth > 12 {
		return ErrInvalidMonth
	}
	if s.EndMonth < 1 || s.EndMonth > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Wraps returns true if the season crosses the December-January boundary.
// PRE: months are valid
// POST: Returns true when EndMonth < StartMonth
func (s *Season) Wraps() bool {
	return s.EndMonth < s.StartMonth
}

// Resolve maps the season onto a concrete year, returning the first instant
// of the start month and the last instant of the end month. Wrap-around
// seasons end in year+1.
// PRE: Validate has passed
// POST: start < end; both are UTC instants
func (s *Season) Resolve(year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(s.StartMonth), 1, 0, 0, 0, 0, time.UTC)
	endYear := year
	if s.Wraps() {
		endYear++
	}
	end := time.Date(endYear, time.Month(s.EndMonth), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// EffectiveEnd caps an end instant at now, so "as of today" reads never
// divide by not-yet-elapsed required hours.
// PRE: now is non-zero
// POST: Returns the earlier of end and now
func EffectiveEnd(end, now time.Time) time.Time {
	if now.Before(end) {
		return now
	}
	return end
}

// FullHistoryRange is the fallback window for teams with no season/year
// assigned: the epoch through now.
// PRE: now is non-zero
// POST: start < end
func FullHistoryRange(now time.Time) (time.Time, time.Time) {
	return time.Unix(0, 0).UTC(), now
}
