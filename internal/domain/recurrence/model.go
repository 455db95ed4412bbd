package recurrence

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"
)

// Frequency values accepted from the external boundary.
const (
	FrequencyDaily    = "DAILY"
	FrequencyWeekly   = "WEEKLY"
	FrequencyBiweekly = "BIWEEKLY"
	FrequencyMonthly  = "MONTHLY"
)

// DefaultMaxOccurrences is the safety bound against runaway date ranges.
// An arbitrary cap, not a domain law; callers may pass their own.
const DefaultMaxOccurrences = 365

// Domain errors. These are the user-correctable conditions that abort a
// calling mutation and surface a message.
var (
	ErrEndBeforeStart       = errors.New("end date must be after start date")
	ErrInvalidFrequency     = errors.New("frequency must be DAILY, WEEKLY, BIWEEKLY or MONTHLY")
	ErrMissingDays          = errors.New("weekly and biweekly rules require at least one day of week")
	ErrInvalidDay           = errors.New("days of week must be between 0 (Sunday) and 6 (Saturday)")
	ErrNoOccurrences        = errors.New("rule produces no occurrences")
	ErrTooManyOccurrences   = errors.New("rule produces too many occurrences")
	ErrEmptyTeamID          = errors.New("series must be associated with a team")
)

// rruleWeekdays maps weekday numbers 0 (Sunday) - 6 (Saturday) onto rrule
// weekday values.
var rruleWeekdays = [...]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// Rule describes a recurring practice/event pattern.
type Rule struct {
	StartDate  time.Time
	EndDate    time.Time
	Frequency  string
	DaysOfWeek []int // 0 (Sunday) - 6 (Saturday); weekly/biweekly only
}

// Validate checks if the Rule has valid data.
// PRE: Rule struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Rule) Validate() error {
	if r.StartDate.IsZero() || r.EndDate.IsZero() || !r.EndDate.After(r.StartDate) {
		return ErrEndBeforeStart
	}
	switch r.Frequency {
	case FrequencyDaily, FrequencyMonthly:
	case FrequencyWeekly, FrequencyBiweekly:
		if len(r.DaysOfWeek) == 0 {
			return ErrMissingDays
		}
	default:
		return ErrInvalidFrequency
	}
	for _, d := range r.DaysOfWeek {
		if d < 0 || d > 6 {
			return ErrInvalidDay
		}
	}
	return nil
}

// Expand produces the ordered, deduplicated list of concrete occurrence
// dates (UTC midnights) for the rule, inclusive of both endpoints.
// Weeks anchor Sunday-first, matching the weekday numbering, so BIWEEKLY
// takes the weeks at even offset from the week containing StartDate.
// MONTHLY uses StartDate's day-of-month; months without that day contribute
// no occurrence (no clamping or rollover).
// PRE: maxOccurrences > 0, or 0 for DefaultMaxOccurrences
// POST: Same inputs always yield the same chronologically ascending list
func (r *Rule) Expand(maxOccurrences int) ([]time.Time, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if maxOccurrences <= 0 {
		maxOccurrences = DefaultMaxOccurrences
	}

	start := dateOnly(r.StartDate)
	end := dateOnly(r.EndDate)

	opt := rrule.ROption{
		Dtstart: start,
		Until:   end,
		Wkst:    rrule.SU,
	}
	switch r.Frequency {
	case FrequencyDaily:
		opt.Freq = rrule.DAILY
	case FrequencyWeekly:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = weekdays(r.DaysOfWeek)
	case FrequencyBiweekly:
		opt.Freq = rrule.WEEKLY
		opt.Interval = 2
		opt.Byweekday = weekdays(r.DaysOfWeek)
	case FrequencyMonthly:
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday = []int{start.Day()}
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("build recurrence rule: %w", err)
	}

	// Between is inclusive of both bounds when inc is true.
	raw := rule.Between(start, end, true)

	dates := make([]time.Time, 0, len(raw))
	for _, d := range raw {
		d = dateOnly(d)
		if len(dates) > 0 && d.Equal(dates[len(dates)-1]) {
			continue
		}
		dates = append(dates, d)
	}

	if len(dates) == 0 {
		return nil, ErrNoOccurrences
	}
	if len(dates) > maxOccurrences {
		return nil, fmt.Errorf("%w: %d (cap %d)", ErrTooManyOccurrences, len(dates), maxOccurrences)
	}
	return dates, nil
}

// weekdays converts sorted, deduplicated weekday numbers to rrule weekdays.
func weekdays(days []int) []rrule.Weekday {
	uniq := make([]int, 0, len(days))
	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			uniq = append(uniq, d)
		}
	}
	sort.Ints(uniq)

	out := make([]rrule.Weekday, 0, len(uniq))
	for _, d := range uniq {
		out = append(out, rruleWeekdays[d])
	}
	return out
}

// dateOnly truncates an instant to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
