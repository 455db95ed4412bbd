package event

import (
	"errors"
	"time"

	"rollcall/internal/domain/clocktime"
)

// Domain errors
var (
	ErrEmptyTeamID = errors.New("event must be associated with a team")
	ErrEmptyDate   = errors.New("event date cannot be zero")
)

// Event is one concrete occurrence on a team's calendar, either created
// directly or generated from a recurring series.
type Event struct {
	ID        string
	TeamID    string
	SeriesID  string // empty when not generated from, or detached from, a series
	Title     string
	Date      time.Time // UTC midnight
	StartTime string    // "H:MM AM/PM" or "All Day"
	EndTime   string
}

// Validate checks if the Event has valid data.
// PRE: Event struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Event) Validate() error {
	if e.TeamID == "" {
		return ErrEmptyTeamID
	}
	if e.Date.IsZero() {
		return ErrEmptyDate
	}
	return nil
}

// InSeries returns true if the occurrence still belongs to a recurring series.
func (e *Event) InSeries() bool {
	return e.SeriesID != ""
}

// Detach clears the series link, preserving the occurrence as standalone
// history when its series is edited to stop in the future.
// PRE: Event is initialized
// POST: SeriesID is empty
func (e *Event) Detach() {
	e.SeriesID = ""
}

// AllDay returns true if the occurrence has no specific time component.
func (e *Event) AllDay() bool {
	return clocktime.IsAllDay(e.StartTime) || clocktime.IsAllDay(e.EndTime)
}

// DurationHours returns the hours the occurrence requires of an attendee.
// PRE: StartTime and EndTime are display clock strings
// POST: Returns non-negative hours; all-day and malformed spans yield 0
func (e *Event) DurationHours() float64 {
	return clocktime.DurationHours(e.StartTime, e.EndTime)
}
