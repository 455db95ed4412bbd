package checkin

import "errors"

// Status values accepted from the external boundary. ON_TIME and LATE count
// as attended; EXCUSED is removed from some denominators but never counts as
// attendance either way.
const (
	StatusOnTime  = "ON_TIME"
	StatusLate    = "LATE"
	StatusAbsent  = "ABSENT"
	StatusExcused = "EXCUSED"
)

// ValidStatuses contains all accepted status values.
var ValidStatuses = []string{StatusOnTime, StatusLate, StatusAbsent, StatusExcused}

// Domain errors
var (
	ErrEmptyMemberID = errors.New("check-in must be associated with a member")
	ErrEmptyEventID  = errors.New("check-in must be associated with an event")
	ErrInvalidStatus = errors.New("status must be ON_TIME, LATE, ABSENT or EXCUSED")
	ErrNegativeHours = errors.New("logged hours cannot be negative")
)

// CheckIn records one member's presence status for one event occurrence.
type CheckIn struct {
	ID          string
	MemberID    string
	EventID     string
	Status      string
	HoursLogged float64
	Approved    bool // only approved records contribute to hours roll-ups
}

// Validate checks if the CheckIn has valid data.
// PRE: CheckIn struct is populated
// POST: Returns nil if valid, error otherwise
func (c *CheckIn) Validate() error {
	if c.MemberID == "" {
		return ErrEmptyMemberID
	}
	if c.EventID == "" {
		return ErrEmptyEventID
	}
	if !IsValidStatus(c.Status) {
		return ErrInvalidStatus
	}
	if c.HoursLogged < 0 {
		return ErrNegativeHours
	}
	return nil
}

// Attended returns true for statuses that count toward attendance.
func (c *CheckIn) Attended() bool {
	return c.Status == StatusOnTime || c.Status == StatusLate
}

// Excused returns true when the absence neither counts for nor against the
// member's rate.
func (c *CheckIn) Excused() bool {
	return c.Status == StatusExcused
}

// IsValidStatus reports whether s is an accepted status value.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}
