package recurrence

import "strings"

// Series is a stored recurring event definition. Occurrences generated from
// it carry its ID until they are detached.
type Series struct {
	ID        string
	TeamID    string
	Title     string
	StartTime string // "H:MM AM/PM" or "All Day"
	EndTime   string
	Rule      Rule
}

// Validate checks if the Series has valid data.
// PRE: Series struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Series) Validate() error {
	if strings.TrimSpace(s.TeamID) == "" {
		return ErrEmptyTeamID
	}
	return s.Rule.Validate()
}
