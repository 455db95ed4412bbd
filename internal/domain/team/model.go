package team

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyTeamName   = errors.New("team name cannot be empty")
	ErrEmptyOrgID      = errors.New("team must belong to an organization")
	ErrEmptyMemberName = errors.New("member name cannot be empty")
	ErrEmptyTeamID     = errors.New("member must be associated with a team")
	ErrNegativeTarget  = errors.New("required hours target cannot be negative")
)

// Team groups members under an organization. SeasonID/SeasonYear scope the
// team's attendance window; both empty means full-history reporting.
type Team struct {
	ID         string
	OrgID      string
	Name       string
	SeasonID   string // references an organization season; optional
	SeasonYear int    // the year SeasonID resolves against; 0 when unset
}

// Validate checks if the Team has valid data.
// PRE: Team struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyTeamName
	}
	if t.OrgID == "" {
		return ErrEmptyOrgID
	}
	return nil
}

// HasSeason returns true when the team reports against a resolved season.
func (t *Team) HasSeason() bool {
	return t.SeasonID != "" && t.SeasonYear != 0
}

// Member is an athlete on a team's base roster.
type Member struct {
	ID            string
	TeamID        string
	Name          string
	Email         string
	GuardianEmail string // digest recipient; empty for adult members
	JoinedAt      time.Time
	HoursRequired float64 // fixed per-season target used by team roll-ups
}

// Validate checks if the Member has valid data.
// PRE: Member struct is populated
// POST: Returns nil if valid, error otherwise
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyMemberName
	}
	if m.TeamID == "" {
		return ErrEmptyTeamID
	}
	if m.HoursRequired < 0 {
		return ErrNegativeTarget
	}
	return nil
}

// HasGuardian returns true when a guardian digest can be addressed.
func (m *Member) HasGuardian() bool {
	return m.GuardianEmail != ""
}
