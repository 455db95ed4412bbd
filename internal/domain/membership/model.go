package membership

import (
	"errors"
	"time"

	"rollcall/internal/domain/event"
)

// Domain errors
var (
	ErrEmptyMemberID = errors.New("period must be associated with a member")
	ErrEmptyTeamID   = errors.New("period must be associated with a team")
	ErrEmptyJoinedAt = errors.New("joined-at must be set")
	ErrLeftBeforeJoin = errors.New("left-at cannot be before joined-at")
)

// Period is one join/leave interval of a member's history on a team.
// A zero LeftAt means the membership is still open.
type Period struct {
	ID       string
	MemberID string
	TeamID   string
	JoinedAt time.Time
	LeftAt   time.Time
}

// Validate checks if the Period has valid data.
// PRE: Period struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Period) Validate() error {
	if p.MemberID == "" {
		return ErrEmptyMemberID
	}
	if p.TeamID == "" {
		return ErrEmptyTeamID
	}
	if p.JoinedAt.IsZero() {
		return ErrEmptyJoinedAt
	}
	if !p.LeftAt.IsZero() && p.LeftAt.Before(p.JoinedAt) {
		return ErrLeftBeforeJoin
	}
	return nil
}

// Open returns true while the membership has no recorded end.
func (p *Period) Open() bool {
	return p.LeftAt.IsZero()
}

// Contains reports whether t falls inside [JoinedAt, LeftAt), with an open
// LeftAt behaving as +infinity.
// PRE: Period is valid
// INVARIANT: Period fields are not mutated
func (p *Period) Contains(t time.Time) bool {
	if t.Before(p.JoinedAt) {
		return false
	}
	if p.Open() {
		return true
	}
	return t.Before(p.LeftAt)
}

// ImplicitPeriod builds the single open-ended period callers substitute for
// a member with no recorded history.
// PRE: start is the member's recorded join instant, or the season start
// POST: Returns an open period beginning at start
func ImplicitPeriod(memberID, teamID string, start time.Time) Period {
	return Period{MemberID: memberID, TeamID: teamID, JoinedAt: start}
}

// FilterEvents keeps the events whose date falls inside at least one period,
// preserving input order. Periods need not be sorted or disjoint. An empty
// period list yields an empty result: the gap surfaces as "nothing to
// report" rather than silently assuming full membership.
// PRE: events are loaded in the caller's intended order
// POST: Returns a new slice; inputs are not mutated
func FilterEvents(events []event.Event, periods []Period) []event.Event {
	var kept []event.Event
	for _, ev := range events {
		for i := range periods {
			if periods[i].Contains(ev.Date) {
				kept = append(kept, ev)
				break
			}
		}
	}
	return kept
}
