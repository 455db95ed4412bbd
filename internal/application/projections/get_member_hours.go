package projections

import (
	"context"
	"errors"
	"time"

	"rollcall/internal/domain/checkin"
	"rollcall/internal/domain/event"
	"rollcall/internal/domain/membership"
	"rollcall/internal/domain/season"
	"rollcall/internal/domain/team"
)

// MemberHoursTeamStore defines the team store interface needed by the member hours projection.
type MemberHoursTeamStore interface {
	GetTeam(ctx context.Context, id string) (team.Team, error)
	GetMember(ctx context.Context, id string) (team.Member, error)
}

// MemberHoursSeasonStore defines the season store interface needed by the member hours projection.
type MemberHoursSeasonStore interface {
	GetByID(ctx context.Context, id string) (season.Season, error)
}

// MemberHoursEventStore defines the event store interface needed by the member hours projection.
type MemberHoursEventStore interface {
	ListByTeamAndDateRange(ctx context.Context, teamID string, start, end time.Time) ([]event.Event, error)
}

// MemberHoursMembershipStore defines the membership store interface needed by the member hours projection.
type MemberHoursMembershipStore interface {
	ListByMemberAndTeam(ctx context.Context, memberID, teamID string) ([]membership.Period, error)
}

// MemberHoursCheckInStore defines the check-in store interface needed by the member hours projection.
type MemberHoursCheckInStore interface {
	ListByMemberAndEventIDs(ctx context.Context, memberID string, eventIDs []string) ([]checkin.CheckIn, error)
}

// GetMemberHoursQuery carries input for the member hours projection.
type GetMemberHoursQuery struct {
	MemberID string
	TeamID   string
	Now      time.Time // optional: if zero, time.Now() is used
}

// GetMemberHoursResult carries the output of the member hours projection.
type GetMemberHoursResult struct {
	HoursLogged       float64
	HoursRequired     float64
	AttendancePercent float64 // clamped to [0, 100]
	EligibleEvents    int
	WindowStart       time.Time
	WindowEnd         time.Time
}

// GetMemberHoursDeps holds dependencies for the member hours projection.
type GetMemberHoursDeps struct {
	TeamStore       MemberHoursTeamStore
	SeasonStore     MemberHoursSeasonStore
	EventStore      MemberHoursEventStore
	MembershipStore MemberHoursMembershipStore
	CheckInStore    MemberHoursCheckInStore
}

// QueryGetMemberHours aggregates a member's logged and required hours over
// the team's season window, charging them only for events that fell inside
// their membership periods.
// PRE: query.MemberID and query.TeamID are non-empty
// POST: AttendancePercent is in [0, 100]; the window never extends past Now
func QueryGetMemberHours(ctx context.Context, query GetMemberHoursQuery, deps GetMemberHoursDeps) (GetMemberHoursResult, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}
	if query.MemberID == "" || query.TeamID == "" {
		return GetMemberHoursResult{}, errors.New("member_id and team_id are required")
	}

	mem, err := deps.TeamStore.GetMember(ctx, query.MemberID)
	if err != nil {
		return GetMemberHoursResult{}, err
	}
	tm, err := deps.TeamStore.GetTeam(ctx, query.TeamID)
	if err != nil {
		return GetMemberHoursResult{}, err
	}

	start, end, err := reportingWindow(ctx, tm, deps.SeasonStore, now)
	if err != nil {
		return GetMemberHoursResult{}, err
	}

	events, err := deps.EventStore.ListByTeamAndDateRange(ctx, tm.ID, start, end)
	if err != nil {
		return GetMemberHoursResult{}, err
	}

	periods, err := deps.MembershipStore.ListByMemberAndTeam(ctx, query.MemberID, tm.ID)
	if err != nil {
		return GetMemberHoursResult{}, err
	}
	if len(periods) == 0 {
		// No recorded history: one implicit open period from the member's
		// recorded join instant, or the window start when that is absent too.
		implicitStart := mem.JoinedAt
		if implicitStart.IsZero() {
			implicitStart = start
		}
		periods = []membership.Period{membership.ImplicitPeriod(query.MemberID, tm.ID, implicitStart)}
	}

	eligible := membership.FilterEvents(events, periods)

	var required float64
	ids := make([]string, 0, len(eligible))
	for i := range eligible {
		required += eligible[i].DurationHours()
		ids = append(ids, eligible[i].ID)
	}

	var logged float64
	if len(ids) > 0 {
		records, err := deps.CheckInStore.ListByMemberAndEventIDs(ctx, query.MemberID, ids)
		if err != nil {
			return GetMemberHoursResult{}, err
		}
		for _, r := range records {
			if r.Approved {
				logged += r.HoursLogged
			}
		}
	}

	return GetMemberHoursResult{
		HoursLogged:       logged,
		HoursRequired:     required,
		AttendancePercent: clampedPercent(logged, required),
		EligibleEvents:    len(eligible),
		WindowStart:       start,
		WindowEnd:         end,
	}, nil
}

// reportingWindow resolves a team's season onto concrete instants, falling
// back to full history when no season/year is assigned, and always capping
// the end at now.
func reportingWindow(ctx context.Context, tm team.Team, seasons MemberHoursSeasonStore, now time.Time) (time.Time, time.Time, error) {
	if !tm.HasSeason() || seasons == nil {
		start, end := season.FullHistoryRange(now)
		return start, end, nil
	}
	ssn, err := seasons.GetByID(ctx, tm.SeasonID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, end := ssn.Resolve(tm.SeasonYear)
	return start, season.EffectiveEnd(end, now), nil
}

// clampedPercent returns 100*logged/required bounded to [0, 100], or 0 when
// nothing is required. Logged hours can exceed required ones after manual
// corrections; downstream consumers assume the 0-100 bound.
func clampedPercent(logged, required float64) float64 {
	if required <= 0 {
		return 0
	}
	p := 100 * logged / required
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}
