package projections

import (
	"context"
	"errors"
	"sort"
	"time"

	"rollcall/internal/domain/checkin"
	"rollcall/internal/domain/team"
)

// TeamAttendanceMemberStore defines the member store interface needed by the team attendance projection.
type TeamAttendanceMemberStore interface {
	ListMembersByTeam(ctx context.Context, teamID string) ([]team.Member, error)
}

// TeamAttendanceCheckInStore defines the check-in store interface needed by the team attendance projection.
type TeamAttendanceCheckInStore interface {
	ListByTeamAndDateRange(ctx context.Context, teamID string, start, end time.Time) ([]checkin.CheckIn, error)
}

// GetTeamAttendanceQuery carries input for the team attendance projection.
type GetTeamAttendanceQuery struct {
	TeamID string
	Now    time.Time // optional: if zero, time.Now() is used
}

// TeamAttendanceRow is one member's line on the leaderboard.
type TeamAttendanceRow struct {
	MemberID          string
	Name              string
	HoursLogged       float64
	HoursRequired     float64 // the member's fixed per-season target
	AttendancePercent float64
}

// GetTeamAttendanceResult carries the output of the team attendance projection.
type GetTeamAttendanceResult struct {
	TeamPercent   float64
	HoursLogged   float64
	HoursRequired float64
	Members       []TeamAttendanceRow // ordered by logged hours descending
	WindowStart   time.Time
	WindowEnd     time.Time
}

// GetTeamAttendanceDeps holds dependencies for the team attendance projection.
type GetTeamAttendanceDeps struct {
	TeamStore    MemberHoursTeamStore
	SeasonStore  MemberHoursSeasonStore
	MemberStore  TeamAttendanceMemberStore
	CheckInStore TeamAttendanceCheckInStore
}

// QueryGetTeamAttendance rolls up per-member logged hours against each
// member's fixed hour target over the team's season window. The team rollup
// intentionally uses the fixed targets rather than computed event durations.
// PRE: query.TeamID is non-empty
// POST: TeamPercent and every row percent are in [0, 100]
func QueryGetTeamAttendance(ctx context.Context, query GetTeamAttendanceQuery, deps GetTeamAttendanceDeps) (GetTeamAttendanceResult, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}
	if query.TeamID == "" {
		return GetTeamAttendanceResult{}, errors.New("team_id is required")
	}

	tm, err := deps.TeamStore.GetTeam(ctx, query.TeamID)
	if err != nil {
		return GetTeamAttendanceResult{}, err
	}
	start, end, err := reportingWindow(ctx, tm, deps.SeasonStore, now)
	if err != nil {
		return GetTeamAttendanceResult{}, err
	}

	members, err := deps.MemberStore.ListMembersByTeam(ctx, tm.ID)
	if err != nil {
		return GetTeamAttendanceResult{}, err
	}
	records, err := deps.CheckInStore.ListByTeamAndDateRange(ctx, tm.ID, start, end)
	if err != nil {
		return GetTeamAttendanceResult{}, err
	}

	loggedByMember := make(map[string]float64, len(members))
	for _, r := range records {
		if r.Approved {
			loggedByMember[r.MemberID] += r.HoursLogged
		}
	}

	result := GetTeamAttendanceResult{WindowStart: start, WindowEnd: end}
	for _, m := range members {
		logged := loggedByMember[m.ID]
		result.Members = append(result.Members, TeamAttendanceRow{
			MemberID:          m.ID,
			Name:              m.Name,
			HoursLogged:       logged,
			HoursRequired:     m.HoursRequired,
			AttendancePercent: clampedPercent(logged, m.HoursRequired),
		})
		result.HoursLogged += logged
		result.HoursRequired += m.HoursRequired
	}
	result.TeamPercent = clampedPercent(result.HoursLogged, result.HoursRequired)

	// Leaderboard order: most hours first, name as the deterministic tiebreak.
	sort.SliceStable(result.Members, func(i, j int) bool {
		if result.Members[i].HoursLogged != result.Members[j].HoursLogged {
			return result.Members[i].HoursLogged > result.Members[j].HoursLogged
		}
		return result.Members[i].Name < result.Members[j].Name
	})

	return result, nil
}
