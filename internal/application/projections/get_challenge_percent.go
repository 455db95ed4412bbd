package projections

import (
	"context"
	"errors"
	"time"
)

// GetChallengePercentQuery carries input for the challenge percent projection.
// The window is fixed by the challenge definition, never capped at now.
type GetChallengePercentQuery struct {
	TeamID      string
	WindowStart time.Time
	WindowEnd   time.Time
}

// GetChallengePercentResult carries the output of the challenge percent projection.
type GetChallengePercentResult struct {
	Attended int
	Total    int
	Percent  float64
}

// GetChallengePercentDeps holds dependencies for the challenge percent projection.
type GetChallengePercentDeps struct {
	CheckInStore TeamAttendanceCheckInStore
}

// QueryGetChallengePercent computes a team's progress toward a challenge
// goal as attended check-ins over ALL check-ins in the window. Unlike the
// guardian report, EXCUSED stays in the denominator here; the two modes are
// deliberately distinct.
// PRE: query.TeamID is non-empty; WindowStart precedes WindowEnd
// POST: Percent is 0 when the window holds no check-ins
func QueryGetChallengePercent(ctx context.Context, query GetChallengePercentQuery, deps GetChallengePercentDeps) (GetChallengePercentResult, error) {
	if query.TeamID == "" {
		return GetChallengePercentResult{}, errors.New("team_id is required")
	}
	if !query.WindowStart.Before(query.WindowEnd) {
		return GetChallengePercentResult{}, errors.New("window start must precede window end")
	}

	records, err := deps.CheckInStore.ListByTeamAndDateRange(ctx, query.TeamID, query.WindowStart, query.WindowEnd)
	if err != nil {
		return GetChallengePercentResult{}, err
	}

	result := GetChallengePercentResult{Total: len(records)}
	for _, r := range records {
		if r.Attended() {
			result.Attended++
		}
	}
	if result.Total > 0 {
		result.Percent = 100 * float64(result.Attended) / float64(result.Total)
	}
	return result, nil
}
