package projections

import (
	"context"
	"errors"
	"time"

	"rollcall/internal/domain/checkin"
)

// GuardianReportCheckInStore defines the check-in store interface needed by the guardian report projection.
type GuardianReportCheckInStore interface {
	ListByMemberAndDateRange(ctx context.Context, memberID string, start, end time.Time) ([]checkin.CheckIn, error)
}

// GetGuardianReportQuery carries input for the guardian report projection.
type GetGuardianReportQuery struct {
	MemberID    string
	WindowStart time.Time
	WindowEnd   time.Time
}

// GetGuardianReportResult carries the per-status counts and rate that feed
// the guardian email digest.
type GetGuardianReportResult struct {
	OnTime         int
	Late           int
	Absent         int
	Excused        int
	AttendanceRate float64 // attended / (total - excused), as a percentage
	HoursLogged    float64 // approved hours in the window
}

// GetGuardianReportDeps holds dependencies for the guardian report projection.
type GetGuardianReportDeps struct {
	CheckInStore GuardianReportCheckInStore
}

// QueryGetGuardianReport summarizes a member's check-ins for a guardian
// digest. EXCUSED absences are removed from the rate's denominator - they
// count neither for nor against the member - but are still reported as
// their own figure.
// PRE: query.MemberID is non-empty; WindowStart precedes WindowEnd
// POST: AttendanceRate is 0 when no countable check-ins exist
func QueryGetGuardianReport(ctx context.Context, query GetGuardianReportQuery, deps GetGuardianReportDeps) (GetGuardianReportResult, error) {
	if query.MemberID == "" {
		return GetGuardianReportResult{}, errors.New("member_id is required")
	}
	if !query.WindowStart.Before(query.WindowEnd) {
		return GetGuardianReportResult{}, errors.New("window start must precede window end")
	}

	records, err := deps.CheckInStore.ListByMemberAndDateRange(ctx, query.MemberID, query.WindowStart, query.WindowEnd)
	if err != nil {
		return GetGuardianReportResult{}, err
	}

	var result GetGuardianReportResult
	for _, r := range records {
		switch r.Status {
		case checkin.StatusOnTime:
			result.OnTime++
		case checkin.StatusLate:
			result.Late++
		case checkin.StatusAbsent:
			result.Absent++
		case checkin.StatusExcused:
			result.Excused++
		}
		if r.Approved {
			result.HoursLogged += r.HoursLogged
		}
	}

	attended := result.OnTime + result.Late
	countable := len(records) - result.Excused
	if countable > 0 {
		result.AttendanceRate = 100 * float64(attended) / float64(countable)
	}
	return result, nil
}
