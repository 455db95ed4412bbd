package projections

import (
	"context"
	"testing"
	"time"

	"rollcall/internal/domain/checkin"
)

type mockMemberRangeCheckInStore struct {
	records []checkin.CheckIn
}

// ListByMemberAndDateRange returns all seeded records.
// PRE: start precedes end
// POST: Returns the seeded records
func (m *mockMemberRangeCheckInStore) ListByMemberAndDateRange(_ context.Context, memberID string, start, end time.Time) ([]checkin.CheckIn, error) {
	return m.records, nil
}

// tenCheckIns builds the canonical divergence fixture: 6 attended
// (ON_TIME/LATE), 2 ABSENT, 2 EXCUSED.
func tenCheckIns() []checkin.CheckIn {
	statuses := []string{
		checkin.StatusOnTime, checkin.StatusOnTime, checkin.StatusOnTime, checkin.StatusOnTime,
		checkin.StatusLate, checkin.StatusLate,
		checkin.StatusAbsent, checkin.StatusAbsent,
		checkin.StatusExcused, checkin.StatusExcused,
	}
	out := make([]checkin.CheckIn, 0, len(statuses))
	for i, s := range statuses {
		out = append(out, checkin.CheckIn{
			ID:       string(rune('a' + i)),
			MemberID: "m1",
			EventID:  "e1",
			Status:   s,
		})
	}
	return out
}

// TestCountModesDivergeOnExcused pins the business rule that the challenge
// percent keeps EXCUSED in the denominator (6/10 = 60%) while the guardian
// report removes it (6/8 = 75%) on the very same input.
func TestCountModesDivergeOnExcused(t *testing.T) {
	records := tenCheckIns()
	start := date(2024, 9, 1)
	end := date(2024, 12, 1)

	challenge, err := QueryGetChallengePercent(context.Background(),
		GetChallengePercentQuery{TeamID: "t1", WindowStart: start, WindowEnd: end},
		GetChallengePercentDeps{CheckInStore: &mockTeamCheckInStore{records: records}})
	if err != nil {
		t.Fatalf("challenge: unexpected err: %v", err)
	}
	if challenge.Attended != 6 || challenge.Total != 10 {
		t.Fatalf("challenge counts = %d/%d, want 6/10", challenge.Attended, challenge.Total)
	}
	if challenge.Percent != 60 {
		t.Errorf("challenge percent = %v, want 60", challenge.Percent)
	}

	report, err := QueryGetGuardianReport(context.Background(),
		GetGuardianReportQuery{MemberID: "m1", WindowStart: start, WindowEnd: end},
		GetGuardianReportDeps{CheckInStore: &mockMemberRangeCheckInStore{records: records}})
	if err != nil {
		t.Fatalf("report: unexpected err: %v", err)
	}
	if report.Excused != 2 {
		t.Errorf("excused = %d, want 2 (still reported separately)", report.Excused)
	}
	if report.AttendanceRate != 75 {
		t.Errorf("report rate = %v, want 75", report.AttendanceRate)
	}
}

// TestQueryGetChallengePercent_EmptyWindow verifies the zero-denominator rule.
func TestQueryGetChallengePercent_EmptyWindow(t *testing.T) {
	res, err := QueryGetChallengePercent(context.Background(),
		GetChallengePercentQuery{TeamID: "t1", WindowStart: date(2024, 9, 1), WindowEnd: date(2024, 12, 1)},
		GetChallengePercentDeps{CheckInStore: &mockTeamCheckInStore{}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Percent != 0 || res.Total != 0 {
		t.Errorf("got percent=%v total=%d, want zeros", res.Percent, res.Total)
	}
}

// TestQueryGetGuardianReport_HoursSumApprovedOnly verifies the digest hour
// figure ignores unapproved records.
func TestQueryGetGuardianReport_HoursSumApprovedOnly(t *testing.T) {
	records := []checkin.CheckIn{
		{ID: "c1", MemberID: "m1", EventID: "e1", Status: checkin.StatusOnTime, HoursLogged: 1.5, Approved: true},
		{ID: "c2", MemberID: "m1", EventID: "e2", Status: checkin.StatusLate, HoursLogged: 2, Approved: true},
		{ID: "c3", MemberID: "m1", EventID: "e3", Status: checkin.StatusOnTime, HoursLogged: 4, Approved: false},
	}

	res, err := QueryGetGuardianReport(context.Background(),
		GetGuardianReportQuery{MemberID: "m1", WindowStart: date(2024, 9, 1), WindowEnd: date(2024, 12, 1)},
		GetGuardianReportDeps{CheckInStore: &mockMemberRangeCheckInStore{records: records}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.HoursLogged != 3.5 {
		t.Errorf("hours = %v, want 3.5", res.HoursLogged)
	}
	if res.AttendanceRate != 100 {
		t.Errorf("rate = %v, want 100", res.AttendanceRate)
	}
}
