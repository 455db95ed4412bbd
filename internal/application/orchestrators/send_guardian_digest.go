package orchestrators

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/yuin/goldmark"

	emailAdapter "rollcall/internal/adapters/email"
	"rollcall/internal/application/projections"
	"rollcall/internal/domain/outbox"
	"rollcall/internal/domain/team"
)

// DigestMemberStore defines the member lookup interface needed by the digest
// orchestrator.
type DigestMemberStore interface {
	GetMember(ctx context.Context, id string) (team.Member, error)
}

// DigestOutboxStore defines the outbox interface needed by the digest
// orchestrator.
type DigestOutboxStore interface {
	Save(ctx context.Context, e outbox.Entry) error
}

// SendGuardianDigestInput carries input for the digest orchestrator.
type SendGuardianDigestInput struct {
	MemberID    string
	WindowStart time.Time
	WindowEnd   time.Time
}

// SendGuardianDigestDeps holds dependencies for SendGuardianDigest.
type SendGuardianDigestDeps struct {
	MemberStore  DigestMemberStore
	CheckInStore projections.GuardianReportCheckInStore
	Sender       emailAdapter.Sender
	OutboxStore  DigestOutboxStore
	GenerateID   func() string
	Now          func() time.Time
	FromAddress  string
}

// mdToHTML renders a markdown digest body to HTML. Raw HTML in the input is
// escaped (goldmark's safe default), so member names cannot inject markup.
func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render digest body: %w", err)
	}
	return buf.String(), nil
}

// ExecuteSendGuardianDigest builds a member's attendance summary for the
// window and emails it to their guardian. Members without a guardian
// address are skipped. A failed send is parked in the outbox for replay
// rather than retried inline.
// PRE: MemberID is non-empty; WindowStart precedes WindowEnd
// POST: Digest delivered, parked for retry, or skipped (no guardian)
func ExecuteSendGuardianDigest(ctx context.Context, input SendGuardianDigestInput, deps SendGuardianDigestDeps) error {
	mem, err := deps.MemberStore.GetMember(ctx, input.MemberID)
	if err != nil {
		return err
	}
	if !mem.HasGuardian() {
		slog.Info("digest_event", "event", "digest_skipped_no_guardian", "member_id", input.MemberID)
		return nil
	}

	report, err := projections.QueryGetGuardianReport(ctx, projections.GetGuardianReportQuery{
		MemberID:    input.MemberID,
		WindowStart: input.WindowStart,
		WindowEnd:   input.WindowEnd,
	}, projections.GetGuardianReportDeps{CheckInStore: deps.CheckInStore})
	if err != nil {
		return err
	}

	body := fmt.Sprintf(`## Attendance summary for %s

**%s – %s**

- Attended on time: %d
- Attended late: %d
- Absent: %d
- Excused: %d
- Attendance rate: %.0f%%
- Hours logged: %.1f
`,
		mem.Name,
		input.WindowStart.Format("2 Jan 2006"), input.WindowEnd.Format("2 Jan 2006"),
		report.OnTime, report.Late, report.Absent, report.Excused,
		report.AttendanceRate, report.HoursLogged)

	html, err := mdToHTML(body)
	if err != nil {
		return err
	}

	req := emailAdapter.SendRequest{
		To:      []string{mem.GuardianEmail},
		From:    deps.FromAddress,
		Subject: fmt.Sprintf("Attendance summary for %s", mem.Name),
		HTML:    html,
	}

	if _, err := deps.Sender.Send(ctx, req); err != nil {
		payload, mErr := json.Marshal(req)
		if mErr != nil {
			return mErr
		}
		entry := outbox.Entry{
			ID:          deps.GenerateID(),
			ActionType:  outbox.ActionTypeGuardianDigest,
			Payload:     string(payload),
			Status:      outbox.StatusPending,
			MaxAttempts: outbox.DefaultMaxAttempts,
			CreatedAt:   deps.Now(),
		}
		if sErr := deps.OutboxStore.Save(ctx, entry); sErr != nil {
			return sErr
		}
		slog.Warn("digest_event", "event", "digest_parked", "member_id", input.MemberID, "error", err)
		return nil
	}

	slog.Info("digest_event", "event", "digest_sent", "member_id", input.MemberID, "to", mem.GuardianEmail)
	return nil
}
