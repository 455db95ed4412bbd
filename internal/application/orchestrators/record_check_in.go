package orchestrators

import (
	"context"
	"log/slog"

	"rollcall/internal/domain/checkin"
	"rollcall/internal/domain/event"
)

// CheckInStore defines the interface for check-in persistence.
type CheckInStore interface {
	Save(ctx context.Context, c checkin.CheckIn) error
}

// CheckInEventStore defines the event store interface needed for defaulted
// logged hours.
type CheckInEventStore interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
}

// RecordCheckInInput carries input for the check-in orchestrator.
type RecordCheckInInput struct {
	MemberID    string
	EventID     string
	Status      string   // ON_TIME | LATE | ABSENT | EXCUSED
	HoursLogged *float64 // nil: default to the event's duration for attended statuses
	Approved    bool
}

// RecordCheckInDeps holds dependencies for RecordCheckIn.
type RecordCheckInDeps struct {
	EventStore   CheckInEventStore
	CheckInStore CheckInStore
	GenerateID   func() string
}

// ExecuteRecordCheckIn records one member's status for one occurrence.
// Attended statuses with no explicit hours are credited the event's
// duration; absences log nothing.
// PRE: MemberID, EventID and a valid Status are provided
// POST: A validated check-in record is persisted
func ExecuteRecordCheckIn(ctx context.Context, input RecordCheckInInput, deps RecordCheckInDeps) (checkin.CheckIn, error) {
	c := checkin.CheckIn{
		ID:       deps.GenerateID(),
		MemberID: input.MemberID,
		EventID:  input.EventID,
		Status:   input.Status,
		Approved: input.Approved,
	}

	switch {
	case input.HoursLogged != nil:
		c.HoursLogged = *input.HoursLogged
	case c.Attended():
		ev, err := deps.EventStore.GetByID(ctx, input.EventID)
		if err != nil {
			return checkin.CheckIn{}, err
		}
		c.HoursLogged = ev.DurationHours()
	}

	if err := c.Validate(); err != nil {
		return checkin.CheckIn{}, err
	}
	if err := deps.CheckInStore.Save(ctx, c); err != nil {
		return checkin.CheckIn{}, err
	}

	slog.Info("checkin_event", "event", "check_in_recorded", "member_id", input.MemberID,
		"event_id", input.EventID, "status", input.Status, "hours_logged", c.HoursLogged)
	return c, nil
}
