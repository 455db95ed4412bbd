package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"rollcall/internal/domain/event"
	"rollcall/internal/domain/recurrence"
)

// SeriesStore defines the interface for persisting a series with its
// generated occurrences.
type SeriesStore interface {
	// SaveWithEvents persists the series and every occurrence in one
	// transaction, so a partially created series is never visible.
	SaveWithEvents(ctx context.Context, series recurrence.Series, events []event.Event) error
}

// CreateRecurringEventInput carries input for series creation.
type CreateRecurringEventInput struct {
	TeamID     string
	Title      string
	StartDate  time.Time
	EndDate    time.Time
	Frequency  string // DAILY | WEEKLY | BIWEEKLY | MONTHLY
	DaysOfWeek []int  // 0 (Sunday) - 6 (Saturday); weekly/biweekly only
	StartTime  string // "H:MM AM/PM" or "All Day"
	EndTime    string
}

// CreateRecurringEventResult carries the persisted series and occurrences.
type CreateRecurringEventResult struct {
	Series recurrence.Series
	Events []event.Event
}

// CreateRecurringEventDeps holds dependencies for CreateRecurringEvent.
type CreateRecurringEventDeps struct {
	SeriesStore    SeriesStore
	GenerateID     func() string
	MaxOccurrences int // 0 means recurrence.DefaultMaxOccurrences
}

// ExecuteCreateRecurringEvent expands a recurrence rule and persists the
// series plus all generated occurrences atomically. Validation failures
// (empty expansion, occurrence cap, bad dates or weekdays) surface to the
// caller as the rule's sentinel errors.
// PRE: deps.GenerateID is set
// POST: Either everything is persisted or nothing is
func ExecuteCreateRecurringEvent(ctx context.Context, input CreateRecurringEventInput, deps CreateRecurringEventDeps) (CreateRecurringEventResult, error) {
	series := recurrence.Series{
		ID:        deps.GenerateID(),
		TeamID:    input.TeamID,
		Title:     input.Title,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Rule: recurrence.Rule{
			StartDate:  input.StartDate,
			EndDate:    input.EndDate,
			Frequency:  input.Frequency,
			DaysOfWeek: input.DaysOfWeek,
		},
	}
	if err := series.Validate(); err != nil {
		return CreateRecurringEventResult{}, err
	}

	dates, err := series.Rule.Expand(deps.MaxOccurrences)
	if err != nil {
		return CreateRecurringEventResult{}, err
	}

	events := make([]event.Event, 0, len(dates))
	for _, d := range dates {
		events = append(events, event.Event{
			ID:        deps.GenerateID(),
			TeamID:    input.TeamID,
			SeriesID:  series.ID,
			Title:     input.Title,
			Date:      d,
			StartTime: input.StartTime,
			EndTime:   input.EndTime,
		})
	}

	if err := deps.SeriesStore.SaveWithEvents(ctx, series, events); err != nil {
		return CreateRecurringEventResult{}, err
	}

	slog.Info("series_event", "event", "series_created", "series_id", series.ID,
		"team_id", input.TeamID, "frequency", input.Frequency, "occurrences", len(events))
	return CreateRecurringEventResult{Series: series, Events: events}, nil
}
