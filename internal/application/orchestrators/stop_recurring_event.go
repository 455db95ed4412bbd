package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// StopSeriesEventStore defines the event store interface needed to stop a
// series.
type StopSeriesEventStore interface {
	DetachSeriesBefore(ctx context.Context, seriesID string, before time.Time) (int, error)
	DeleteSeriesFrom(ctx context.Context, seriesID string, from time.Time) (int, error)
}

// StopRecurringEventInput carries input for stopping a series.
type StopRecurringEventInput struct {
	SeriesID string
	From     time.Time // occurrences on/after this date are removed
}

// StopRecurringEventResult reports how history was preserved.
type StopRecurringEventResult struct {
	Detached int // past occurrences kept as standalone events
	Deleted  int // future occurrences removed
}

// StopRecurringEventDeps holds dependencies for StopRecurringEvent.
type StopRecurringEventDeps struct {
	EventStore StopSeriesEventStore
}

// ExecuteStopRecurringEvent ends a series as of a date: occurrences already
// held are detached (series link cleared) so attendance history survives,
// and not-yet-held occurrences are deleted.
// PRE: SeriesID is non-empty, From is non-zero
// POST: No occurrence on/after From references the series
func ExecuteStopRecurringEvent(ctx context.Context, input StopRecurringEventInput, deps StopRecurringEventDeps) (StopRecurringEventResult, error) {
	if input.SeriesID == "" {
		return StopRecurringEventResult{}, errors.New("series ID is required")
	}
	if input.From.IsZero() {
		return StopRecurringEventResult{}, errors.New("effective date is required")
	}

	detached, err := deps.EventStore.DetachSeriesBefore(ctx, input.SeriesID, input.From)
	if err != nil {
		return StopRecurringEventResult{}, err
	}
	deleted, err := deps.EventStore.DeleteSeriesFrom(ctx, input.SeriesID, input.From)
	if err != nil {
		return StopRecurringEventResult{}, err
	}

	slog.Info("series_event", "event", "series_stopped", "series_id", input.SeriesID,
		"detached", detached, "deleted", deleted)
	return StopRecurringEventResult{Detached: detached, Deleted: deleted}, nil
}
