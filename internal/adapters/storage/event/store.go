package event

import (
	"context"
	"time"

	domain "rollcall/internal/domain/event"
)

// Store persists Event state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
	Save(ctx context.Context, value domain.Event) error
	Delete(ctx context.Context, id string) error
	ListByTeamAndDateRange(ctx context.Context, teamID string, start, end time.Time) ([]domain.Event, error)
	ListBySeriesID(ctx context.Context, seriesID string) ([]domain.Event, error)
	DetachSeriesBefore(ctx context.Context, seriesID string, before time.Time) (int, error)
	DeleteSeriesFrom(ctx context.Context, seriesID string, from time.Time) (int, error)
}
