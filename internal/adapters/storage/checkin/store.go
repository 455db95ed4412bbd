package checkin

import (
	"context"
	"time"

	domain "rollcall/internal/domain/checkin"
)

// Store persists CheckIn state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.CheckIn, error)
	Save(ctx context.Context, value domain.CheckIn) error
	Delete(ctx context.Context, id string) error
	ListByMemberAndEventIDs(ctx context.Context, memberID string, eventIDs []string) ([]domain.CheckIn, error)
	ListByTeamAndDateRange(ctx context.Context, teamID string, start, end time.Time) ([]domain.CheckIn, error)
	ListByMemberAndDateRange(ctx context.Context, memberID string, start, end time.Time) ([]domain.CheckIn, error)
}
