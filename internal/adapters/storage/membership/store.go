package membership

import (
	"context"
	"time"

	domain "rollcall/internal/domain/membership"
)

// Store persists membership Period state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Period, error)
	Save(ctx context.Context, value domain.Period) error
	Close(ctx context.Context, id string, leftAt time.Time) error
	ListByMemberAndTeam(ctx context.Context, memberID, teamID string) ([]domain.Period, error)
	ListOpenByTeam(ctx context.Context, teamID string) ([]domain.Period, error)
}
