package season

import (
	"context"

	domain "rollcall/internal/domain/season"
)

// Store persists Season state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Season, error)
	Save(ctx context.Context, value domain.Season) error
	ListByOrg(ctx context.Context, orgID string) ([]domain.Season, error)
	Delete(ctx context.Context, id string) error
}
