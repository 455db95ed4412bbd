package recurring

import (
	"context"

	eventdomain "rollcall/internal/domain/event"
	domain "rollcall/internal/domain/recurrence"
)

// Store persists Series state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Series, error)
	SaveWithEvents(ctx context.Context, series domain.Series, events []eventdomain.Event) error
	ListByTeam(ctx context.Context, teamID string) ([]domain.Series, error)
}
