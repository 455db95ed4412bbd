package outbox

import (
	"context"

	domain "rollcall/internal/domain/outbox"
)

// Store persists outbox Entry state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Entry, error)
	Save(ctx context.Context, value domain.Entry) error
	ListRetryable(ctx context.Context, limit int) ([]domain.Entry, error)
	Delete(ctx context.Context, id string) error
}
