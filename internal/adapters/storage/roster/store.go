package roster

import (
	"context"

	domain "rollcall/internal/domain/roster"
)

// Store persists roster Override state.
type Store interface {
	Save(ctx context.Context, value domain.Override) error
	DeleteByScopeMemberAction(ctx context.Context, scope, scopeID, memberID, action string) error
	ListMemberIDs(ctx context.Context, scope, scopeID, action string) ([]string, error)
	ListByScope(ctx context.Context, scope, scopeID string) ([]domain.Override, error)
}
