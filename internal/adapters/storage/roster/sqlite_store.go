package roster

import (
	"context"

	"rollcall/internal/adapters/storage"
	domain "rollcall/internal/domain/roster"
)

// SQLiteStore implements the roster Store interface using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new roster override store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists an Override to the database. Re-saving the same
// (scope, scope_id, member, action) tuple is a no-op.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Override) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO roster_override (id, scope, scope_id, member_id, action)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(scope, scope_id, member_id, action) DO NOTHING`,
		entity.ID, entity.Scope, entity.ScopeID, entity.MemberID, entity.Action)
	return err
}

// DeleteByScopeMemberAction removes the matching override row if present.
// PRE: all arguments are non-empty
// POST: The matching row, if any, is removed
func (s *SQLiteStore) DeleteByScopeMemberAction(ctx context.Context, scope, scopeID, memberID, action string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM roster_override WHERE scope = ? AND scope_id = ? AND member_id = ? AND action = ?",
		scope, scopeID, memberID, action)
	return err
}

// ListMemberIDs returns the member IDs of overrides matching the scope and
// action.
// PRE: scope, scopeID and action are non-empty
// POST: Returns matching member IDs
func (s *SQLiteStore) ListMemberIDs(ctx context.Context, scope, scopeID, action string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id FROM roster_override WHERE scope = ? AND scope_id = ? AND action = ?",
		scope, scopeID, action)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListByScope returns every override at a scope target.
// PRE: scope and scopeID are non-empty
// POST: Returns matching overrides
func (s *SQLiteStore) ListByScope(ctx context.Context, scope, scopeID string) ([]domain.Override, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, scope, scope_id, member_id, action FROM roster_override WHERE scope = ? AND scope_id = ?",
		scope, scopeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Override
	for rows.Next() {
		var entity domain.Override
		if err := rows.Scan(&entity.ID, &entity.Scope, &entity.ScopeID, &entity.MemberID, &entity.Action); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
