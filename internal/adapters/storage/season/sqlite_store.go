package season

import (
	"context"
	"database/sql"
	"fmt"

	"rollcall/internal/adapters/storage"
	domain "rollcall/internal/domain/season"
)

// SQLiteStore implements the season Store interface using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new season store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Season by its ID.
// PRE: id is non-empty
// POST: Returns the season or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Season, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, org_id, name, start_month, end_month FROM season WHERE id = ?", id)

	var entity domain.Season
	err := row.Scan(&entity.ID, &entity.OrgID, &entity.Name, &entity.StartMonth, &entity.EndMonth)
	if err == sql.ErrNoRows {
		return domain.Season{}, fmt.Errorf("season not found: %w", err)
	}
	return entity, err
}

// Save persists a Season to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Season) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO season (id, org_id, name, start_month, end_month)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   org_id=excluded.org_id, name=excluded.name,
		   start_month=excluded.start_month, end_month=excluded.end_month`,
		entity.ID, entity.OrgID, entity.Name, entity.StartMonth, entity.EndMonth)
	return err
}

// ListByOrg retrieves all seasons for an organization, ordered by name.
// PRE: orgID is non-empty
// POST: Returns seasons for the organization
func (s *SQLiteStore) ListByOrg(ctx context.Context, orgID string) ([]domain.Season, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, org_id, name, start_month, end_month FROM season WHERE org_id = ? ORDER BY name ASC", orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Season
	for rows.Next() {
		var entity domain.Season
		if err := rows.Scan(&entity.ID, &entity.OrgID, &entity.Name, &entity.StartMonth, &entity.EndMonth); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Delete removes a Season from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM season WHERE id = ?", id)
	return err
}
