package membership

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rollcall/internal/adapters/storage"
	domain "rollcall/internal/domain/membership"
)

// SQLiteStore implements the membership Store interface using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new membership period store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Period by its ID.
// PRE: id is non-empty
// POST: Returns the period or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Period, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, member_id, team_id, joined_at, left_at FROM membership_period WHERE id = ?", id)

	entity, err := scanPeriod(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Period{}, fmt.Errorf("membership period not found: %w", err)
	}
	return entity, err
}

// Save persists a Period to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Period) error {
	// NULL left_at marks an open period
	var leftAtVal interface{}
	if !entity.LeftAt.IsZero() {
		leftAtVal = storage.FormatInstant(entity.LeftAt)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO membership_period (id, member_id, team_id, joined_at, left_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   member_id=excluded.member_id, team_id=excluded.team_id,
		   joined_at=excluded.joined_at, left_at=excluded.left_at`,
		entity.ID, entity.MemberID, entity.TeamID,
		storage.FormatInstant(entity.JoinedAt), leftAtVal)
	return err
}

// Close ends an open period at the given instant.
// PRE: id is non-empty, leftAt is non-zero
// POST: The period's left_at is set
func (s *SQLiteStore) Close(ctx context.Context, id string, leftAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE membership_period SET left_at = ? WHERE id = ?",
		storage.FormatInstant(leftAt), id)
	return err
}

// ListByMemberAndTeam retrieves a member's periods on a team, ordered by
// join time ascending.
// PRE: memberID and teamID are non-empty
// POST: Returns matching periods in chronological order
func (s *SQLiteStore) ListByMemberAndTeam(ctx context.Context, memberID, teamID string) ([]domain.Period, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, member_id, team_id, joined_at, left_at
		 FROM membership_period WHERE member_id = ? AND team_id = ?
		 ORDER BY joined_at ASC`, memberID, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPeriods(rows)
}

// ListOpenByTeam retrieves all currently open periods on a team.
// PRE: teamID is non-empty
// POST: Returns periods with no left_at
func (s *SQLiteStore) ListOpenByTeam(ctx context.Context, teamID string) ([]domain.Period, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, member_id, team_id, joined_at, left_at
		 FROM membership_period WHERE team_id = ? AND left_at IS NULL
		 ORDER BY joined_at ASC`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPeriods(rows)
}

func scanPeriod(scan func(dest ...any) error) (domain.Period, error) {
	var entity domain.Period
	var joinedAt string
	var leftAt sql.NullString
	err := scan(&entity.ID, &entity.MemberID, &entity.TeamID, &joinedAt, &leftAt)
	if err != nil {
		return domain.Period{}, err
	}
	if entity.JoinedAt, err = storage.ParseInstant(joinedAt); err != nil {
		return domain.Period{}, fmt.Errorf("failed to parse joined_at: %w", err)
	}
	if leftAt.Valid && leftAt.String != "" {
		if entity.LeftAt, err = storage.ParseInstant(leftAt.String); err != nil {
			return domain.Period{}, fmt.Errorf("failed to parse left_at: %w", err)
		}
	}
	return entity, nil
}

func scanPeriods(rows *sql.Rows) ([]domain.Period, error) {
	var results []domain.Period
	for rows.Next() {
		entity, err := scanPeriod(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
