package checkin

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"rollcall/internal/adapters/storage"
	domain "rollcall/internal/domain/checkin"
)

// SQLiteStore implements the checkin Store interface using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new check-in store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a CheckIn by its ID.
// PRE: id is non-empty
// POST: Returns the check-in or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.CheckIn, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, member_id, event_id, status, hours_logged, approved FROM check_in WHERE id = ?", id)

	var entity domain.CheckIn
	err := row.Scan(&entity.ID, &entity.MemberID, &entity.EventID, &entity.Status,
		&entity.HoursLogged, &entity.Approved)
	if err == sql.ErrNoRows {
		return domain.CheckIn{}, fmt.Errorf("check-in not found: %w", err)
	}
	return entity, err
}

// Save persists a CheckIn to the database. A member holds at most one
// check-in per event, so a re-submission replaces the earlier record.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.CheckIn) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO check_in (id, member_id, event_id, status, hours_logged, approved)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(member_id, event_id) DO UPDATE SET
		   status=excluded.status, hours_logged=excluded.hours_logged, approved=excluded.approved`,
		entity.ID, entity.MemberID, entity.EventID, entity.Status,
		entity.HoursLogged, entity.Approved)
	return err
}

// Delete removes a CheckIn from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM check_in WHERE id = ?", id)
	return err
}

// ListByMemberAndEventIDs retrieves a member's check-ins for the given events.
// PRE: memberID is non-empty
// POST: Returns matching check-ins; empty eventIDs yields an empty result
func (s *SQLiteStore) ListByMemberAndEventIDs(ctx context.Context, memberID string, eventIDs []string) ([]domain.CheckIn, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(eventIDs))
	args := make([]any, len(eventIDs)+1)
	args[0] = memberID
	for i, id := range eventIDs {
		placeholders[i] = "?"
		args[i+1] = id
	}

	query := fmt.Sprintf(
		`SELECT id, member_id, event_id, status, hours_logged, approved
		 FROM check_in WHERE member_id = ? AND event_id IN (%s)`,
		strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCheckIns(rows)
}

// ListByTeamAndDateRange retrieves every check-in against a team's events
// within a date range (inclusive).
// PRE: teamID is non-empty, start precedes end
// POST: Returns matching check-ins ordered by event date
func (s *SQLiteStore) ListByTeamAndDateRange(ctx context.Context, teamID string, start, end time.Time) ([]domain.CheckIn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.member_id, c.event_id, c.status, c.hours_logged, c.approved
		 FROM check_in c JOIN event e ON c.event_id = e.id
		 WHERE e.team_id = ? AND e.date >= ? AND e.date <= ?
		 ORDER BY e.date ASC`,
		teamID, start.Format(storage.DateLayout), end.Format(storage.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCheckIns(rows)
}

// ListByMemberAndDateRange retrieves a member's check-ins within a date
// range (inclusive), regardless of team.
// PRE: memberID is non-empty, start precedes end
// POST: Returns matching check-ins ordered by event date
func (s *SQLiteStore) ListByMemberAndDateRange(ctx context.Context, memberID string, start, end time.Time) ([]domain.CheckIn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.member_id, c.event_id, c.status, c.hours_logged, c.approved
		 FROM check_in c JOIN event e ON c.event_id = e.id
		 WHERE c.member_id = ? AND e.date >= ? AND e.date <= ?
		 ORDER BY e.date ASC`,
		memberID, start.Format(storage.DateLayout), end.Format(storage.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCheckIns(rows)
}

// scanCheckIns scans multiple rows into a slice of CheckIns.
func scanCheckIns(rows *sql.Rows) ([]domain.CheckIn, error) {
	var results []domain.CheckIn
	for rows.Next() {
		var entity domain.CheckIn
		if err := rows.Scan(&entity.ID, &entity.MemberID, &entity.EventID, &entity.Status,
			&entity.HoursLogged, &entity.Approved); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
