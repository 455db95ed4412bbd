package event

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rollcall/internal/adapters/storage"
	domain "rollcall/internal/domain/event"
)

// SQLiteStore implements the event Store interface using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new event store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const selectColumns = "id, team_id, series_id, title, date, start_time, end_time"

// GetByID retrieves an Event by its ID.
// PRE: id is non-empty
// POST: Returns the event or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM event WHERE id = ?", id)

	var entity domain.Event
	var seriesID sql.NullString
	var date string
	err := row.Scan(&entity.ID, &entity.TeamID, &seriesID, &entity.Title, &date,
		&entity.StartTime, &entity.EndTime)
	if err == sql.ErrNoRows {
		return domain.Event{}, fmt.Errorf("event not found: %w", err)
	}
	if err != nil {
		return domain.Event{}, err
	}
	if seriesID.Valid {
		entity.SeriesID = seriesID.String
	}
	entity.Date, err = storage.ParseInstant(date)
	if err != nil {
		return domain.Event{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return entity, nil
}

// Save persists an Event to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Event) error {
	var seriesIDVal interface{}
	if entity.SeriesID != "" {
		seriesIDVal = entity.SeriesID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event (id, team_id, series_id, title, date, start_time, end_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   team_id=excluded.team_id, series_id=excluded.series_id, title=excluded.title,
		   date=excluded.date, start_time=excluded.start_time, end_time=excluded.end_time`,
		entity.ID, entity.TeamID, seriesIDVal, entity.Title,
		entity.Date.Format(storage.DateLayout), entity.StartTime, entity.EndTime)
	return err
}

// Delete removes an Event from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM event WHERE id = ?", id)
	return err
}

// ListByTeamAndDateRange retrieves a team's events within a date range
// (inclusive), ordered by date ascending.
// PRE: teamID is non-empty, start precedes end
// POST: Returns matching events in chronological order
func (s *SQLiteStore) ListByTeamAndDateRange(ctx context.Context, teamID string, start, end time.Time) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+selectColumns+` FROM event
		 WHERE team_id = ? AND date >= ? AND date <= ?
		 ORDER BY date ASC, start_time ASC`,
		teamID, start.Format(storage.DateLayout), end.Format(storage.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListBySeriesID retrieves all events still linked to a series, ordered by date.
// PRE: seriesID is non-empty
// POST: Returns matching events in chronological order
func (s *SQLiteStore) ListBySeriesID(ctx context.Context, seriesID string) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+selectColumns+" FROM event WHERE series_id = ? ORDER BY date ASC", seriesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// DetachSeriesBefore clears the series link on events dated before the
// given date, preserving them as standalone events.
// PRE: seriesID is non-empty, before is non-zero
// POST: Returns the number of detached events
func (s *SQLiteStore) DetachSeriesBefore(ctx context.Context, seriesID string, before time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE event SET series_id = NULL WHERE series_id = ? AND date < ?",
		seriesID, before.Format(storage.DateLayout))
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	return int(n), err
}

// DeleteSeriesFrom removes events of a series dated on or after the given date.
// PRE: seriesID is non-empty, from is non-zero
// POST: Returns the number of deleted events
func (s *SQLiteStore) DeleteSeriesFrom(ctx context.Context, seriesID string, from time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM event WHERE series_id = ? AND date >= ?",
		seriesID, from.Format(storage.DateLayout))
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	return int(n), err
}

// scanEvents scans multiple rows into a slice of Events.
func scanEvents(rows *sql.Rows) ([]domain.Event, error) {
	var results []domain.Event
	for rows.Next() {
		var entity domain.Event
		var seriesID sql.NullString
		var date string
		if err := rows.Scan(&entity.ID, &entity.TeamID, &seriesID, &entity.Title, &date,
			&entity.StartTime, &entity.EndTime); err != nil {
			return nil, err
		}
		if seriesID.Valid {
			entity.SeriesID = seriesID.String
		}
		parsed, err := storage.ParseInstant(date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		entity.Date = parsed
		results = append(results, entity)
	}
	return results, rows.Err()
}
