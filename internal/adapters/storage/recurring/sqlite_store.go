package recurring

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"rollcall/internal/adapters/storage"
	eventdomain "rollcall/internal/domain/event"
	domain "rollcall/internal/domain/recurrence"
)

// SQLiteStore implements the recurring Store interface using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new recurring event store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Series by its ID.
// PRE: id is non-empty
// POST: Returns the series or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Series, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, team_id, title, start_time, end_time, start_date, end_date, frequency, days_of_week
		 FROM recurring_event WHERE id = ?`, id)
	entity, err := scanSeries(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Series{}, fmt.Errorf("recurring event not found: %w", err)
	}
	return entity, err
}

// SaveWithEvents persists a series and its generated occurrences in one
// transaction, so a partially created series is never visible.
// PRE: series and events have been validated
// POST: Either everything is persisted or nothing is
func (s *SQLiteStore) SaveWithEvents(ctx context.Context, series domain.Series, events []eventdomain.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO recurring_event (id, team_id, title, start_time, end_time, start_date, end_date, frequency, days_of_week)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   team_id=excluded.team_id, title=excluded.title,
		   start_time=excluded.start_time, end_time=excluded.end_time,
		   start_date=excluded.start_date, end_date=excluded.end_date,
		   frequency=excluded.frequency, days_of_week=excluded.days_of_week`,
		series.ID, series.TeamID, series.Title, series.StartTime, series.EndTime,
		series.Rule.StartDate.Format(storage.DateLayout),
		series.Rule.EndDate.Format(storage.DateLayout),
		series.Rule.Frequency, joinDays(series.Rule.DaysOfWeek))
	if err != nil {
		return err
	}

	for _, ev := range events {
		var seriesIDVal interface{}
		if ev.SeriesID != "" {
			seriesIDVal = ev.SeriesID
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO event (id, team_id, series_id, title, date, start_time, end_time)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			ev.ID, ev.TeamID, seriesIDVal, ev.Title,
			ev.Date.Format(storage.DateLayout), ev.StartTime, ev.EndTime); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListByTeam retrieves all series for a team, ordered by start date.
// PRE: teamID is non-empty
// POST: Returns matching series
func (s *SQLiteStore) ListByTeam(ctx context.Context, teamID string) ([]domain.Series, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, team_id, title, start_time, end_time, start_date, end_date, frequency, days_of_week
		 FROM recurring_event WHERE team_id = ? ORDER BY start_date ASC`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Series
	for rows.Next() {
		entity, err := scanSeries(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanSeries(scan func(dest ...any) error) (domain.Series, error) {
	var entity domain.Series
	var startDate, endDate, days string
	err := scan(&entity.ID, &entity.TeamID, &entity.Title, &entity.StartTime, &entity.EndTime,
		&startDate, &endDate, &entity.Rule.Frequency, &days)
	if err != nil {
		return domain.Series{}, err
	}
	if entity.Rule.StartDate, err = storage.ParseInstant(startDate); err != nil {
		return domain.Series{}, fmt.Errorf("failed to parse start_date: %w", err)
	}
	if entity.Rule.EndDate, err = storage.ParseInstant(endDate); err != nil {
		return domain.Series{}, fmt.Errorf("failed to parse end_date: %w", err)
	}
	if entity.Rule.DaysOfWeek, err = splitDays(days); err != nil {
		return domain.Series{}, fmt.Errorf("failed to parse days_of_week: %w", err)
	}
	return entity, nil
}

func joinDays(days []int) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

func splitDays(value string) ([]int, error) {
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}
