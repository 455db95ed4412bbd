package team

import (
	"context"
	"database/sql"
	"fmt"

	"rollcall/internal/adapters/storage"
	domain "rollcall/internal/domain/team"
)

// SQLiteStore implements the team Store interface using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new team store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetTeam retrieves a Team by its ID.
// PRE: id is non-empty
// POST: Returns the team or an error if not found
func (s *SQLiteStore) GetTeam(ctx context.Context, id string) (domain.Team, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, org_id, name, season_id, season_year FROM team WHERE id = ?", id)

	var entity domain.Team
	var seasonID sql.NullString
	err := row.Scan(&entity.ID, &entity.OrgID, &entity.Name, &seasonID, &entity.SeasonYear)
	if err == sql.ErrNoRows {
		return domain.Team{}, fmt.Errorf("team not found: %w", err)
	}
	if err != nil {
		return domain.Team{}, err
	}
	if seasonID.Valid {
		entity.SeasonID = seasonID.String
	}
	return entity, nil
}

// SaveTeam persists a Team to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) SaveTeam(ctx context.Context, entity domain.Team) error {
	var seasonIDVal interface{}
	if entity.SeasonID != "" {
		seasonIDVal = entity.SeasonID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO team (id, org_id, name, season_id, season_year)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   org_id=excluded.org_id, name=excluded.name,
		   season_id=excluded.season_id, season_year=excluded.season_year`,
		entity.ID, entity.OrgID, entity.Name, seasonIDVal, entity.SeasonYear)
	return err
}

// ListTeamsByOrg retrieves all teams for an organization, ordered by name.
// PRE: orgID is non-empty
// POST: Returns teams for the organization
func (s *SQLiteStore) ListTeamsByOrg(ctx context.Context, orgID string) ([]domain.Team, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, org_id, name, season_id, season_year FROM team WHERE org_id = ? ORDER BY name ASC", orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Team
	for rows.Next() {
		var entity domain.Team
		var seasonID sql.NullString
		if err := rows.Scan(&entity.ID, &entity.OrgID, &entity.Name, &seasonID, &entity.SeasonYear); err != nil {
			return nil, err
		}
		if seasonID.Valid {
			entity.SeasonID = seasonID.String
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// GetMember retrieves a Member by its ID.
// PRE: id is non-empty
// POST: Returns the member or an error if not found
func (s *SQLiteStore) GetMember(ctx context.Context, id string) (domain.Member, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, team_id, name, email, guardian_email, joined_at, hours_required
		 FROM team_member WHERE id = ?`, id)

	var entity domain.Member
	var email, guardianEmail sql.NullString
	var joinedAt string
	err := row.Scan(&entity.ID, &entity.TeamID, &entity.Name, &email, &guardianEmail,
		&joinedAt, &entity.HoursRequired)
	if err == sql.ErrNoRows {
		return domain.Member{}, fmt.Errorf("member not found: %w", err)
	}
	if err != nil {
		return domain.Member{}, err
	}
	if email.Valid {
		entity.Email = email.String
	}
	if guardianEmail.Valid {
		entity.GuardianEmail = guardianEmail.String
	}
	entity.JoinedAt, err = storage.ParseInstant(joinedAt)
	if err != nil {
		return domain.Member{}, fmt.Errorf("failed to parse joined_at: %w", err)
	}
	return entity, nil
}

// SaveMember persists a Member to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) SaveMember(ctx context.Context, entity domain.Member) error {
	var emailVal, guardianVal interface{}
	if entity.Email != "" {
		emailVal = entity.Email
	}
	if entity.GuardianEmail != "" {
		guardianVal = entity.GuardianEmail
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO team_member (id, team_id, name, email, guardian_email, joined_at, hours_required)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   team_id=excluded.team_id, name=excluded.name, email=excluded.email,
		   guardian_email=excluded.guardian_email, joined_at=excluded.joined_at,
		   hours_required=excluded.hours_required`,
		entity.ID, entity.TeamID, entity.Name, emailVal, guardianVal,
		storage.FormatInstant(entity.JoinedAt), entity.HoursRequired)
	return err
}

// ListMembersByTeam retrieves a team's base roster, ordered by name.
// PRE: teamID is non-empty
// POST: Returns members for the team
func (s *SQLiteStore) ListMembersByTeam(ctx context.Context, teamID string) ([]domain.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, team_id, name, email, guardian_email, joined_at, hours_required
		 FROM team_member WHERE team_id = ? ORDER BY name ASC`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Member
	for rows.Next() {
		var entity domain.Member
		var email, guardianEmail sql.NullString
		var joinedAt string
		if err := rows.Scan(&entity.ID, &entity.TeamID, &entity.Name, &email, &guardianEmail,
			&joinedAt, &entity.HoursRequired); err != nil {
			return nil, err
		}
		if email.Valid {
			entity.Email = email.String
		}
		if guardianEmail.Valid {
			entity.GuardianEmail = guardianEmail.String
		}
		entity.JoinedAt, err = storage.ParseInstant(joinedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse joined_at: %w", err)
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
