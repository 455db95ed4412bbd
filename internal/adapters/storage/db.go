package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS team (
		id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		name TEXT NOT NULL,
		season_id TEXT,
		season_year INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS team_member (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT,
		guardian_email TEXT,
		joined_at TEXT NOT NULL,
		hours_required REAL NOT NULL DEFAULT 0,
		FOREIGN KEY (team_id) REFERENCES team(id)
	);

	CREATE TABLE IF NOT EXISTS season (
		id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		name TEXT NOT NULL,
		start_month INTEGER NOT NULL,
		end_month INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS membership_period (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		team_id TEXT NOT NULL,
		joined_at TEXT NOT NULL,
		left_at TEXT,
		FOREIGN KEY (member_id) REFERENCES team_member(id),
		FOREIGN KEY (team_id) REFERENCES team(id)
	);

	CREATE TABLE IF NOT EXISTS recurring_event (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		title TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		frequency TEXT NOT NULL,
		days_of_week TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (team_id) REFERENCES team(id)
	);

	CREATE TABLE IF NOT EXISTS event (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		series_id TEXT,
		title TEXT NOT NULL,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		FOREIGN KEY (team_id) REFERENCES team(id)
	);

	CREATE TABLE IF NOT EXISTS check_in (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		event_id TEXT NOT NULL,
		status TEXT NOT NULL,
		hours_logged REAL NOT NULL DEFAULT 0,
		approved INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (member_id) REFERENCES team_member(id),
		FOREIGN KEY (event_id) REFERENCES event(id)
	);

	CREATE TABLE IF NOT EXISTS roster_override (
		id TEXT PRIMARY KEY,
		scope TEXT NOT NULL,
		scope_id TEXT NOT NULL,
		member_id TEXT NOT NULL,
		action TEXT NOT NULL,
		UNIQUE (scope, scope_id, member_id, action)
	);

	CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		action_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		status TEXT NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL DEFAULT 5,
		last_attempted_at TEXT,
		created_at TEXT NOT NULL,
		error_message TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_event_team_date ON event(team_id, date);
	CREATE INDEX IF NOT EXISTS idx_event_series ON event(series_id);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_check_in_member_event ON check_in(member_id, event_id);
	CREATE INDEX IF NOT EXISTS idx_check_in_event ON check_in(event_id);
	CREATE INDEX IF NOT EXISTS idx_membership_member_team ON membership_period(member_id, team_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
