package web

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "modernc.org/sqlite"

	"rollcall/internal/adapters/email"
	"rollcall/internal/adapters/storage"
	checkinStore "rollcall/internal/adapters/storage/checkin"
	eventStore "rollcall/internal/adapters/storage/event"
	membershipStore "rollcall/internal/adapters/storage/membership"
	outboxStore "rollcall/internal/adapters/storage/outbox"
	recurringStore "rollcall/internal/adapters/storage/recurring"
	rosterStore "rollcall/internal/adapters/storage/roster"
	seasonStore "rollcall/internal/adapters/storage/season"
	teamStore "rollcall/internal/adapters/storage/team"
)

// newTestServer wires the full stack against an in-memory database.
func newTestServer(t *testing.T) (*httptest.Server, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	// In-memory SQLite shares state only within one connection.
	db.SetMaxOpenConns(1)
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	RateLimitPerSecond = 1000
	SetEmailSender(&email.NoopSender{}, "digests@example.org")

	mux := NewMux(&Stores{
		TeamStore:       teamStore.NewSQLiteStore(db),
		SeasonStore:     seasonStore.NewSQLiteStore(db),
		EventStore:      eventStore.NewSQLiteStore(db),
		RecurringStore:  recurringStore.NewSQLiteStore(db),
		MembershipStore: membershipStore.NewSQLiteStore(db),
		CheckInStore:    checkinStore.NewSQLiteStore(db),
		RosterStore:     rosterStore.NewSQLiteStore(db),
		OutboxStore:     outboxStore.NewSQLiteStore(db),
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, db
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCreateRecurringEventEndpoint(t *testing.T) {
	srv, db := newTestServer(t)
	if _, err := db.Exec(`INSERT INTO team (id, org_id, name) VALUES ('t1', 'org1', 'Sharks')`); err != nil {
		t.Fatalf("seed team: %v", err)
	}

	resp := postJSON(t, srv.URL+"/api/recurring-events", map[string]any{
		"team_id":      "t1",
		"title":        "Tuesday Training",
		"start_date":   "2025-03-03",
		"end_date":     "2025-03-31",
		"frequency":    "WEEKLY",
		"days_of_week": []int{2},
		"start_time":   "6:00 PM",
		"end_time":     "7:30 PM",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var body struct {
		SeriesID    string `json:"series_id"`
		Occurrences int    `json:"occurrences"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Occurrences != 4 {
		t.Errorf("occurrences = %d, want 4 Tuesdays", body.Occurrences)
	}

	var count int
	db.QueryRow("SELECT COUNT(*) FROM event WHERE series_id = ?", body.SeriesID).Scan(&count)
	if count != 4 {
		t.Errorf("persisted %d events, want 4", count)
	}
}

func TestCreateRecurringEventRejectsBadRule(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/recurring-events", map[string]any{
		"team_id":    "t1",
		"title":      "Backwards",
		"start_date": "2025-03-31",
		"end_date":   "2025-03-03",
		"frequency":  "DAILY",
		"start_time": "6:00 PM",
		"end_time":   "7:00 PM",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422 for invalid rule", resp.StatusCode)
	}
}

func TestCheckInAndTeamAttendanceEndpoints(t *testing.T) {
	srv, db := newTestServer(t)
	seed := []string{
		`INSERT INTO team (id, org_id, name) VALUES ('t1', 'org1', 'Sharks')`,
		`INSERT INTO team_member (id, team_id, name, joined_at, hours_required) VALUES ('m1', 't1', 'Ana', '2025-01-01T00:00:00Z', 10)`,
		`INSERT INTO event (id, team_id, title, date, start_time, end_time) VALUES ('e1', 't1', 'Training', '2025-03-04', '6:00 PM', '7:30 PM')`,
	}
	for _, stmt := range seed {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	resp := postJSON(t, srv.URL+"/api/check-ins", map[string]any{
		"member_id": "m1",
		"event_id":  "e1",
		"status":    "ON_TIME",
		"approved":  true,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("check-in status = %d, want 201", resp.StatusCode)
	}
	var created struct {
		HoursLogged float64 `json:"hours_logged"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.HoursLogged != 1.5 {
		t.Errorf("hours_logged = %v, want event duration 1.5", created.HoursLogged)
	}

	attResp, err := http.Get(srv.URL + "/api/teams/t1/attendance")
	if err != nil {
		t.Fatalf("GET attendance: %v", err)
	}
	defer attResp.Body.Close()
	if attResp.StatusCode != http.StatusOK {
		t.Fatalf("attendance status = %d, want 200", attResp.StatusCode)
	}
	var att struct {
		Members []struct {
			MemberID    string
			HoursLogged float64
		}
	}
	if err := json.NewDecoder(attResp.Body).Decode(&att); err != nil {
		t.Fatalf("decode attendance: %v", err)
	}
	if len(att.Members) != 1 || att.Members[0].HoursLogged != 1.5 {
		t.Errorf("attendance rows = %+v, want Ana with 1.5 hours", att.Members)
	}
}

func TestRosterOverrideEndpoints(t *testing.T) {
	srv, db := newTestServer(t)
	seed := []string{
		`INSERT INTO team (id, org_id, name) VALUES ('t1', 'org1', 'Sharks')`,
		`INSERT INTO team_member (id, team_id, name, joined_at) VALUES ('m1', 't1', 'Ana', '2025-01-01T00:00:00Z')`,
		`INSERT INTO team_member (id, team_id, name, joined_at) VALUES ('m2', 't1', 'Ben', '2025-01-01T00:00:00Z')`,
		`INSERT INTO event (id, team_id, title, date, start_time, end_time) VALUES ('e1', 't1', 'Training', '2025-03-04', '6:00 PM', '7:00 PM')`,
	}
	for _, stmt := range seed {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	resp := postJSON(t, srv.URL+"/api/roster-overrides", map[string]any{
		"scope":     "event",
		"scope_id":  "e1",
		"member_id": "m2",
		"action":    "exclude",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("override status = %d, want 201", resp.StatusCode)
	}

	rosterResp, err := http.Get(srv.URL + "/api/events/e1/roster")
	if err != nil {
		t.Fatalf("GET roster: %v", err)
	}
	defer rosterResp.Body.Close()
	var roster struct {
		MemberIDs []string
	}
	if err := json.NewDecoder(rosterResp.Body).Decode(&roster); err != nil {
		t.Fatalf("decode roster: %v", err)
	}
	if len(roster.MemberIDs) != 1 || roster.MemberIDs[0] != "m1" {
		t.Errorf("roster = %v, want only m1 after excluding m2", roster.MemberIDs)
	}
}
