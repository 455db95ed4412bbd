package recurring

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"rollcall/internal/adapters/storage"
	eventdomain "rollcall/internal/domain/event"
	domain "rollcall/internal/domain/recurrence"
)

func newTestStore(t *testing.T) (*SQLiteStore, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO team (id, org_id, name) VALUES ('t1', 'org1', 'Sharks')`); err != nil {
		t.Fatalf("seed team: %v", err)
	}
	return NewSQLiteStore(db), db
}

func testSeries() domain.Series {
	return domain.Series{
		ID:        "s1",
		TeamID:    "t1",
		Title:     "Evening Training",
		StartTime: "6:00 PM",
		EndTime:   "7:30 PM",
		Rule: domain.Rule{
			StartDate:  time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			Frequency:  domain.FrequencyWeekly,
			DaysOfWeek: []int{2, 4},
		},
	}
}

func TestSaveWithEventsRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	series := testSeries()
	events := []eventdomain.Event{
		{ID: "e1", TeamID: "t1", SeriesID: "s1", Title: "Evening Training",
			Date: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), StartTime: "6:00 PM", EndTime: "7:30 PM"},
		{ID: "e2", TeamID: "t1", SeriesID: "s1", Title: "Evening Training",
			Date: time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC), StartTime: "6:00 PM", EndTime: "7:30 PM"},
	}

	if err := store.SaveWithEvents(context.Background(), series, events); err != nil {
		t.Fatalf("SaveWithEvents: %v", err)
	}

	got, err := store.GetByID(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != series.Title || got.Rule.Frequency != domain.FrequencyWeekly {
		t.Errorf("series round trip mismatch: %+v", got)
	}
	if !reflect.DeepEqual(got.Rule.DaysOfWeek, []int{2, 4}) {
		t.Errorf("days of week %v, want [2 4]", got.Rule.DaysOfWeek)
	}
	if !got.Rule.StartDate.Equal(series.Rule.StartDate) || !got.Rule.EndDate.Equal(series.Rule.EndDate) {
		t.Errorf("rule bounds changed in round trip")
	}
}

func TestSaveWithEventsIsAtomic(t *testing.T) {
	store, db := newTestStore(t)
	series := testSeries()
	// Duplicate event ID forces a failure midway through the batch.
	events := []eventdomain.Event{
		{ID: "e1", TeamID: "t1", SeriesID: "s1", Title: "Evening Training",
			Date: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), StartTime: "6:00 PM", EndTime: "7:30 PM"},
		{ID: "e1", TeamID: "t1", SeriesID: "s1", Title: "Evening Training",
			Date: time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC), StartTime: "6:00 PM", EndTime: "7:30 PM"},
	}

	if err := store.SaveWithEvents(context.Background(), series, events); err == nil {
		t.Fatal("expected error from duplicate event ID")
	}

	var seriesCount, eventCount int
	db.QueryRow("SELECT COUNT(*) FROM recurring_event").Scan(&seriesCount)
	db.QueryRow("SELECT COUNT(*) FROM event").Scan(&eventCount)
	if seriesCount != 0 || eventCount != 0 {
		t.Errorf("partial write visible after failure: %d series, %d events", seriesCount, eventCount)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.GetByID(context.Background(), "missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected wrapped ErrNoRows, got %v", err)
	}
}
