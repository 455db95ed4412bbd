package membership

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"rollcall/internal/adapters/storage"
	domain "rollcall/internal/domain/membership"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	seed := []string{
		`INSERT INTO team (id, org_id, name) VALUES ('t1', 'org1', 'Sharks')`,
		`INSERT INTO team_member (id, team_id, name, joined_at) VALUES ('m1', 't1', 'Ana', '2025-01-01T00:00:00Z')`,
	}
	for _, stmt := range seed {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return NewSQLiteStore(db)
}

func TestOpenPeriodRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := domain.Period{
		ID:       "p1",
		MemberID: "m1",
		TeamID:   "t1",
		JoinedAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := store.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Open() {
		t.Errorf("period with NULL left_at should load as open")
	}
	if !got.JoinedAt.Equal(p.JoinedAt) {
		t.Errorf("joined_at changed in round trip: %v", got.JoinedAt)
	}
}

func TestCloseEndsPeriod(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := domain.Period{ID: "p1", MemberID: "m1", TeamID: "t1",
		JoinedAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)}
	if err := store.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	leftAt := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	if err := store.Close(ctx, "p1", leftAt); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := store.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Open() || !got.LeftAt.Equal(leftAt) {
		t.Errorf("period not closed correctly: %+v", got)
	}
}

func TestListByMemberAndTeamOrdersByJoin(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Saved out of order; the list must come back chronological.
	periods := []domain.Period{
		{ID: "p2", MemberID: "m1", TeamID: "t1",
			JoinedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "p1", MemberID: "m1", TeamID: "t1",
			JoinedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			LeftAt:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, p := range periods {
		if err := store.Save(ctx, p); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := store.ListByMemberAndTeam(ctx, "m1", "t1")
	if err != nil {
		t.Fatalf("ListByMemberAndTeam: %v", err)
	}
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p2" {
		t.Errorf("periods not in join order: %+v", got)
	}
}
