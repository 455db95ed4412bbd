package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"rollcall/internal/domain/event"
	"rollcall/internal/domain/recurrence"
)

type mockSeriesStore struct {
	savedSeries recurrence.Series
	savedEvents []event.Event
	saveErr     error
	calls       int
}

func (m *mockSeriesStore) SaveWithEvents(_ context.Context, s recurrence.Series, evs []event.Event) error {
	m.calls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.savedSeries = s
	m.savedEvents = evs
	return nil
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestCreateRecurringEventWeekly(t *testing.T) {
	store := &mockSeriesStore{}
	input := CreateRecurringEventInput{
		TeamID:    "team-1",
		Title:     "Tuesday Training",
		StartDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), // Monday
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Frequency: recurrence.FrequencyWeekly,
		DaysOfWeek: []int{2}, // Tuesday
		StartTime: "6:00 PM",
		EndTime:   "7:30 PM",
	}

	result, err := ExecuteCreateRecurringEvent(context.Background(), input, CreateRecurringEventDeps{
		SeriesStore: store,
		GenerateID:  sequentialIDs(),
	})
	if err != nil {
		t.Fatalf("ExecuteCreateRecurringEvent: %v", err)
	}

	// Tuesdays in the window: Mar 4, 11, 18, 25.
	if len(result.Events) != 4 {
		t.Fatalf("expected 4 occurrences, got %d", len(result.Events))
	}
	if store.calls != 1 {
		t.Errorf("expected one SaveWithEvents call, got %d", store.calls)
	}
	for i, ev := range result.Events {
		if ev.SeriesID != result.Series.ID {
			t.Errorf("occurrence %d not linked to series", i)
		}
		if ev.Date.Weekday() != time.Tuesday {
			t.Errorf("occurrence %d on %v, want Tuesday", i, ev.Date.Weekday())
		}
		if ev.StartTime != "6:00 PM" || ev.EndTime != "7:30 PM" {
			t.Errorf("occurrence %d times not carried over", i)
		}
	}
}

func TestCreateRecurringEventValidationError(t *testing.T) {
	store := &mockSeriesStore{}
	input := CreateRecurringEventInput{
		TeamID:     "team-1",
		Title:      "Backwards",
		StartDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Frequency:  recurrence.FrequencyDaily,
		StartTime:  "6:00 PM",
		EndTime:    "7:00 PM",
	}

	_, err := ExecuteCreateRecurringEvent(context.Background(), input, CreateRecurringEventDeps{
		SeriesStore: store,
		GenerateID:  sequentialIDs(),
	})
	if !errors.Is(err, recurrence.ErrEndBeforeStart) {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}
	if store.calls != 0 {
		t.Errorf("store called despite validation failure")
	}
}

func TestCreateRecurringEventEmptyExpansion(t *testing.T) {
	// Wednesday-only rule over a Mon-Tue window yields nothing.
	input := CreateRecurringEventInput{
		TeamID:     "team-1",
		Title:      "Never Happens",
		StartDate:  time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		Frequency:  recurrence.FrequencyWeekly,
		DaysOfWeek: []int{3},
		StartTime:  "6:00 PM",
		EndTime:    "7:00 PM",
	}

	_, err := ExecuteCreateRecurringEvent(context.Background(), input, CreateRecurringEventDeps{
		SeriesStore: &mockSeriesStore{},
		GenerateID:  sequentialIDs(),
	})
	if !errors.Is(err, recurrence.ErrNoOccurrences) {
		t.Fatalf("expected ErrNoOccurrences, got %v", err)
	}
}

func TestCreateRecurringEventStoreFailureSurfaces(t *testing.T) {
	storeErr := errors.New("disk full")
	input := CreateRecurringEventInput{
		TeamID:    "team-1",
		Title:     "Daily Drills",
		StartDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Frequency: recurrence.FrequencyDaily,
		StartTime: "All Day",
		EndTime:   "All Day",
	}

	_, err := ExecuteCreateRecurringEvent(context.Background(), input, CreateRecurringEventDeps{
		SeriesStore: &mockSeriesStore{saveErr: storeErr},
		GenerateID:  sequentialIDs(),
	})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}
