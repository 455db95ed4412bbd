package storage

import (
	"testing"
	"time"
)

func TestParseInstantEpochMillis(t *testing.T) {
	got, err := ParseInstant("1709312400000")
	if err != nil {
		t.Fatalf("ParseInstant: %v", err)
	}
	want := time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseInstantRFC3339(t *testing.T) {
	got, err := ParseInstant("2024-03-01T17:00:00Z")
	if err != nil {
		t.Fatalf("ParseInstant: %v", err)
	}
	want := time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseInstantDateOnly(t *testing.T) {
	got, err := ParseInstant("2024-03-01")
	if err != nil {
		t.Fatalf("ParseInstant: %v", err)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseInstantRejectsGarbage(t *testing.T) {
	if _, err := ParseInstant("next tuesday"); err == nil {
		t.Error("expected error for unparseable value")
	}
	if _, err := ParseInstant(""); err == nil {
		t.Error("expected error for empty value")
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	orig := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	got, err := ParseInstant(FormatInstant(orig))
	if err != nil {
		t.Fatalf("ParseInstant: %v", err)
	}
	if !got.Equal(orig) {
		t.Errorf("round trip changed value: %v != %v", got, orig)
	}
}
