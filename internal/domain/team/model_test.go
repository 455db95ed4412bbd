package team_test

import (
	"testing"
	"time"

	"rollcall/internal/domain/team"
)

// TestTeam_Validate tests validation of Team.
func TestTeam_Validate(t *testing.T) {
	tests := []struct {
		name    string
		team    team.Team
		wantErr bool
	}{
		{"valid", team.Team{ID: "t1", OrgID: "o1", Name: "U14 Blue"}, false},
		{"empty name", team.Team{ID: "t2", OrgID: "o1", Name: "  "}, true},
		{"missing org", team.Team{ID: "t3", Name: "U14 Blue"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.team.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Team.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestTeam_HasSeason tests season assignment detection.
func TestTeam_HasSeason(t *testing.T) {
	withSeason := team.Team{ID: "t1", OrgID: "o1", Name: "U14", SeasonID: "s1", SeasonYear: 2024}
	if !withSeason.HasSeason() {
		t.Error("expected HasSeason true")
	}
	noYear := team.Team{ID: "t2", OrgID: "o1", Name: "U14", SeasonID: "s1"}
	if noYear.HasSeason() {
		t.Error("season without a year must not count as assigned")
	}
}

// TestMember_Validate tests validation of Member.
func TestMember_Validate(t *testing.T) {
	joined := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		member  team.Member
		wantErr bool
	}{
		{"valid", team.Member{ID: "m1", TeamID: "t1", Name: "Alex", JoinedAt: joined, HoursRequired: 40}, false},
		{"empty name", team.Member{ID: "m2", TeamID: "t1", Name: ""}, true},
		{"missing team", team.Member{ID: "m3", Name: "Alex"}, true},
		{"negative target", team.Member{ID: "m4", TeamID: "t1", Name: "Alex", HoursRequired: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.member.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Member.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
