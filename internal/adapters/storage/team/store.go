package team

import (
	"context"

	domain "rollcall/internal/domain/team"
)

// Store persists Team and Member state.
type Store interface {
	GetTeam(ctx context.Context, id string) (domain.Team, error)
	SaveTeam(ctx context.Context, value domain.Team) error
	ListTeamsByOrg(ctx context.Context, orgID string) ([]domain.Team, error)
	GetMember(ctx context.Context, id string) (domain.Member, error)
	SaveMember(ctx context.Context, value domain.Member) error
	ListMembersByTeam(ctx context.Context, teamID string) ([]domain.Member, error)
}
