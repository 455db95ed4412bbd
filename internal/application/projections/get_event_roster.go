package projections

import (
	"context"
	"errors"

	"rollcall/internal/domain/event"
	"rollcall/internal/domain/roster"
	"rollcall/internal/domain/team"
)

// EventRosterEventStore defines the event store interface needed by the roster projection.
type EventRosterEventStore interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
}

// EventRosterMemberStore defines the member store interface needed by the roster projection.
type EventRosterMemberStore interface {
	ListMembersByTeam(ctx context.Context, teamID string) ([]team.Member, error)
}

// EventRosterOverrideStore defines the override store interface needed by the roster projection.
type EventRosterOverrideStore interface {
	// ListMemberIDs returns the member IDs of overrides matching the scope
	// and action, e.g. everyone series-excluded from one series.
	ListMemberIDs(ctx context.Context, scope, scopeID, action string) ([]string, error)
}

// GetEventRosterQuery carries input for the effective roster projection.
type GetEventRosterQuery struct {
	EventID string
}

// GetEventRosterResult carries the resolved roster for one occurrence.
type GetEventRosterResult struct {
	EventID   string
	MemberIDs []string // sorted
}

// GetEventRosterDeps holds dependencies for the effective roster projection.
type GetEventRosterDeps struct {
	EventStore    EventRosterEventStore
	MemberStore   EventRosterMemberStore
	OverrideStore EventRosterOverrideStore
}

// QueryGetEventRoster resolves who is expected at a single occurrence:
// the team's base roster with series-level then event-level overrides
// layered on top. Series layers apply only while the occurrence still
// belongs to its series.
// PRE: query.EventID is non-empty
// POST: MemberIDs is sorted and deduplicated
func QueryGetEventRoster(ctx context.Context, query GetEventRosterQuery, deps GetEventRosterDeps) (GetEventRosterResult, error) {
	if query.EventID == "" {
		return GetEventRosterResult{}, errors.New("event_id is required")
	}

	ev, err := deps.EventStore.GetByID(ctx, query.EventID)
	if err != nil {
		return GetEventRosterResult{}, err
	}
	members, err := deps.MemberStore.ListMembersByTeam(ctx, ev.TeamID)
	if err != nil {
		return GetEventRosterResult{}, err
	}
	base := make([]string, 0, len(members))
	for _, m := range members {
		base = append(base, m.ID)
	}

	var seriesInc, seriesExc []string
	if ev.InSeries() {
		if seriesInc, err = deps.OverrideStore.ListMemberIDs(ctx, roster.ScopeSeries, ev.SeriesID, roster.ActionInclude); err != nil {
			return GetEventRosterResult{}, err
		}
		if seriesExc, err = deps.OverrideStore.ListMemberIDs(ctx, roster.ScopeSeries, ev.SeriesID, roster.ActionExclude); err != nil {
			return GetEventRosterResult{}, err
		}
	}
	eventInc, err := deps.OverrideStore.ListMemberIDs(ctx, roster.ScopeEvent, ev.ID, roster.ActionInclude)
	if err != nil {
		return GetEventRosterResult{}, err
	}
	eventExc, err := deps.OverrideStore.ListMemberIDs(ctx, roster.ScopeEvent, ev.ID, roster.ActionExclude)
	if err != nil {
		return GetEventRosterResult{}, err
	}

	return GetEventRosterResult{
		EventID:   ev.ID,
		MemberIDs: roster.EffectiveRoster(base, seriesInc, seriesExc, eventInc, eventExc),
	}, nil
}
