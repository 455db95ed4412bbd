package orchestrators

import (
	"context"
	"log/slog"

	"rollcall/internal/domain/roster"
)

// OverrideStore defines the interface for roster override persistence.
type OverrideStore interface {
	Save(ctx context.Context, o roster.Override) error
	// DeleteByScopeMemberAction removes the matching override row if present.
	DeleteByScopeMemberAction(ctx context.Context, scope, scopeID, memberID, action string) error
}

// SetRosterOverrideInput carries input for the override orchestrator.
type SetRosterOverrideInput struct {
	Scope    string // event | series
	ScopeID  string
	MemberID string
	Action   string // include | exclude
}

// SetRosterOverrideDeps holds dependencies for SetRosterOverride.
type SetRosterOverrideDeps struct {
	OverrideStore OverrideStore
	GenerateID    func() string
}

// ExecuteSetRosterOverride records an include/exclude override. The
// conflicting opposite entry for the same (scope, member) is cleared first,
// so a member is never simultaneously included and excluded at one scope.
// PRE: input identifies a scope, target and member
// POST: Exactly one override for the (scope, scopeID, member) remains
func ExecuteSetRosterOverride(ctx context.Context, input SetRosterOverrideInput, deps SetRosterOverrideDeps) (roster.Override, error) {
	o := roster.Override{
		ID:       deps.GenerateID(),
		Scope:    input.Scope,
		ScopeID:  input.ScopeID,
		MemberID: input.MemberID,
		Action:   input.Action,
	}
	if err := o.Validate(); err != nil {
		return roster.Override{}, err
	}

	opposite := roster.ActionExclude
	if o.Action == roster.ActionExclude {
		opposite = roster.ActionInclude
	}
	if err := deps.OverrideStore.DeleteByScopeMemberAction(ctx, o.Scope, o.ScopeID, o.MemberID, opposite); err != nil {
		return roster.Override{}, err
	}
	if err := deps.OverrideStore.Save(ctx, o); err != nil {
		return roster.Override{}, err
	}

	slog.Info("roster_event", "event", "override_set", "scope", o.Scope,
		"scope_id", o.ScopeID, "member_id", o.MemberID, "action", o.Action)
	return o, nil
}
