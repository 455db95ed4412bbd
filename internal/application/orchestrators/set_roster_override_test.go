package orchestrators

import (
	"context"
	"testing"

	"rollcall/internal/domain/roster"
)

type mockOverrideStore struct {
	saved         []roster.Override
	deletedAction string
}

func (m *mockOverrideStore) Save(_ context.Context, o roster.Override) error {
	m.saved = append(m.saved, o)
	return nil
}

func (m *mockOverrideStore) DeleteByScopeMemberAction(_ context.Context, _, _, _, action string) error {
	m.deletedAction = action
	return nil
}

func TestSetRosterOverrideClearsOpposite(t *testing.T) {
	store := &mockOverrideStore{}

	o, err := ExecuteSetRosterOverride(context.Background(), SetRosterOverrideInput{
		Scope:    roster.ScopeEvent,
		ScopeID:  "event-1",
		MemberID: "member-1",
		Action:   roster.ActionInclude,
	}, SetRosterOverrideDeps{
		OverrideStore: store,
		GenerateID:    func() string { return "override-1" },
	})
	if err != nil {
		t.Fatalf("ExecuteSetRosterOverride: %v", err)
	}

	if store.deletedAction != roster.ActionExclude {
		t.Errorf("opposite action not cleared: deleted %q", store.deletedAction)
	}
	if len(store.saved) != 1 || store.saved[0].Action != roster.ActionInclude {
		t.Errorf("include override not saved")
	}
	if o.ID != "override-1" {
		t.Errorf("generated ID not assigned")
	}
}

func TestSetRosterOverrideRejectsBadScope(t *testing.T) {
	_, err := ExecuteSetRosterOverride(context.Background(), SetRosterOverrideInput{
		Scope:    "team",
		ScopeID:  "team-1",
		MemberID: "member-1",
		Action:   roster.ActionExclude,
	}, SetRosterOverrideDeps{
		OverrideStore: &mockOverrideStore{},
		GenerateID:    func() string { return "override-2" },
	})
	if err == nil {
		t.Fatal("expected validation error for unknown scope")
	}
}
