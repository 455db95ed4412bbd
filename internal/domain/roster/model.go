package roster

import (
	"errors"
	"sort"
)

// Override scopes and actions. Event-level entries take precedence over
// series-level entries for the same member on the same occurrence.
const (
	ScopeEvent  = "event"
	ScopeSeries = "series"

	ActionInclude = "include"
	ActionExclude = "exclude"
)

// Domain errors
var (
	ErrInvalidScope   = errors.New("scope must be event or series")
	ErrInvalidAction  = errors.New("action must be include or exclude")
	ErrEmptyScopeID   = errors.New("override must reference an event or series")
	ErrEmptyMemberID  = errors.New("override must be associated with a member")
)

// Override explicitly adds or removes one member for one event occurrence or
// one recurring series, layered on top of base team membership.
type Override struct {
	ID       string
	Scope    string // event | series
	ScopeID  string // event ID or series ID
	MemberID string
	Action   string // include | exclude
}

// Validate checks if the Override has valid data.
// PRE: Override struct is populated
// POST: Returns nil if valid, error otherwise
func (o *Override) Validate() error {
	if o.Scope != ScopeEvent && o.Scope != ScopeSeries {
		return ErrInvalidScope
	}
	if o.ScopeID == "" {
		return ErrEmptyScopeID
	}
	if o.MemberID == "" {
		return ErrEmptyMemberID
	}
	if o.Action != ActionInclude && o.Action != ActionExclude {
		return ErrInvalidAction
	}
	return nil
}

// EffectiveRoster resolves the members expected at a single occurrence by
// applying override layers as an ordered sequence of set operations:
// base roster, series include, series exclude, event include, event exclude.
// Applying the event layers last is what makes them win over series-level
// settings for the same member.
// PRE: slices may be nil; duplicates are tolerated
// POST: Returns a sorted, deduplicated member ID list
func EffectiveRoster(base, seriesInclude, seriesExclude, eventInclude, eventExclude []string) []string {
	members := make(map[string]bool, len(base))
	apply := func(ids []string, present bool) {
		for _, id := range ids {
			if present {
				members[id] = true
			} else {
				delete(members, id)
			}
		}
	}

	apply(base, true)
	apply(seriesInclude, true)
	apply(seriesExclude, false)
	apply(eventInclude, true)
	apply(eventExclude, false)

	out := make([]string, 0, len(members))
	for id := range members {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
