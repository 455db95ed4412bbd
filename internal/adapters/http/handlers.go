package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"rollcall/internal/application/orchestrators"
	"rollcall/internal/application/projections"
	"rollcall/internal/domain/recurrence"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// respondJSON writes v as a JSON response.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode_response", "error", err.Error())
	}
}

// parseDate reads a YYYY-MM-DD query or body value.
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// handleGetTeamAttendance serves a team's per-member hours roll-up for its
// reporting window.
func handleGetTeamAttendance(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("id")

	result, err := projections.QueryGetTeamAttendance(r.Context(), projections.GetTeamAttendanceQuery{
		TeamID: teamID,
	}, projections.GetTeamAttendanceDeps{
		TeamStore:    stores.TeamStore,
		SeasonStore:  stores.SeasonStore,
		MemberStore:  stores.TeamStore,
		CheckInStore: stores.CheckInStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleGetChallengePercent serves a team's challenge attendance percentage.
func handleGetChallengePercent(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("id")

	start, err := parseDate(r.URL.Query().Get("start"))
	if err != nil {
		http.Error(w, "start must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	end, err := parseDate(r.URL.Query().Get("end"))
	if err != nil {
		http.Error(w, "end must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	result, err := projections.QueryGetChallengePercent(r.Context(), projections.GetChallengePercentQuery{
		TeamID:      teamID,
		WindowStart: start,
		WindowEnd:   end,
	}, projections.GetChallengePercentDeps{
		CheckInStore: stores.CheckInStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleGetMemberHours serves one member's logged-vs-required hours on a team.
func handleGetMemberHours(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetMemberHours(r.Context(), projections.GetMemberHoursQuery{
		TeamID:   r.PathValue("teamID"),
		MemberID: r.PathValue("memberID"),
	}, projections.GetMemberHoursDeps{
		TeamStore:       stores.TeamStore,
		SeasonStore:     stores.SeasonStore,
		EventStore:      stores.EventStore,
		MembershipStore: stores.MembershipStore,
		CheckInStore:    stores.CheckInStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleGetEventRoster serves the resolved roster for one occurrence.
func handleGetEventRoster(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetEventRoster(r.Context(), projections.GetEventRosterQuery{
		EventID: r.PathValue("id"),
	}, projections.GetEventRosterDeps{
		EventStore:    stores.EventStore,
		MemberStore:   stores.TeamStore,
		OverrideStore: stores.RosterStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleCreateRecurringEvent expands and persists a recurrence rule.
func handleCreateRecurringEvent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TeamID     string `json:"team_id"`
		Title      string `json:"title"`
		StartDate  string `json:"start_date"` // YYYY-MM-DD
		EndDate    string `json:"end_date"`
		Frequency  string `json:"frequency"`
		DaysOfWeek []int  `json:"days_of_week"`
		StartTime  string `json:"start_time"`
		EndTime    string `json:"end_time"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	startDate, err := parseDate(body.StartDate)
	if err != nil {
		http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	endDate, err := parseDate(body.EndDate)
	if err != nil {
		http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteCreateRecurringEvent(r.Context(), orchestrators.CreateRecurringEventInput{
		TeamID:     body.TeamID,
		Title:      body.Title,
		StartDate:  startDate,
		EndDate:    endDate,
		Frequency:  body.Frequency,
		DaysOfWeek: body.DaysOfWeek,
		StartTime:  body.StartTime,
		EndTime:    body.EndTime,
	}, orchestrators.CreateRecurringEventDeps{
		SeriesStore: stores.RecurringStore,
		GenerateID:  generateID,
	})
	if err != nil {
		if isRuleError(err) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"series_id":   result.Series.ID,
		"occurrences": len(result.Events),
	})
}

// isRuleError reports whether the error is a recurrence validation failure
// the client can fix.
func isRuleError(err error) bool {
	for _, sentinel := range []error{
		recurrence.ErrEndBeforeStart,
		recurrence.ErrInvalidFrequency,
		recurrence.ErrMissingDays,
		recurrence.ErrInvalidDay,
		recurrence.ErrNoOccurrences,
		recurrence.ErrTooManyOccurrences,
		recurrence.ErrEmptyTeamID,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// handleStopRecurringEvent ends a series as of a date, preserving history.
func handleStopRecurringEvent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		From string `json:"from"` // YYYY-MM-DD
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	from, err := parseDate(body.From)
	if err != nil {
		http.Error(w, "from must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteStopRecurringEvent(r.Context(), orchestrators.StopRecurringEventInput{
		SeriesID: r.PathValue("id"),
		From:     from,
	}, orchestrators.StopRecurringEventDeps{EventStore: stores.EventStore})
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{
		"detached": result.Detached,
		"deleted":  result.Deleted,
	})
}

// handleRecordCheckIn records one member's status for one occurrence.
func handleRecordCheckIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MemberID    string   `json:"member_id"`
		EventID     string   `json:"event_id"`
		Status      string   `json:"status"`
		HoursLogged *float64 `json:"hours_logged"`
		Approved    bool     `json:"approved"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := orchestrators.ExecuteRecordCheckIn(r.Context(), orchestrators.RecordCheckInInput{
		MemberID:    body.MemberID,
		EventID:     body.EventID,
		Status:      body.Status,
		HoursLogged: body.HoursLogged,
		Approved:    body.Approved,
	}, orchestrators.RecordCheckInDeps{
		EventStore:   stores.EventStore,
		CheckInStore: stores.CheckInStore,
		GenerateID:   generateID,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"id":           c.ID,
		"hours_logged": c.HoursLogged,
	})
}

// handleSetRosterOverride records an include/exclude roster override.
func handleSetRosterOverride(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Scope    string `json:"scope"`
		ScopeID  string `json:"scope_id"`
		MemberID string `json:"member_id"`
		Action   string `json:"action"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	o, err := orchestrators.ExecuteSetRosterOverride(r.Context(), orchestrators.SetRosterOverrideInput{
		Scope:    body.Scope,
		ScopeID:  body.ScopeID,
		MemberID: body.MemberID,
		Action:   body.Action,
	}, orchestrators.SetRosterOverrideDeps{
		OverrideStore: stores.RosterStore,
		GenerateID:    generateID,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": o.ID})
}

// handleSendGuardianDigest triggers a guardian digest for a member over a window.
func handleSendGuardianDigest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		WindowStart string `json:"window_start"` // YYYY-MM-DD
		WindowEnd   string `json:"window_end"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	start, err := parseDate(body.WindowStart)
	if err != nil {
		http.Error(w, "window_start must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	end, err := parseDate(body.WindowEnd)
	if err != nil {
		http.Error(w, "window_end must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	err = orchestrators.ExecuteSendGuardianDigest(r.Context(), orchestrators.SendGuardianDigestInput{
		MemberID:    r.PathValue("id"),
		WindowStart: start,
		WindowEnd:   end,
	}, orchestrators.SendGuardianDigestDeps{
		MemberStore:  stores.TeamStore,
		CheckInStore: stores.CheckInStore,
		Sender:       emailSender,
		OutboxStore:  stores.OutboxStore,
		GenerateID:   generateID,
		Now:          timeNow,
		FromAddress:  emailFromAddress,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}
