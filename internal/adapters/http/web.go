package web

import (
	"net/http"
	"time"

	"rollcall/internal/adapters/email"
	"rollcall/internal/adapters/http/middleware"
	checkinStore "rollcall/internal/adapters/storage/checkin"
	eventStore "rollcall/internal/adapters/storage/event"
	membershipStore "rollcall/internal/adapters/storage/membership"
	outboxStore "rollcall/internal/adapters/storage/outbox"
	recurringStore "rollcall/internal/adapters/storage/recurring"
	rosterStore "rollcall/internal/adapters/storage/roster"
	seasonStore "rollcall/internal/adapters/storage/season"
	teamStore "rollcall/internal/adapters/storage/team"
)

// Stores holds all storage dependencies.
type Stores struct {
	TeamStore       teamStore.Store
	SeasonStore     seasonStore.Store
	EventStore      eventStore.Store
	RecurringStore  recurringStore.Store
	MembershipStore membershipStore.Store
	CheckInStore    checkinStore.Store
	RosterStore     rosterStore.Store
	OutboxStore     outboxStore.Store
}

// Global stores instance (set by NewMux)
var stores *Stores

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores) http.Handler {
	stores = s

	mux := http.NewServeMux()
	registerRoutes(mux)

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.RateLimit(limiter),
		middleware.Timing(),
	)
}

// registerRoutes attaches the JSON API routes.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/teams/{id}/attendance", handleGetTeamAttendance)
	mux.HandleFunc("GET /api/teams/{id}/challenge", handleGetChallengePercent)
	mux.HandleFunc("GET /api/teams/{teamID}/members/{memberID}/hours", handleGetMemberHours)
	mux.HandleFunc("GET /api/events/{id}/roster", handleGetEventRoster)
	mux.HandleFunc("POST /api/recurring-events", handleCreateRecurringEvent)
	mux.HandleFunc("POST /api/recurring-events/{id}/stop", handleStopRecurringEvent)
	mux.HandleFunc("POST /api/check-ins", handleRecordCheckIn)
	mux.HandleFunc("POST /api/roster-overrides", handleSetRosterOverride)
	mux.HandleFunc("POST /api/members/{id}/guardian-digest", handleSendGuardianDigest)
}
