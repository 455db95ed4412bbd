package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "modernc.org/sqlite"

	emailPkg "rollcall/internal/adapters/email"
	web "rollcall/internal/adapters/http"
	"rollcall/internal/adapters/storage"
	checkinStore "rollcall/internal/adapters/storage/checkin"
	eventStore "rollcall/internal/adapters/storage/event"
	membershipStore "rollcall/internal/adapters/storage/membership"
	outboxStorePkg "rollcall/internal/adapters/storage/outbox"
	recurringStore "rollcall/internal/adapters/storage/recurring"
	rosterStore "rollcall/internal/adapters/storage/roster"
	seasonStore "rollcall/internal/adapters/storage/season"
	teamStore "rollcall/internal/adapters/storage/team"
	"rollcall/internal/application/orchestrators"
	"rollcall/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg := config.Load()

	// WAL mode, foreign keys, and busy timeout via DSN pragmas
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Wrap DB with slow-query instrumentation
	timedDB := storage.NewTimedDB(db)

	stores := &web.Stores{
		TeamStore:       teamStore.NewSQLiteStore(timedDB),
		SeasonStore:     seasonStore.NewSQLiteStore(timedDB),
		EventStore:      eventStore.NewSQLiteStore(timedDB),
		RecurringStore:  recurringStore.NewSQLiteStore(timedDB),
		MembershipStore: membershipStore.NewSQLiteStore(timedDB),
		CheckInStore:    checkinStore.NewSQLiteStore(timedDB),
		RosterStore:     rosterStore.NewSQLiteStore(timedDB),
		OutboxStore:     outboxStorePkg.NewSQLiteStore(timedDB),
	}

	// Configure email sender
	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.IsProduction() {
			log.Println("WARNING: ROLLCALL_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set ROLLCALL_RESEND_KEY for real delivery)")
		}
	}
	web.SetEmailSender(sender, cfg.EmailFrom)

	// Background sweep of parked digest sends
	outboxStopCh := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		deps := orchestrators.RetryOutboxDeps{
			OutboxStore: stores.OutboxStore,
			Sender:      sender,
			Now:         time.Now,
		}
		for {
			select {
			case <-outboxStopCh:
				return
			case <-ticker.C:
				if _, err := orchestrators.ExecuteRetryOutbox(context.Background(), deps); err != nil {
					log.Printf("outbox sweep failed: %v", err)
				}
			}
		}
	}()
	defer close(outboxStopCh)

	mux := web.NewMux(stores)

	log.Printf("Rollcall %s starting on %s (env=%s)", version, cfg.HTTPAddr, cfg.Environment)
	if err := http.ListenAndServe(cfg.HTTPAddr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
