package orchestrators

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	emailAdapter "rollcall/internal/adapters/email"
	"rollcall/internal/domain/outbox"
)

// RetryOutboxStore defines the outbox interface needed for replay.
type RetryOutboxStore interface {
	ListRetryable(ctx context.Context, limit int) ([]outbox.Entry, error)
	Save(ctx context.Context, e outbox.Entry) error
}

// RetryOutboxDeps holds dependencies for RetryOutbox.
type RetryOutboxDeps struct {
	OutboxStore RetryOutboxStore
	Sender      emailAdapter.Sender
	Now         func() time.Time
	BatchSize   int // 0 means 20
}

// RetryOutboxResult summarizes one replay sweep.
type RetryOutboxResult struct {
	Attempted int
	Delivered int
	Abandoned int
}

// ExecuteRetryOutbox replays parked digest sends. Each entry gets one
// attempt per sweep; entries that exhaust their cap are abandoned.
// PRE: deps are wired
// POST: Every processed entry has an updated status
func ExecuteRetryOutbox(ctx context.Context, deps RetryOutboxDeps) (RetryOutboxResult, error) {
	limit := deps.BatchSize
	if limit <= 0 {
		limit = 20
	}

	entries, err := deps.OutboxStore.ListRetryable(ctx, limit)
	if err != nil {
		return RetryOutboxResult{}, err
	}

	var result RetryOutboxResult
	for _, entry := range entries {
		if !entry.CanRetry() {
			continue
		}
		result.Attempted++

		var req emailAdapter.SendRequest
		if err := json.Unmarshal([]byte(entry.Payload), &req); err != nil {
			entry.RecordAttempt(deps.Now(), err)
			entry.Status = outbox.StatusFailed // unreplayable payload, don't loop on it
			if sErr := deps.OutboxStore.Save(ctx, entry); sErr != nil {
				return result, sErr
			}
			continue
		}

		_, sendErr := deps.Sender.Send(ctx, req)
		entry.RecordAttempt(deps.Now(), sendErr)
		if sendErr == nil {
			result.Delivered++
		} else if entry.Status == outbox.StatusAbandoned {
			result.Abandoned++
		}
		if err := deps.OutboxStore.Save(ctx, entry); err != nil {
			return result, err
		}
	}

	if result.Attempted > 0 {
		slog.Info("outbox_event", "event", "outbox_swept", "attempted", result.Attempted,
			"delivered", result.Delivered, "abandoned", result.Abandoned)
	}
	return result, nil
}
