package email

import (
	"context"
	"time"
)

// SendRequest contains the data for one outbound guardian digest.
type SendRequest struct {
	To      []string // guardian addresses
	From    string   // sender address (e.g. "Rollcall <digests@example.org>")
	Subject string
	HTML    string // rendered digest body
	ReplyTo string
}

// SendResult contains the provider's response.
type SendResult struct {
	MessageID string    // provider message ID for tracking
	SentAt    time.Time // when the send was accepted
}

// Sender delivers digests via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
