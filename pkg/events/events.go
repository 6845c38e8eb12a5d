package events

import (
	"context"
	"time"
)

// EventType identifies the kind of event placed on the notifications queue.
type EventType string

const (
	// EventTransactionExpired is emitted after an expired pending transaction
	// has been deleted from the store.
	EventTransactionExpired EventType = "transaction.expired"

	// EventOTPIssued is emitted when a sign-in code is issued; the notification
	// service consumes it and sends the email.
	EventOTPIssued EventType = "otp.issued"
)

// Event is the envelope placed on the queue.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

// TransactionExpiredPayload describes a transaction removed by expiry cleanup.
type TransactionExpiredPayload struct {
	TransactionID string    `json:"transaction_id"`
	UserID        string    `json:"user_id"`
	ExpiredAt     time.Time `json:"expired_at"`
}

// OTPIssuedPayload describes an issued sign-in code.
type OTPIssuedPayload struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Publisher defines the interface for a component that emits events for
// asynchronous consumers.
type Publisher interface {
	// Publish enqueues an event. Delivery is best-effort from the caller's
	// point of view; failures are logged, not propagated to users.
	Publish(ctx context.Context, event Event) error
}

// NoOpPublisher discards all events. Useful in tests and local development.
type NoOpPublisher struct{}

func (NoOpPublisher) Publish(ctx context.Context, event Event) error { return nil }
