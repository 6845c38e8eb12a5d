// Package api holds the request and response types of the HTTP surface.
// These are hand-maintained view models, kept separate from the domain
// models so storage encodings never leak to clients.
package api

import (
	"time"

	"github.com/adamspay/pending-transactions/pkg/expiry"
)

// NewTransaction is the request body for creating a transfer.
type NewTransaction struct {
	UserId       string  `json:"userId"`
	FromAmount   float64 `json:"fromAmount"`
	ToAmount     float64 `json:"toAmount"`
	FromCurrency string  `json:"fromCurrency"`
	ToCurrency   string  `json:"toCurrency"`
}

// Transaction is the API representation of a transaction. ExpiresAt is always
// RFC3339 here regardless of how the store encodes it.
type Transaction struct {
	Id           string    `json:"id"`
	UserId       string    `json:"userId"`
	Status       string    `json:"status"`
	FromAmount   float64   `json:"fromAmount"`
	ToAmount     float64   `json:"toAmount"`
	FromCurrency string    `json:"fromCurrency"`
	ToCurrency   string    `json:"toCurrency"`
	ExpiresAt    string    `json:"expiresAt,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PendingTransaction is a transaction with its countdown state attached.
type PendingTransaction struct {
	Transaction
	Remaining expiry.Remaining `json:"remaining"`
	Urgent    bool             `json:"urgent"`
}

// OTPRequest is the request body for issuing a sign-in code.
type OTPRequest struct {
	Email string `json:"email"`
}

// OTPResponse acknowledges an issued sign-in code. The code itself travels
// only over the notifications queue, never in the HTTP response.
type OTPResponse struct {
	ChallengeId string    `json:"challengeId"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// SessionRequest is the request body for creating a session.
type SessionRequest struct {
	UserId string `json:"userId"`
	Email  string `json:"email"`
}

// SessionResponse carries the minted session token.
type SessionResponse struct {
	Token     string    `json:"token"`
	UserId    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
