package models

import (
	"time"
)

// TransactionStatus defines the possible states of a transaction.
type TransactionStatus string

const (
	PENDING    TransactionStatus = "pending"
	PROCESSING TransactionStatus = "processing"
	COMPLETED  TransactionStatus = "completed"
	FAILED     TransactionStatus = "failed"
	CANCELLED  TransactionStatus = "cancelled"
)

// Transaction represents the internal domain model for a money-transfer
// transaction. It includes dynamodbav tags for marshalling.
//
// ExpiresAt is deliberately untyped: documents written by older clients carry
// the deadline as an RFC3339 string, newer ones as an epoch-seconds wrapper
// object. The expiry package owns normalizing it; nothing else should read it
// directly.
type Transaction struct {
	Id           string            `dynamodbav:"id" json:"id"`
	UserId       string            `dynamodbav:"user_id" json:"userId"`
	Status       TransactionStatus `dynamodbav:"status" json:"status"`
	FromAmount   float64           `dynamodbav:"from_amount" json:"fromAmount"`
	ToAmount     float64           `dynamodbav:"to_amount" json:"toAmount"`
	FromCurrency string            `dynamodbav:"from_currency" json:"fromCurrency"`
	ToCurrency   string            `dynamodbav:"to_currency" json:"toCurrency"`
	ExpiresAt    any               `dynamodbav:"expires_at" json:"expiresAt"`
	CreatedAt    time.Time         `dynamodbav:"created_at" json:"createdAt"`
	UpdatedAt    time.Time         `dynamodbav:"updated_at" json:"updatedAt"`
}

// Session represents an authenticated user session.
type Session struct {
	UserId    string    `json:"user_id"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// OTPChallenge is a one-time code issued to an email address during sign-in.
// Delivery is handled by the notification service consuming the events queue.
type OTPChallenge struct {
	Id        string    `dynamodbav:"id" json:"id"`
	Email     string    `dynamodbav:"email" json:"email"`
	Code      string    `dynamodbav:"code" json:"-"`
	CreatedAt time.Time `dynamodbav:"created_at" json:"createdAt"`
	ExpiresAt time.Time `dynamodbav:"expires_at" json:"expiresAt"`
}
