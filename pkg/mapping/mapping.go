package mapping

import (
	"time"

	"github.com/adamspay/pending-transactions/pkg/api"
	"github.com/adamspay/pending-transactions/pkg/expiry"
	"github.com/adamspay/pending-transactions/pkg/models"
)

// ToApiTransaction converts a domain Transaction model to an API Transaction
// model, normalizing the polymorphic deadline to RFC3339.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	out := &api.Transaction{
		Id:           tx.Id,
		UserId:       tx.UserId,
		Status:       string(tx.Status),
		FromAmount:   tx.FromAmount,
		ToAmount:     tx.ToAmount,
		FromCurrency: tx.FromCurrency,
		ToCurrency:   tx.ToCurrency,
		CreatedAt:    tx.CreatedAt,
		UpdatedAt:    tx.UpdatedAt,
	}
	if at, ok := expiry.ParseDeadline(tx.ExpiresAt); ok {
		out.ExpiresAt = at.Format(time.RFC3339)
	}
	return out
}

// ToApiPendingTransaction attaches countdown state computed at now.
func ToApiPendingTransaction(tx *models.Transaction, now time.Time) *api.PendingTransaction {
	rem := expiry.Until(tx.ExpiresAt, now)
	return &api.PendingTransaction{
		Transaction: *ToApiTransaction(tx),
		Remaining:   rem,
		Urgent:      !rem.Expired && rem.Hours == 0 && rem.Minutes < 5,
	}
}

// ToDomainNewTransaction converts an API NewTransaction model to a domain
// Transaction model. Server-side fields (id, status, deadline) are assigned
// by the store at creation.
func ToDomainNewTransaction(newTx *api.NewTransaction) *models.Transaction {
	return &models.Transaction{
		UserId:       newTx.UserId,
		FromAmount:   newTx.FromAmount,
		ToAmount:     newTx.ToAmount,
		FromCurrency: newTx.FromCurrency,
		ToCurrency:   newTx.ToCurrency,
	}
}
