package storage

import (
	"context"

	"github.com/adamspay/pending-transactions/pkg/models"
)

// ApiStore defines the complete set of non-privileged operations needed by the API.
// It composes other interfaces to provide a clear boundary for the API's data access.
type ApiStore interface {
	TransactionStore
}

// SweepStore defines the privileged operations needed by the scheduled expiry
// sweep, which classifies pending transactions across all users.
type SweepStore interface {
	TransactionDeleter

	// ListAllPendingTransactions retrieves every transaction in the 'pending'
	// status across all users.
	ListAllPendingTransactions(ctx context.Context) ([]models.Transaction, error)
}
