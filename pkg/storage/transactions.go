package storage

import (
	"context"

	"github.com/adamspay/pending-transactions/pkg/models"
)

// PendingReader defines the interface for reading pending transactions.
type PendingReader interface {
	// ListPendingTransactions retrieves all of a user's transactions that are
	// still in the 'pending' status, regardless of deadline.
	ListPendingTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
}

// TransactionDeleter defines the interface for removing transactions.
type TransactionDeleter interface {
	// DeleteTransaction removes a transaction by its ID. Deleting an absent
	// transaction is not an error, so retried deletions stay idempotent.
	DeleteTransaction(ctx context.Context, txID string) error
}

// PendingStore combines the operations the reconciliation loop needs.
type PendingStore interface {
	PendingReader
	TransactionDeleter
}

// TransactionManager defines the interface for creating and managing transactions.
// This is suitable for components like the main API service.
type TransactionManager interface {
	// CreateTransaction creates a new pending transaction with a server-assigned
	// ID and expiry deadline, and returns the created transaction.
	CreateTransaction(ctx context.Context, newTx *models.Transaction) (*models.Transaction, error)

	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// CancelTransaction cancels a transaction if it's still pending.
	CancelTransaction(ctx context.Context, txID string) error
}

// TransactionStore combines the reader, deleter and manager interfaces.
type TransactionStore interface {
	PendingStore
	TransactionManager
}
