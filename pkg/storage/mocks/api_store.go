// Package mocks provides hand-maintained testify mocks for the storage interfaces.
package mocks

import (
	"context"

	"github.com/adamspay/pending-transactions/pkg/models"
	"github.com/stretchr/testify/mock"
)

// ApiStore is a mock implementation of the storage.ApiStore interface.
type ApiStore struct {
	mock.Mock
}

func (_m *ApiStore) ListPendingTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	args := _m.Called(ctx, userID)
	var txs []models.Transaction
	if args.Get(0) != nil {
		txs = args.Get(0).([]models.Transaction)
	}
	return txs, args.Error(1)
}

func (_m *ApiStore) DeleteTransaction(ctx context.Context, txID string) error {
	args := _m.Called(ctx, txID)
	return args.Error(0)
}

func (_m *ApiStore) CreateTransaction(ctx context.Context, newTx *models.Transaction) (*models.Transaction, error) {
	args := _m.Called(ctx, newTx)
	var tx *models.Transaction
	if args.Get(0) != nil {
		tx = args.Get(0).(*models.Transaction)
	}
	return tx, args.Error(1)
}

func (_m *ApiStore) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	args := _m.Called(ctx, txID)
	var tx *models.Transaction
	if args.Get(0) != nil {
		tx = args.Get(0).(*models.Transaction)
	}
	return tx, args.Error(1)
}

func (_m *ApiStore) CancelTransaction(ctx context.Context, txID string) error {
	args := _m.Called(ctx, txID)
	return args.Error(0)
}

// SweepStore is a mock implementation of the storage.SweepStore interface.
type SweepStore struct {
	mock.Mock
}

func (_m *SweepStore) ListAllPendingTransactions(ctx context.Context) ([]models.Transaction, error) {
	args := _m.Called(ctx)
	var txs []models.Transaction
	if args.Get(0) != nil {
		txs = args.Get(0).([]models.Transaction)
	}
	return txs, args.Error(1)
}

func (_m *SweepStore) DeleteTransaction(ctx context.Context, txID string) error {
	args := _m.Called(ctx, txID)
	return args.Error(0)
}
