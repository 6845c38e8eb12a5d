package storage

import "errors"

// ErrTransactionNotFound is returned when a transaction does not exist in the store.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrTransactionNotCancellable is returned when a transaction cannot be cancelled, e.g., because it's already completed or cancelled.
var ErrTransactionNotCancellable = errors.New("transaction not in a cancellable state")
