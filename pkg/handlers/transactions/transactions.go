package transactions

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/adamspay/pending-transactions/pkg/api"
	"github.com/adamspay/pending-transactions/pkg/expiry"
	"github.com/adamspay/pending-transactions/pkg/mapping"
	"github.com/adamspay/pending-transactions/pkg/storage"
)

// TransactionsHandler holds the dependencies for transaction-related handlers.
type TransactionsHandler struct {
	Store  storage.ApiStore
	Logger *slog.Logger

	// Kick requests an immediate reconciliation run; may be nil.
	Kick func()

	now func() time.Time
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(store storage.ApiStore, kick func(), logger *slog.Logger) *TransactionsHandler {
	return &TransactionsHandler{Store: store, Kick: kick, Logger: logger, now: time.Now}
}

// CreateTransaction handles the logic for initiating a new transfer. The
// store assigns the id and the expiry deadline.
func (h *TransactionsHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var newTx api.NewTransaction
	if err := json.NewDecoder(r.Body).Decode(&newTx); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if newTx.UserId == "" || newTx.FromCurrency == "" || newTx.ToCurrency == "" || newTx.FromAmount <= 0 {
		http.Error(w, "userId, fromCurrency, toCurrency and a positive fromAmount are required", http.StatusBadRequest)
		return
	}

	domainTx := mapping.ToDomainNewTransaction(&newTx)

	createdTx, err := h.Store.CreateTransaction(r.Context(), domainTx)
	if err != nil {
		h.Logger.Error("failed to create transaction", "error", err)
		http.Error(w, fmt.Sprintf("Failed to create transaction: %v", err), http.StatusInternalServerError)
		return
	}

	apiTx := mapping.ToApiTransaction(createdTx)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiTx); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListPendingByUserId returns the user's active pending transactions with
// their countdown state. Expired entries are never returned; seeing one
// triggers an immediate background reconciliation instead.
func (h *TransactionsHandler) ListPendingByUserId(w http.ResponseWriter, r *http.Request, userId string) {
	domainTxs, err := h.Store.ListPendingTransactions(r.Context(), userId)
	if err != nil {
		h.Logger.Error("failed to list pending transactions", "user_id", userId, "error", err)
		http.Error(w, fmt.Sprintf("Failed to retrieve pending transactions: %v", err), http.StatusInternalServerError)
		return
	}

	now := h.now()
	apiTxs := make([]*api.PendingTransaction, 0, len(domainTxs))
	sawExpired := false
	for i := range domainTxs {
		if expiry.Until(domainTxs[i].ExpiresAt, now).Expired {
			sawExpired = true
			continue
		}
		apiTxs = append(apiTxs, mapping.ToApiPendingTransaction(&domainTxs[i], now))
	}

	if sawExpired && h.Kick != nil {
		h.Kick()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiTxs); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// CancelTransactionById handles the logic for cancelling a pending transaction.
func (h *TransactionsHandler) CancelTransactionById(w http.ResponseWriter, r *http.Request, transactionId string) {
	err := h.Store.CancelTransaction(r.Context(), transactionId)
	if err != nil {
		if errors.Is(err, storage.ErrTransactionNotCancellable) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if errors.Is(err, storage.ErrTransactionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to cancel transaction: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
