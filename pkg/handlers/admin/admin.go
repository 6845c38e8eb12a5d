package admin

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/adamspay/pending-transactions/pkg/api"
	"github.com/adamspay/pending-transactions/pkg/mapping"
	"github.com/adamspay/pending-transactions/pkg/storage"
)

// AdminHandler holds the dependencies for the back-office handlers.
type AdminHandler struct {
	Store  storage.SweepStore
	Logger *slog.Logger

	now func() time.Time
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(store storage.SweepStore, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{Store: store, Logger: logger, now: time.Now}
}

// ListPendingTransactions returns every pending transaction across all users
// with its expiry classification. Unlike the user-facing listing, expired
// entries are included here so operators can see what the sweep will remove.
// Callers mount this behind the bulk rate-limit policy.
func (h *AdminHandler) ListPendingTransactions(w http.ResponseWriter, r *http.Request) {
	domainTxs, err := h.Store.ListAllPendingTransactions(r.Context())
	if err != nil {
		h.Logger.Error("failed to list all pending transactions", "error", err)
		http.Error(w, fmt.Sprintf("Failed to retrieve pending transactions: %v", err), http.StatusInternalServerError)
		return
	}

	now := h.now()
	apiTxs := make([]*api.PendingTransaction, len(domainTxs))
	for i := range domainTxs {
		apiTxs[i] = mapping.ToApiPendingTransaction(&domainTxs[i], now)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiTxs); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
