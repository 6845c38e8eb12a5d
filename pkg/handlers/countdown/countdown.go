package countdown

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	driver "github.com/adamspay/pending-transactions/pkg/countdown"
)

// Display is the surface of the countdown driver the handlers use.
type Display interface {
	Entries() []driver.Entry
	Dismiss(txID string)
}

// CountdownHandler holds the dependencies for countdown display handlers.
type CountdownHandler struct {
	Driver Display
	Logger *slog.Logger
}

// NewCountdownHandler creates a new CountdownHandler.
func NewCountdownHandler(d Display, logger *slog.Logger) *CountdownHandler {
	return &CountdownHandler{Driver: d, Logger: logger}
}

// List returns the displayable countdown entries from the last tick.
func (h *CountdownHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.Driver.Entries()); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// DismissById hides a transaction's countdown from display. The flag is not
// persisted; it resets when the set reloads.
func (h *CountdownHandler) DismissById(w http.ResponseWriter, r *http.Request, transactionId string) {
	h.Driver.Dismiss(transactionId)
	w.WriteHeader(http.StatusNoContent)
}
