package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	driver "github.com/adamspay/pending-transactions/pkg/countdown"
	"github.com/adamspay/pending-transactions/pkg/events"
	"github.com/adamspay/pending-transactions/pkg/handlers/admin"
	"github.com/adamspay/pending-transactions/pkg/handlers/auth"
	"github.com/adamspay/pending-transactions/pkg/handlers/countdown"
	"github.com/adamspay/pending-transactions/pkg/handlers/transactions"
	"github.com/adamspay/pending-transactions/pkg/models"
	"github.com/adamspay/pending-transactions/pkg/ratelimit"
	"github.com/adamspay/pending-transactions/pkg/session"
	storage_mocks "github.com/adamspay/pending-transactions/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type emptyDisplay struct{}

func (emptyDisplay) Entries() []driver.Entry { return nil }
func (emptyDisplay) Dismiss(string)          {}

func newTestRouter(t *testing.T, store *storage_mocks.ApiStore) (http.Handler, *session.TokenIssuer) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := session.NewTokenIssuer("test-secret", time.Hour)

	return NewRouter(
		logger,
		ratelimit.New(),
		tokens,
		transactions.NewTransactionsHandler(store, nil, logger),
		auth.NewAuthHandler(events.NoOpPublisher{}, tokens, session.NewBroadcaster(), logger),
		admin.NewAdminHandler(new(storage_mocks.SweepStore), logger),
		countdown.NewCountdownHandler(emptyDisplay{}, logger),
	), tokens
}

func TestRouter_PendingListingRequiresSession(t *testing.T) {
	mockStore := new(storage_mocks.ApiStore)
	mockStore.On("ListPendingTransactions", mock.Anything, "user1").Return([]models.Transaction{}, nil)

	router, tokens := newTestRouter(t, mockStore)

	t.Run("No Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/user1/transactions/pending", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockStore.AssertNotCalled(t, "ListPendingTransactions", mock.Anything, mock.Anything)
	})

	t.Run("Token For Another User", func(t *testing.T) {
		token, _, err := tokens.Issue("user2", "user2@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users/user1/transactions/pending", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Matching Token", func(t *testing.T) {
		token, _, err := tokens.Issue("user1", "user1@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users/user1/transactions/pending", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStore.AssertExpectations(t)
	})
}
