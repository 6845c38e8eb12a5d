package handlers

import (
	"log/slog"
	"net/http"

	"github.com/adamspay/pending-transactions/pkg/handlers/admin"
	"github.com/adamspay/pending-transactions/pkg/handlers/auth"
	"github.com/adamspay/pending-transactions/pkg/handlers/countdown"
	"github.com/adamspay/pending-transactions/pkg/handlers/transactions"
	"github.com/adamspay/pending-transactions/pkg/metrics"
	appmiddleware "github.com/adamspay/pending-transactions/pkg/middleware"
	"github.com/adamspay/pending-transactions/pkg/ratelimit"
	"github.com/adamspay/pending-transactions/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the HTTP surface. Each endpoint group is gated by the
// rate-limit policy matching its sensitivity; the pending listing additionally
// requires a session token for the requested user.
func NewRouter(
	logger *slog.Logger,
	limiter *ratelimit.Limiter,
	tokens *session.TokenIssuer,
	txHandler *transactions.TransactionsHandler,
	authHandler *auth.AuthHandler,
	adminHandler *admin.AdminHandler,
	cdHandler *countdown.CountdownHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(appmiddleware.NewStructuredLogger(logger))

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware(ratelimit.Relaxed))

		r.Post("/transactions", txHandler.CreateTransaction)
		r.Delete("/transactions/{transactionId}", func(w http.ResponseWriter, req *http.Request) {
			txHandler.CancelTransactionById(w, req, chi.URLParam(req, "transactionId"))
		})

		r.Get("/countdown", cdHandler.List)
		r.Post("/countdown/{transactionId}/dismiss", func(w http.ResponseWriter, req *http.Request) {
			cdHandler.DismissById(w, req, chi.URLParam(req, "transactionId"))
		})

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.RequireSession(tokens))
			r.Get("/users/{userId}/transactions/pending", func(w http.ResponseWriter, req *http.Request) {
				userId := chi.URLParam(req, "userId")
				if sess, ok := appmiddleware.SessionFromContext(req.Context()); !ok || sess.UserId != userId {
					http.Error(w, "Session does not grant access to this user's transactions", http.StatusForbidden)
					return
				}
				txHandler.ListPendingByUserId(w, req, userId)
			})
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware(ratelimit.Strict))
		r.Post("/auth/otp", authHandler.RequestOTP)
	})

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware(ratelimit.Standard))
		r.Post("/auth/sessions", authHandler.CreateSession)
		r.Delete("/auth/sessions", authHandler.DeleteSession)
	})

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware(ratelimit.Bulk))
		r.Get("/admin/transactions/pending", adminHandler.ListPendingTransactions)
	})

	return r
}
