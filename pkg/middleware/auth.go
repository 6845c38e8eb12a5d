package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/adamspay/pending-transactions/pkg/models"
	"github.com/adamspay/pending-transactions/pkg/session"
)

type contextKey string

const sessionKey contextKey = "session"

// RequireSession verifies the bearer token on the request and stores the
// reconstructed session on the request context. Requests without a valid
// token are rejected with 401.
func RequireSession(tokens *session.TokenIssuer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				http.Error(w, "A session token is required", http.StatusUnauthorized)
				return
			}

			sess, err := tokens.Verify(token)
			if err != nil {
				http.Error(w, "Invalid session token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
		}
		return http.HandlerFunc(fn)
	}
}

// SessionFromContext returns the session stored by RequireSession.
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*models.Session)
	return sess, ok
}
