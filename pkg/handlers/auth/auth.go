package auth

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/adamspay/pending-transactions/pkg/api"
	"github.com/adamspay/pending-transactions/pkg/events"
	"github.com/adamspay/pending-transactions/pkg/models"
	"github.com/adamspay/pending-transactions/pkg/session"
	"github.com/google/uuid"
)

// otpTTL is the validity window of an issued sign-in code.
const otpTTL = 5 * time.Minute

// AuthHandler holds the dependencies for auth-related handlers.
type AuthHandler struct {
	Publisher events.Publisher
	Tokens    *session.TokenIssuer
	Sessions  *session.Broadcaster
	Logger    *slog.Logger

	now func() time.Time
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(publisher events.Publisher, tokens *session.TokenIssuer, sessions *session.Broadcaster, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		Publisher: publisher,
		Tokens:    tokens,
		Sessions:  sessions,
		Logger:    logger,
		now:       time.Now,
	}
}

// RequestOTP issues a one-time sign-in code for an email address. The code is
// handed to the notification service via the events queue; it never appears
// in the HTTP response. Callers mount this behind the strict rate-limit policy.
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req api.OTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		http.Error(w, "A valid email address is required", http.StatusBadRequest)
		return
	}

	code, err := generateCode()
	if err != nil {
		h.Logger.Error("failed to generate OTP code", "error", err)
		http.Error(w, "Failed to issue code", http.StatusInternalServerError)
		return
	}

	now := h.now()
	challenge := models.OTPChallenge{
		Id:        uuid.New().String(),
		Email:     email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(otpTTL),
	}

	event := events.Event{
		Type: events.EventOTPIssued,
		Payload: events.OTPIssuedPayload{
			Email:     challenge.Email,
			Code:      challenge.Code,
			ExpiresAt: challenge.ExpiresAt,
		},
	}
	if err := h.Publisher.Publish(r.Context(), event); err != nil {
		h.Logger.Error("failed to publish OTP event", "email", email, "error", err)
		http.Error(w, "Failed to issue code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(api.OTPResponse{
		ChallengeId: challenge.Id,
		ExpiresAt:   challenge.ExpiresAt,
	}); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// CreateSession mints a session token and announces the auth-state change,
// which activates pending-transaction tracking for the user. Callers mount
// this behind the standard rate-limit policy.
func (h *AuthHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req api.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.UserId == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	token, sess, err := h.Tokens.Issue(req.UserId, req.Email)
	if err != nil {
		h.Logger.Error("failed to issue session token", "user_id", req.UserId, "error", err)
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	h.Sessions.Notify(sess)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(api.SessionResponse{
		Token:     token,
		UserId:    sess.UserId,
		ExpiresAt: sess.ExpiresAt,
	}); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// DeleteSession announces a sign-out, which deactivates pending-transaction
// tracking and clears the published set.
func (h *AuthHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Notify(nil)
	w.WriteHeader(http.StatusNoContent)
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
