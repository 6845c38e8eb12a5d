package ratelimit

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type rejectionBody struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter"`
}

// Middleware gates the wrapped handler with the given policy. Rejected
// requests receive a 429 with Retry-After and the standard rate-limit headers.
func (l *Limiter) Middleware(p Policy) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			result := l.Check(ClientIdentity(r), p)

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.UnixMilli(), 10))

			if !result.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfterSeconds))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(rejectionBody{
					Success:    false,
					Error:      "Too many requests. Please try again later.",
					RetryAfter: result.RetryAfterSeconds,
				})
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
