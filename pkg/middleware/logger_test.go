package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveLogged(t *testing.T, status int) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := middleware.RequestID(NewStructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})))

	req := httptest.NewRequest(http.MethodGet, "/users/user1/transactions/pending", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestStructuredLogger_LogsRequestAndResponse(t *testing.T) {
	line := serveLogged(t, http.StatusOK)

	assert.Equal(t, "request completed", line["msg"])
	assert.NotEmpty(t, line["request_id"])

	request := line["request"].(map[string]any)
	assert.Equal(t, http.MethodGet, request["method"])
	assert.Equal(t, "/users/user1/transactions/pending", request["path"])

	response := line["response"].(map[string]any)
	assert.Equal(t, float64(http.StatusOK), response["status"])
}

func TestStructuredLogger_Severities(t *testing.T) {
	assert.Equal(t, "WARN", serveLogged(t, http.StatusTooManyRequests)["level"])
	assert.Equal(t, "ERROR", serveLogged(t, http.StatusInternalServerError)["level"])
}
