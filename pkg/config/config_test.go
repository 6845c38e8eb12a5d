package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DYNAMODB_TRANSACTIONS_TABLE_NAME", "transactions")
	t.Setenv("JWT_SIGNING_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.ExpiryWindow)
	assert.Equal(t, 30*time.Second, cfg.ReconcileInterval)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("EXPIRY_WINDOW_MINUTES", "45")
	t.Setenv("RECONCILE_INTERVAL_SECONDS", "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, cfg.ExpiryWindow)
	assert.Equal(t, 10*time.Second, cfg.ReconcileInterval)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DYNAMODB_TRANSACTIONS_TABLE_NAME", "")
	t.Setenv("JWT_SIGNING_SECRET", "test-secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidNumbers(t *testing.T) {
	setRequired(t)
	t.Setenv("EXPIRY_WINDOW_MINUTES", "soon")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("EXPIRY_WINDOW_MINUTES", "-5")
	_, err = Load()
	assert.Error(t, err)
}
