// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config aggregates application configuration values.
type Config struct {
	HTTPPort string

	// ExpiryWindow is the deadline offset for new pending transactions. The
	// persisted admin-settings unit is minutes; one admin surface labels the
	// field "Transaction Expiry Hours", which is a label bug, not an
	// hours-based value.
	ExpiryWindow time.Duration

	// ReconcileInterval is the background polling cadence for the
	// reconciliation loop.
	ReconcileInterval time.Duration

	TransactionsTableName string
	EventsQueueURL        string

	JWTSigningSecret string
	SessionTTL       time.Duration
}

const (
	defaultExpiryWindowMinutes     = 30
	defaultReconcileIntervalSecond = 30
	defaultSessionTTLHours         = 24
)

// Load reads configuration from the environment, applying defaults for the
// optional values and failing on the required ones.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:              envOr("HTTP_PORT", "8080"),
		TransactionsTableName: os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
		EventsQueueURL:        os.Getenv("SQS_EVENTS_QUEUE_URL"),
		JWTSigningSecret:      os.Getenv("JWT_SIGNING_SECRET"),
	}

	if cfg.TransactionsTableName == "" {
		return nil, fmt.Errorf("DYNAMODB_TRANSACTIONS_TABLE_NAME environment variable is not set")
	}
	if cfg.JWTSigningSecret == "" {
		return nil, fmt.Errorf("JWT_SIGNING_SECRET environment variable is not set")
	}

	expiryMinutes, err := envInt("EXPIRY_WINDOW_MINUTES", defaultExpiryWindowMinutes)
	if err != nil {
		return nil, err
	}
	cfg.ExpiryWindow = time.Duration(expiryMinutes) * time.Minute

	intervalSeconds, err := envInt("RECONCILE_INTERVAL_SECONDS", defaultReconcileIntervalSecond)
	if err != nil {
		return nil, err
	}
	cfg.ReconcileInterval = time.Duration(intervalSeconds) * time.Second

	sessionHours, err := envInt("SESSION_TTL_HOURS", defaultSessionTTLHours)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = time.Duration(sessionHours) * time.Hour

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q", key, raw)
	}
	if v <= 0 {
		return 0, fmt.Errorf("value for %s must be positive, got %d", key, v)
	}
	return v, nil
}
