// Package metrics exposes prometheus instrumentation for the background
// expiry machinery and the rate limiter.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ReconcileRuns counts completed reconciliation cycles.
	ReconcileRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "adamspay_reconcile_runs_total",
		Help: "Number of completed pending-transaction reconciliation runs.",
	})

	// ReconcileFailures counts reconciliation cycles that failed at the query step.
	ReconcileFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "adamspay_reconcile_failures_total",
		Help: "Number of reconciliation runs that failed to query the store.",
	})

	// ExpiredDeleted counts expired transactions removed from the store.
	ExpiredDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "adamspay_expired_transactions_deleted_total",
		Help: "Number of expired pending transactions deleted.",
	})

	// DeleteFailures counts failed deletions of expired transactions.
	DeleteFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "adamspay_expired_transaction_delete_failures_total",
		Help: "Number of failed expired-transaction deletions.",
	})

	// RateLimitRejections counts requests rejected by the rate limiter, by policy.
	RateLimitRejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "adamspay_ratelimit_rejections_total",
		Help: "Number of requests rejected by the rate limiter.",
	}, []string{"policy"})
)

func init() {
	prometheus.MustRegister(
		ReconcileRuns,
		ReconcileFailures,
		ExpiredDeleted,
		DeleteFailures,
		RateLimitRejections,
	)
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
