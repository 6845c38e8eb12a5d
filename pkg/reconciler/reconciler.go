// Package reconciler keeps the published set of pending transactions
// consistent with the store and the expiry invariant: a pending transaction
// whose deadline has passed must never be shown as active, and is removed
// from the store best-effort.
package reconciler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/adamspay/pending-transactions/pkg/events"
	"github.com/adamspay/pending-transactions/pkg/expiry"
	"github.com/adamspay/pending-transactions/pkg/metrics"
	"github.com/adamspay/pending-transactions/pkg/models"
	"github.com/adamspay/pending-transactions/pkg/storage"
)

// DefaultInterval matches the production polling cadence.
const DefaultInterval = 30 * time.Second

// Reconciler runs the query, classify, delete, publish cycle for the current
// user's pending transactions.
type Reconciler struct {
	store     storage.PendingStore
	publisher events.Publisher
	logger    *slog.Logger
	interval  time.Duration
	now       func() time.Time

	mu     sync.RWMutex
	active []models.Transaction

	kick chan struct{}
}

// New creates a Reconciler polling at the given interval. A zero interval
// falls back to DefaultInterval.
func New(store storage.PendingStore, publisher events.Publisher, logger *slog.Logger, interval time.Duration) *Reconciler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if publisher == nil {
		publisher = events.NoOpPublisher{}
	}
	return &Reconciler{
		store:     store,
		publisher: publisher,
		logger:    logger,
		interval:  interval,
		now:       time.Now,
		kick:      make(chan struct{}, 1),
	}
}

// Kick requests an immediate reconciliation run without waiting for the next
// interval tick. It never blocks; a kick while one is already queued is
// coalesced with it.
func (r *Reconciler) Kick() {
	select {
	case r.kick <- struct{}{}:
	default:
	}
}

// Snapshot returns the currently published active set. The returned slice is
// a copy; callers may not observe a partially updated set because publication
// is a full replace.
func (r *Reconciler) Snapshot() []models.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Transaction, len(r.active))
	copy(out, r.active)
	return out
}

// Run drives the loop until ctx is cancelled. The changes channel carries
// auth-state transitions: a session activates polling for that user, nil
// deactivates it and clears the published set. Both timers die with ctx, so a
// torn-down session never leaks a ticking loop.
func (r *Reconciler) Run(ctx context.Context, changes <-chan *models.Session) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	var current *models.Session
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-changes:
			current = s
			if s == nil {
				r.publish(nil)
				continue
			}
			r.Reconcile(ctx, s.UserId)
		case <-ticker.C:
			if current != nil {
				r.Reconcile(ctx, current.UserId)
			}
		case <-r.kick:
			if current != nil {
				r.Reconcile(ctx, current.UserId)
			}
		}
	}
}

// Reconcile executes one run: query the user's pending transactions, classify
// them against the current time, delete the expired ones best-effort, and
// publish the active set as a full replacement.
//
// A failed query leaves the previously published set untouched; the loop
// retries on its next trigger. Overlapping runs are safe because each run
// re-derives truth from the store and publication is last-writer-wins.
func (r *Reconciler) Reconcile(ctx context.Context, userID string) {
	txs, err := r.store.ListPendingTransactions(ctx, userID)
	if err != nil {
		metrics.ReconcileFailures.Inc()
		r.logger.Error("pending transaction query failed, keeping previous set", "user_id", userID, "error", err)
		return
	}

	now := r.now()
	var active, expired []models.Transaction
	for _, tx := range txs {
		if expiry.Until(tx.ExpiresAt, now).Expired {
			expired = append(expired, tx)
		} else {
			active = append(active, tx)
		}
	}

	r.deleteExpired(ctx, expired, now)
	r.publish(active)
	metrics.ReconcileRuns.Inc()

	if len(expired) > 0 {
		r.logger.Info("reconciliation removed expired transactions",
			"user_id", userID, "expired", len(expired), "active", len(active))
	}
}

// deleteExpired fans out one delete per expired transaction and waits for all
// of them. Deletions are independent; one failure neither cancels its
// siblings nor blocks publication. A transaction that fails to delete is
// simply re-detected as expired on the next run.
func (r *Reconciler) deleteExpired(ctx context.Context, expired []models.Transaction, now time.Time) {
	if len(expired) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, tx := range expired {
		wg.Add(1)
		go func(tx models.Transaction) {
			defer wg.Done()
			if err := r.store.DeleteTransaction(ctx, tx.Id); err != nil {
				metrics.DeleteFailures.Inc()
				r.logger.Error("failed to delete expired transaction", "transaction_id", tx.Id, "error", err)
				return
			}
			metrics.ExpiredDeleted.Inc()
			event := events.Event{
				Type: events.EventTransactionExpired,
				Payload: events.TransactionExpiredPayload{
					TransactionID: tx.Id,
					UserID:        tx.UserId,
					ExpiredAt:     now,
				},
			}
			if err := r.publisher.Publish(ctx, event); err != nil {
				r.logger.Error("failed to publish expiry event", "transaction_id", tx.Id, "error", err)
			}
		}(tx)
	}
	wg.Wait()
}

func (r *Reconciler) publish(active []models.Transaction) {
	r.mu.Lock()
	r.active = active
	r.mu.Unlock()
}
