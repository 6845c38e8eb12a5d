// Package countdown derives per-transaction remaining time from the published
// pending set, once per second in a single batch, for display.
package countdown

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/adamspay/pending-transactions/pkg/expiry"
	"github.com/adamspay/pending-transactions/pkg/models"
)

// urgentThresholdMinutes marks a countdown as urgent when strictly less than
// this many minutes remain.
const urgentThresholdMinutes = 5

// Source provides the currently published active set.
type Source interface {
	Snapshot() []models.Transaction
}

// Entry is one transaction's display state.
type Entry struct {
	Transaction models.Transaction `json:"transaction"`
	Remaining   expiry.Remaining   `json:"remaining"`
	Urgent      bool               `json:"urgent"`
	Dismissed   bool               `json:"dismissed"`
}

// Driver recomputes every active transaction's remaining time on a shared
// one-second tick. Per-transaction timers would drift apart and multiply; one
// batched tick keeps countdowns synchronized and bounded.
//
// When a transaction is first observed past its deadline, the driver fires
// the kick callback exactly once so the reconciliation loop can remove it
// without waiting for the next interval. The signal is edge-triggered: ticks
// after the transition do not re-fire while the deletion is in flight.
type Driver struct {
	source   Source
	kick     func()
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time

	mu        sync.Mutex
	entries   map[string]Entry
	order     []string
	expired   map[string]bool
	dismissed map[string]bool
}

// New creates a Driver over the given source. kick is invoked when any
// transaction transitions into expiry; it may be nil.
func New(source Source, kick func(), logger *slog.Logger) *Driver {
	return &Driver{
		source:    source,
		kick:      kick,
		logger:    logger,
		interval:  time.Second,
		now:       time.Now,
		entries:   make(map[string]Entry),
		expired:   make(map[string]bool),
		dismissed: make(map[string]bool),
	}
}

// Run ticks until ctx is cancelled. The ticker dies with ctx so a closed
// session does not leak a per-second timer.
func (d *Driver) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Tick()
		}
	}
}

// Tick recomputes the full batch once against the current time.
func (d *Driver) Tick() {
	now := d.now()
	txs := d.source.Snapshot()

	d.mu.Lock()
	seen := make(map[string]bool, len(txs))
	entries := make(map[string]Entry, len(txs))
	order := make([]string, 0, len(txs))
	fire := false

	for _, tx := range txs {
		rem := expiry.Until(tx.ExpiresAt, now)
		seen[tx.Id] = true
		order = append(order, tx.Id)

		if rem.Expired && !d.expired[tx.Id] {
			d.expired[tx.Id] = true
			fire = true
		}

		entries[tx.Id] = Entry{
			Transaction: tx,
			Remaining:   rem,
			Urgent:      !rem.Expired && rem.Hours == 0 && rem.Minutes < urgentThresholdMinutes,
			Dismissed:   d.dismissed[tx.Id],
		}
	}

	// Forget state for transactions that left the published set, so a later
	// reappearance starts clean (dismissal is display-only and not persisted).
	for id := range d.expired {
		if !seen[id] {
			delete(d.expired, id)
		}
	}
	for id := range d.dismissed {
		if !seen[id] {
			delete(d.dismissed, id)
		}
	}

	d.entries = entries
	d.order = order
	d.mu.Unlock()

	if fire && d.kick != nil {
		d.logger.Info("countdown observed expiry, requesting reconciliation")
		d.kick()
	}
}

// Dismiss hides a transaction from display. It does not touch store state.
func (d *Driver) Dismiss(txID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dismissed[txID] = true
	if e, ok := d.entries[txID]; ok {
		e.Dismissed = true
		d.entries[txID] = e
	}
}

// Entries returns the displayable countdowns from the last tick: dismissed
// and already-expired transactions are suppressed.
func (d *Driver) Entries() []Entry {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Entry, 0, len(d.order))
	for _, id := range d.order {
		e := d.entries[id]
		if e.Dismissed || e.Remaining.Expired {
			continue
		}
		out = append(out, e)
	}
	return out
}
