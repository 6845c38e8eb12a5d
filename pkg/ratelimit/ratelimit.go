// Package ratelimit enforces a fixed-window request cap per client identity.
//
// State is process-local and in-memory: with multiple instances each process
// counts independently. That is a documented property of this limiter, not
// something it tries to hide.
package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/adamspay/pending-transactions/pkg/metrics"
)

// Policy names a fixed-window cap.
type Policy struct {
	Name   string
	Limit  int
	Window time.Duration
}

// Preset policies for the endpoint classes that need protection.
var (
	// Strict guards OTP issuance and password-reset-class endpoints.
	Strict = Policy{Name: "strict", Limit: 5, Window: time.Minute}
	// Standard guards auth endpoints.
	Standard = Policy{Name: "standard", Limit: 10, Window: time.Minute}
	// Relaxed covers general API traffic.
	Relaxed = Policy{Name: "relaxed", Limit: 30, Window: time.Minute}
	// Bulk covers bulk admin operations.
	Bulk = Policy{Name: "bulk", Limit: 100, Window: time.Minute}
)

// Result is the outcome of a single check.
type Result struct {
	Allowed           bool
	Remaining         int
	ResetAt           time.Time
	RetryAfterSeconds int
}

type entry struct {
	count   int
	resetAt time.Time
}

// purgeInterval bounds how long elapsed windows linger in memory. Purging is
// purely a memory concern: an elapsed entry behaves exactly like an absent one.
const purgeInterval = 5 * time.Minute

// Limiter owns the counter table. Construct one per process and share it
// across handlers; tests construct isolated instances.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// New creates an empty Limiter.
func New() *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Check counts one request for the identity under the given policy. Each call
// is a single read-modify-write under the lock, so concurrent checks cannot
// corrupt an entry's count.
func (l *Limiter) Check(identity string, p Policy) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[identity]
	if !ok || !e.resetAt.After(now) {
		// No live window for this identity: start a fresh one.
		e = &entry{count: 1, resetAt: now.Add(p.Window)}
		l.entries[identity] = e
		return Result{Allowed: true, Remaining: p.Limit - 1, ResetAt: e.resetAt}
	}

	if e.count >= p.Limit {
		metrics.RateLimitRejections.WithLabelValues(p.Name).Inc()
		return Result{
			Allowed:           false,
			Remaining:         0,
			ResetAt:           e.resetAt,
			RetryAfterSeconds: int(math.Ceil(e.resetAt.Sub(now).Seconds())),
		}
	}

	e.count++
	return Result{Allowed: true, Remaining: p.Limit - e.count, ResetAt: e.resetAt}
}

// Run purges elapsed windows until ctx is cancelled.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.purge(l.now())
		}
	}
}

func (l *Limiter) purge(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for identity, e := range l.entries {
		if !e.resetAt.After(now) {
			delete(l.entries, identity)
		}
	}
}
