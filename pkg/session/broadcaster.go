// Package session tracks the authenticated user session and fans out
// auth-state changes to interested components, most importantly the
// reconciliation loop, which activates and deactivates on them.
package session

import (
	"sync"

	"github.com/adamspay/pending-transactions/pkg/models"
)

// Broadcaster fans out auth-state changes. A nil session means the user
// signed out. Subscribers receive the change on a buffered channel; a
// subscriber that has fallen behind keeps only the most recent change,
// since each change fully supersedes the previous one.
type Broadcaster struct {
	mu   sync.Mutex
	subs []chan *models.Session
}

// NewBroadcaster creates a new Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe registers a new subscriber and returns its channel.
func (b *Broadcaster) Subscribe() <-chan *models.Session {
	ch := make(chan *models.Session, 1)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

// Notify delivers an auth-state change to every subscriber without blocking.
func (b *Broadcaster) Notify(s *models.Session) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- s:
		default:
			// Drop the stale undelivered change and replace it.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
}
