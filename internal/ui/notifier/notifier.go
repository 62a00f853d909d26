// Package notifier fans out playground change pings to live listeners.
package notifier

import (
	"sync"
	"sync/atomic"
)

// Notifier broadcasts change pings to subscribed listeners. A ping
// carries no payload; listeners re-read the session snapshot. Pings
// coalesce: a listener that has not drained its previous ping will see
// one ping for several changes.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]struct{}
	revision  atomic.Uint64
}

// New creates a Notifier.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan struct{}]struct{}),
	}
}

// Subscribe registers a listener. The returned cancel func removes it and
// closes the channel; it is safe to call more than once.
func (n *Notifier) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.listeners, ch)
			n.mu.Unlock()
			close(ch)
		})
	}
}

// Broadcast records a change and pings every listener without blocking.
func (n *Notifier) Broadcast() {
	n.revision.Add(1)

	n.mu.RLock()
	defer n.mu.RUnlock()
	for ch := range n.listeners {
		select {
		case ch <- struct{}{}:
		default:
			// already pending
		}
	}
}

// Revision returns the number of broadcasts so far.
func (n *Notifier) Revision() uint64 {
	return n.revision.Load()
}

// Listeners returns the number of active subscriptions.
func (n *Notifier) Listeners() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
