package web

import (
	"sync"

	domnotice "example.com/storefront/internal/domain/notice"
)

// Notices queues notices until the next page render picks them up.
type Notices struct {
	mu      sync.Mutex
	pending []domnotice.Notice
}

func NewNotices() *Notices {
	return &Notices{}
}

func (n *Notices) Notify(notice domnotice.Notice) {
	n.mu.Lock()
	n.pending = append(n.pending, notice)
	n.mu.Unlock()
}

// Drain returns the queued notices and empties the queue.
func (n *Notices) Drain() []domnotice.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}
