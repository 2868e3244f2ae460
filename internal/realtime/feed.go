package realtime

import (
	"context"
	"sync"
)

// Feed is the in-process change feed for the orders table. Publishers
// fire a bare "something changed" signal; subscribers re-fetch rather
// than patching incrementally.
type Feed struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

// NewFeed builds an empty feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[chan struct{}]struct{})}
}

// Subscribe registers a listener. The returned cancel func must be
// called to release it. Signals are coalesced: a slow listener sees
// at least one signal for any burst of changes, not one per change.
func (f *Feed) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subs[ch]; ok {
			delete(f.subs, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// OrdersChanged notifies every subscriber without blocking on any of
// them.
func (f *Feed) OrdersChanged(_ context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
