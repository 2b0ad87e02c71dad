package main

import (
	"sync"

	"github.com/multiwatch/multiwatch-go/cmd/multiwatch-web/api"
)

// hub fans views out to the open event streams. Every subscriber holds at
// most one pending view; a slow client skips frames instead of blocking the
// engine.
type hub struct {
	mu   sync.Mutex
	subs map[chan api.View]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[chan api.View]struct{})}
}

func (h *hub) subscribe() chan api.View {
	ch := make(chan api.View, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *hub) unsubscribe(ch chan api.View) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *hub) publish(v api.View) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		select {
		case ch <- v:
			continue
		default:
		}
		// Replace the stale view.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}
