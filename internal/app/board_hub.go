package app

import (
	"sync"

	"github.com/example/commandcenter/internal/ports/primary"
)

// subscriberBuffer is how many boards a subscriber may fall behind before
// updates to it are dropped.
const subscriberBuffer = 4

// BoardHub fans board updates out to subscribers. A slow subscriber misses
// updates instead of blocking the publisher.
type BoardHub struct {
	mu     sync.Mutex
	subs   map[chan *primary.KanbanBoard]struct{}
	closed bool
}

// NewBoardHub creates an empty hub.
func NewBoardHub() *BoardHub {
	return &BoardHub{subs: make(map[chan *primary.KanbanBoard]struct{})}
}

// Subscribe registers a subscriber. The returned func unsubscribes and
// closes the channel; calling it more than once is safe.
func (h *BoardHub) Subscribe() (<-chan *primary.KanbanBoard, func()) {
	ch := make(chan *primary.KanbanBoard, subscriberBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[ch]; ok {
				delete(h.subs, ch)
				close(ch)
			}
		})
	}
}

// Publish sends board to every subscriber without blocking.
func (h *BoardHub) Publish(board *primary.KanbanBoard) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- board:
		default:
		}
	}
}

// Subscribers returns the number of live subscribers.
func (h *BoardHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close disconnects every subscriber. Later subscriptions get a closed channel.
func (h *BoardHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		close(ch)
		delete(h.subs, ch)
	}
	h.closed = true
}
