package wheel

import "sync"

// eventBuffer is how many results a slow subscriber may fall behind before
// further results are dropped for it.
const eventBuffer = 16

// Hub fans spin results out to live subscribers.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan SpinResult
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan SpinResult)}
}

// Subscribe returns a channel of spin results and a function that must be
// called to release it. The channel is closed on release or when the hub
// closes; after Close it is returned already closed.
func (h *Hub) Subscribe() (<-chan SpinResult, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan SpinResult, eventBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(ch)
		}
	}
}

// Close ends every subscription so streaming handlers return. Later
// publishes are dropped.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

func (h *Hub) Publish(res SpinResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- res:
		default:
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
