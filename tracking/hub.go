package tracking

import (
	"shop/entities"
	"sync"
)

const subscriberBuffer = 16

// Hub fans delivery-location updates out to every connected live
// subscriber. It is the process-local stand-in for a push channel to
// browsers: subscribers come and go with their connections, and nobody
// gets history.
type Hub struct {
	mu          sync.Mutex
	nextID      int64
	subscribers map[int64]chan entities.DeliveryLocationUpdate
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int64]chan entities.DeliveryLocationUpdate),
	}
}

// Subscribe registers a live subscriber. The returned cancel func must
// be called when the subscriber disconnects; it closes the channel.
func (h *Hub) Subscribe() (<-chan entities.DeliveryLocationUpdate, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	updates := make(chan entities.DeliveryLocationUpdate, subscriberBuffer)
	h.subscribers[id] = updates

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if ch, ok := h.subscribers[id]; ok {
			delete(h.subscribers, id)
			close(ch)
		}
	}

	return updates, cancel
}

// Broadcast delivers the update to all current subscribers. A
// subscriber that cannot keep up loses the update instead of blocking
// the notifier.
func (h *Hub) Broadcast(update entities.DeliveryLocationUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- update:
		default:
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subscribers)
}
