package tracking

import (
	"shop/entities"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastReachesAllSubscribers(t *testing.T) {
	hub := NewHub()

	first, cancelFirst := hub.Subscribe()
	defer cancelFirst()
	second, cancelSecond := hub.Subscribe()
	defer cancelSecond()

	update := entities.DeliveryLocationUpdate{OrderID: 42, Latitude: 51.5074, Longitude: -0.1276}
	hub.Broadcast(update)

	assert.Equal(t, update, <-first)
	assert.Equal(t, update, <-second)
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()

	updates, cancel := hub.Subscribe()
	require.Equal(t, 1, hub.SubscriberCount())

	cancel()

	assert.Equal(t, 0, hub.SubscriberCount())
	_, open := <-updates
	assert.False(t, open)

	// a second cancel is a no-op
	cancel()
}

func TestHubBroadcastWithoutSubscribersDoesNotBlock(t *testing.T) {
	hub := NewHub()

	hub.Broadcast(entities.DeliveryLocationUpdate{OrderID: 1})
}

func TestHubDropsUpdatesForSlowSubscriber(t *testing.T) {
	hub := NewHub()

	updates, cancel := hub.Subscribe()
	defer cancel()

	// overflow the subscriber buffer without reading anything
	for i := 0; i < subscriberBuffer*2; i++ {
		hub.Broadcast(entities.DeliveryLocationUpdate{OrderID: int64(i)})
	}

	received := 0
	for {
		select {
		case <-updates:
			received++
		default:
			assert.Equal(t, subscriberBuffer, received)
			return
		}
	}
}
