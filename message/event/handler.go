package event

import (
	"context"
	"shop/entities"
	"shop/observability"
	"time"
)

// Initial delivery location pushed for every new order. Stands in for
// "assigned to the nearest depot".
const (
	depotLatitude  = 51.5074
	depotLongitude = -0.1276
)

const DefaultProcessingDelay = 3 * time.Second

type LocationBroadcaster interface {
	Broadcast(update entities.DeliveryLocationUpdate)
}

type Handler struct {
	hub             LocationBroadcaster
	processingDelay time.Duration
}

func NewHandler(hub LocationBroadcaster, processingDelay time.Duration) Handler {
	if hub == nil {
		panic("missing hub")
	}
	if processingDelay <= 0 {
		processingDelay = DefaultProcessingDelay
	}

	return Handler{
		hub:             hub,
		processingDelay: processingDelay,
	}
}

// UpdateDeliveryLocation simulates assigning a depot to a fresh order
// and pushes the resulting location to every connected subscriber.
// Redelivery of the same order id just repeats the push, which is
// harmless.
func (h Handler) UpdateDeliveryLocation(ctx context.Context, event *entities.OrderCreated_v1) error {
	observability.FromContext(ctx).
		WithField("order_id", event.OrderID).
		Info("Setting initial delivery location")

	select {
	case <-time.After(h.processingDelay):
	case <-ctx.Done():
		// shutdown mid-processing: leave the message unacked so the
		// consumer group redelivers it
		return ctx.Err()
	}

	h.hub.Broadcast(entities.DeliveryLocationUpdate{
		OrderID:   event.OrderID,
		Latitude:  depotLatitude,
		Longitude: depotLongitude,
	})
	observability.LocationUpdatesSent.Inc()

	return nil
}
