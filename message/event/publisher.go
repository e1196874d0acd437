package event

import (
	"context"
	"errors"
	"shop/entities"
	"shop/observability"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
)

// Publisher emits order-created events after the ledger transaction has
// committed. The broker is tried first; if it is down the event is
// parked in the SQL outbox, whose forwarder replays it once the broker
// recovers. Only when both paths fail does the caller see an error.
type Publisher struct {
	bus       *cqrs.EventBus
	outboxBus *cqrs.EventBus
}

func NewPublisher(bus *cqrs.EventBus, outboxBus *cqrs.EventBus) Publisher {
	if bus == nil {
		panic("missing event bus")
	}
	if outboxBus == nil {
		panic("missing outbox event bus")
	}

	return Publisher{
		bus:       bus,
		outboxBus: outboxBus,
	}
}

func (p Publisher) PublishOrderCreated(ctx context.Context, orderID int64) error {
	event := entities.OrderCreated_v1{
		Header:  entities.NewEventHeader(),
		OrderID: orderID,
	}

	err := p.bus.Publish(ctx, event)
	if err == nil {
		return nil
	}

	observability.FromContext(ctx).
		WithError(err).
		WithField("order_id", orderID).
		Error("Publish to broker failed, parking event in outbox")
	observability.PublishFallbacks.Inc()

	if outboxErr := p.outboxBus.Publish(ctx, event); outboxErr != nil {
		observability.PublishLosses.Inc()
		return errors.Join(err, outboxErr)
	}

	return nil
}
