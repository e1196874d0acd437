package observability

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

type CorrelationPublisherDecorator struct {
	message.Publisher
}

func (d CorrelationPublisherDecorator) Publish(topic string, messages ...*message.Message) error {
	for i := range messages {
		if messages[i].Metadata.Get("correlation_id") != "" {
			continue
		}

		correlationID := CorrelationIDFromContext(messages[i].Context())
		if correlationID != "" {
			messages[i].Metadata.Set("correlation_id", correlationID)
		}
	}

	return d.Publisher.Publish(topic, messages...)
}

type TracingPublisherDecorator struct {
	message.Publisher
}

func (d TracingPublisherDecorator) Publish(topic string, messages ...*message.Message) error {
	for i := range messages {
		ctx, span := otel.Tracer("shop").Start(messages[i].Context(), "publish."+topic)
		otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(messages[i].Metadata))
		messages[i].SetContext(ctx)
		span.End()
	}

	return d.Publisher.Publish(topic, messages...)
}
