package outbox

import (
	"shop/observability"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/sirupsen/logrus"

	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
)

func NewForwarder(
	pgSubscriber message.Subscriber,
	redisPub message.Publisher,
	logger watermill.LoggerAdapter,
	router *message.Router,
) (*forwarder.Forwarder, error) {
	fwd, err := forwarder.NewForwarder(pgSubscriber, redisPub, logger,
		forwarder.Config{
			ForwarderTopic: topic,
			Router:         router,
			Middlewares: []message.HandlerMiddleware{
				func(h message.HandlerFunc) message.HandlerFunc {
					return func(msg *message.Message) ([]*message.Message, error) {
						observability.FromContext(msg.Context()).WithFields(logrus.Fields{
							"message_id": msg.UUID,
							"payload":    string(msg.Payload),
							"metadata":   msg.Metadata,
						}).Info("Forwarding message")
						return h(msg)
					}
				},
			},
		})
	if err != nil {
		return nil, err
	}

	return fwd, nil
}
