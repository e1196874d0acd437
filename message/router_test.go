package message

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"shop/entities"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderCreatedTopic = "events.OrderCreated_v1"

var testMarshaler = cqrs.JSONMarshaler{
	GenerateName: cqrs.StructName,
}

// startTestRouter runs the full consumer middleware chain over an
// in-memory pub/sub, with handle as the only event handler. It returns
// the pub/sub for publishing and a subscription on the poison topic.
func startTestRouter(
	t *testing.T,
	handle func(ctx context.Context, event *entities.OrderCreated_v1) error,
) (*gochannel.GoChannel, <-chan *message.Message) {
	t.Helper()

	logger := watermill.NopLogger{}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, logger)

	router, err := message.NewRouter(message.RouterConfig{}, logger)
	require.NoError(t, err)

	useMiddlewares(router, pubSub, logger)

	eventProcessor, err := cqrs.NewEventProcessorWithConfig(router, cqrs.EventProcessorConfig{
		GenerateSubscribeTopic: func(params cqrs.EventProcessorGenerateSubscribeTopicParams) (string, error) {
			return "events." + params.EventName, nil
		},
		SubscriberConstructor: func(params cqrs.EventProcessorSubscriberConstructorParams) (message.Subscriber, error) {
			return pubSub, nil
		},
		Marshaler: testMarshaler,
		Logger:    logger,
	})
	require.NoError(t, err)

	err = eventProcessor.AddHandlers(
		cqrs.NewEventHandler("UpdateDeliveryLocation", handle),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	poisoned, err := pubSub.Subscribe(ctx, PoisonTopic)
	require.NoError(t, err)

	go func() {
		assert.NoError(t, router.Run(ctx))
	}()
	<-router.Running()

	return pubSub, poisoned
}

func TestMalformedEventLandsOnPoisonTopic(t *testing.T) {
	handled := make(chan struct{}, 1)
	pubSub, poisoned := startTestRouter(t, func(ctx context.Context, event *entities.OrderCreated_v1) error {
		handled <- struct{}{}
		return nil
	})

	msg := message.NewMessage(watermill.NewUUID(), []byte(`{"header":`))
	msg.Metadata.Set("name", "OrderCreated_v1")
	require.NoError(t, pubSub.Publish(orderCreatedTopic, msg))

	select {
	case poisonedMsg := <-poisoned:
		poisonedMsg.Ack()
		assert.Equal(t, msg.UUID, poisonedMsg.UUID)
		assert.NotEmpty(t, poisonedMsg.Metadata.Get(middleware.ReasonForPoisonedKey))
	case <-time.After(5 * time.Second):
		t.Fatal("malformed event never reached the poison topic")
	}

	select {
	case <-handled:
		t.Fatal("handler must not run for a payload it cannot decode")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestTransientHandlerErrorIsRetriedNotPoisoned(t *testing.T) {
	var calls atomic.Int32
	pubSub, poisoned := startTestRouter(t, func(ctx context.Context, event *entities.OrderCreated_v1) error {
		if calls.Add(1) == 1 {
			return errors.New("location hub unavailable")
		}
		return nil
	})

	msg, err := testMarshaler.Marshal(&entities.OrderCreated_v1{
		Header:  entities.NewEventHeader(),
		OrderID: 42,
	})
	require.NoError(t, err)
	require.NoError(t, pubSub.Publish(orderCreatedTopic, msg))

	assert.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, 5*time.Second, 50*time.Millisecond, "failed handler was never retried")

	select {
	case <-poisoned:
		t.Fatal("transient failure must stay on the work queue, not the poison topic")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestPoisonFilter(t *testing.T) {
	var event entities.OrderCreated_v1

	assert.True(t, isPoisonous(json.Unmarshal([]byte(`{"header":`), &event)))
	assert.True(t, isPoisonous(json.Unmarshal([]byte(`{"order_id":"nope"}`), &event)))

	assert.False(t, isPoisonous(errors.New("location hub unavailable")))
	assert.False(t, isPoisonous(fmt.Errorf("handling event: %w", context.Canceled)))
	assert.False(t, isPoisonous(context.DeadlineExceeded))
}
