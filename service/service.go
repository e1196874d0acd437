package service

import (
	"context"
	"net/http"
	"shop/db"
	shopHTTP "shop/http"
	"shop/lock"
	"shop/message"
	"shop/message/event"
	"shop/message/outbox"
	"shop/observability"
	"shop/orders"
	"shop/tracking"
	"time"

	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	watermillRouter *watermillMessage.Router
	echoRouter      *echo.Echo
	httpAddr        string
}

func New(
	redisClient *redis.Client,
	conn db.DB,
	httpAddr string,
	lockTTL time.Duration,
	deliveryDelay time.Duration,
) Service {
	watermillLogger := observability.NewWatermill(observability.FromContext(context.Background()))

	redisPublisher := message.NewRedisPublisher(redisClient, watermillLogger)
	eventBus := event.NewBus(redisPublisher)

	outboxPublisher, err := outbox.NewPublisher(conn.Conn, watermillLogger)
	if err != nil {
		panic(err)
	}
	outboxBus := event.NewBus(outboxPublisher)

	productRepo := db.NewProductRepository(&conn)
	cachedProductRepo := db.NewCachedProductRepository(productRepo, redisClient)
	orderRepo := db.NewOrderRepository(&conn)

	hub := tracking.NewHub()
	lockCoordinator := lock.NewCoordinator(redisClient)
	publisher := event.NewPublisher(eventBus, outboxBus)

	checkout := orders.NewService(
		productRepo,
		orderRepo,
		lockCoordinator,
		publisher,
		lockTTL,
	)

	eventsHandler := event.NewHandler(hub, deliveryDelay)
	eventProcessorConfig := event.NewProcessorConfig(redisClient, watermillLogger)

	pgSubscriber := outbox.SubscribeForPGMessages(conn.Conn, watermillLogger)
	watermillRouter := message.NewWatermillRouter(
		pgSubscriber,
		redisPublisher,
		eventProcessorConfig,
		eventsHandler,
		watermillLogger,
	)

	echoRouter := shopHTTP.NewHttpRouter(
		checkout,
		cachedProductRepo,
		hub,
	)

	return Service{
		watermillRouter: watermillRouter,
		echoRouter:      echoRouter,
		httpAddr:        httpAddr,
	}
}

func (s Service) Run(ctx context.Context) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	errgrp.Go(func() error {
		// the HTTP server starts only once the consumer side is
		// running, so the service is never healthy before it can
		// process events
		<-s.watermillRouter.Running()

		err := s.echoRouter.Start(s.httpAddr)
		if err != nil && err != http.ErrServerClosed {
			return err
		}

		return nil
	})

	errgrp.Go(func() error {
		<-ctx.Done()
		return s.echoRouter.Shutdown(context.Background())
	})

	return errgrp.Wait()
}
