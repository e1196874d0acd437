package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_orders_placed_total",
		Help: "Orders committed to the ledger.",
	})

	LockContention = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_checkout_lock_contention_total",
		Help: "Checkouts rejected because a product lock could not be acquired.",
	})

	PublishFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_order_created_publish_fallbacks_total",
		Help: "Order-created events routed through the SQL outbox after a broker publish failure.",
	})

	PublishLosses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_order_created_publish_losses_total",
		Help: "Order-created events that could not be published nor parked in the outbox.",
	})

	LocationUpdatesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_location_updates_sent_total",
		Help: "Delivery location updates broadcast to live subscribers.",
	})
)
