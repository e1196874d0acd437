package orders

import (
	"context"
	"fmt"
	"shop/entities"
	"shop/observability"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultLockTTL = 10 * time.Second

type ProductPricer interface {
	PriceOf(ctx context.Context, productIDs []int64) (map[int64]decimal.Decimal, error)
}

type OrderLedger interface {
	Create(ctx context.Context, items []entities.BasketItem, totalAmount decimal.Decimal) (int64, error)
}

type Locker interface {
	Acquire(ctx context.Context, resourceKey, holderToken string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, resourceKey, holderToken string) error
}

type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, orderID int64) error
}

// Service orchestrates a checkout: it validates the basket, serializes
// contending checkouts per product, prices and persists the order and
// publishes the created event.
type Service struct {
	products  ProductPricer
	ledger    OrderLedger
	locks     Locker
	publisher EventPublisher
	lockTTL   time.Duration
}

func NewService(
	products ProductPricer,
	ledger OrderLedger,
	locks Locker,
	publisher EventPublisher,
	lockTTL time.Duration,
) Service {
	if products == nil {
		panic("missing products")
	}
	if ledger == nil {
		panic("missing ledger")
	}
	if locks == nil {
		panic("missing locks")
	}
	if publisher == nil {
		panic("missing publisher")
	}
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}

	return Service{
		products:  products,
		ledger:    ledger,
		locks:     locks,
		publisher: publisher,
		lockTTL:   lockTTL,
	}
}

func (s Service) PlaceOrder(ctx context.Context, basket entities.Basket) (entities.OrderCreateResponse, error) {
	items := basket.Normalize()
	if len(items) == 0 {
		return entities.OrderCreateResponse{}, &InvalidRequestError{
			Reason: "basket contains no items with positive quantity",
		}
	}

	resp, err := s.createOrder(ctx, items)
	if err != nil {
		return entities.OrderCreateResponse{}, err
	}

	observability.OrdersPlaced.Inc()

	// The order is committed and all leases are released at this point.
	// A publish failure does not undo the order; it is surfaced so the
	// gap between "order exists" and "notification sent" is visible.
	if err := s.publisher.PublishOrderCreated(ctx, resp.OrderID); err != nil {
		return resp, &PublishError{OrderID: resp.OrderID, Err: err}
	}

	return resp, nil
}

// createOrder runs the lease-guarded part of the checkout. Leases are
// released on every exit path before the caller publishes anything.
func (s Service) createOrder(ctx context.Context, items []entities.BasketItem) (entities.OrderCreateResponse, error) {
	release, err := s.acquireLocks(ctx, items)
	if err != nil {
		observability.LockContention.Inc()
		return entities.OrderCreateResponse{}, err
	}
	defer release()

	productIDs := make([]int64, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}

	prices, err := s.products.PriceOf(ctx, productIDs)
	if err != nil {
		return entities.OrderCreateResponse{}, &OrderCreationError{Err: err}
	}

	var unknown []int64
	for _, productID := range productIDs {
		if _, ok := prices[productID]; !ok {
			unknown = append(unknown, productID)
		}
	}
	if len(unknown) > 0 {
		return entities.OrderCreateResponse{}, &InvalidRequestError{UnknownProductIDs: unknown}
	}

	totalAmount := decimal.Zero
	for _, item := range items {
		totalAmount = totalAmount.Add(prices[item.ProductID].Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	orderID, err := s.ledger.Create(ctx, items, totalAmount)
	if err != nil {
		return entities.OrderCreateResponse{}, &OrderCreationError{Err: err}
	}

	return entities.OrderCreateResponse{
		OrderID:     orderID,
		TotalAmount: totalAmount,
	}, nil
}

// acquireLocks takes one lease per product in ascending id order (the
// items are already sorted), so two checkouts sharing products can never
// wait on each other in a cycle. On any failure every lease acquired so
// far is released before returning.
func (s Service) acquireLocks(ctx context.Context, items []entities.BasketItem) (release func(), err error) {
	holderToken := uuid.NewString()

	acquired := make([]string, 0, len(items))
	release = func() {
		// Leases are released even when the request context was
		// cancelled; an unreleased lease would park the product until
		// the TTL runs out.
		releaseCtx := context.WithoutCancel(ctx)
		for _, resourceKey := range acquired {
			if releaseErr := s.locks.Release(releaseCtx, resourceKey, holderToken); releaseErr != nil {
				observability.FromContext(ctx).
					WithError(releaseErr).
					WithField("resource_key", resourceKey).
					Error("could not release product lease")
			}
		}
	}

	for _, item := range items {
		resourceKey := lockKey(item.ProductID)

		granted, acquireErr := s.locks.Acquire(ctx, resourceKey, holderToken, s.lockTTL)
		if acquireErr != nil || !granted {
			release()
			if acquireErr != nil {
				return nil, fmt.Errorf("%w: %w", ErrResourceLocked, acquireErr)
			}
			return nil, ErrResourceLocked
		}

		acquired = append(acquired, resourceKey)
	}

	return release, nil
}

func lockKey(productID int64) string {
	return fmt.Sprintf("product_lock_%d", productID)
}
