package orders_test

import (
	"context"
	"shop/entities"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type PricerMock struct {
	mock   sync.Mutex
	Prices map[int64]decimal.Decimal
	Err    error

	Lookups [][]int64
}

func (m *PricerMock) PriceOf(ctx context.Context, productIDs []int64) (map[int64]decimal.Decimal, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	m.Lookups = append(m.Lookups, productIDs)

	if m.Err != nil {
		return nil, m.Err
	}

	prices := map[int64]decimal.Decimal{}
	for _, productID := range productIDs {
		if price, ok := m.Prices[productID]; ok {
			prices[productID] = price
		}
	}

	return prices, nil
}

type LedgerMock struct {
	mock sync.Mutex
	Err  error

	nextOrderID   int64
	CreatedItems  [][]entities.BasketItem
	CreatedTotals []decimal.Decimal
}

func (m *LedgerMock) Create(ctx context.Context, items []entities.BasketItem, totalAmount decimal.Decimal) (int64, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}

	m.nextOrderID++
	m.CreatedItems = append(m.CreatedItems, items)
	m.CreatedTotals = append(m.CreatedTotals, totalAmount)

	return m.nextOrderID, nil
}

type LockerMock struct {
	mock       sync.Mutex
	DenyKey    string
	AcquireErr error

	held     map[string]string
	Acquired []string
	Released []string
}

func (m *LockerMock) Acquire(ctx context.Context, resourceKey, holderToken string, ttl time.Duration) (bool, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.AcquireErr != nil {
		return false, m.AcquireErr
	}
	if resourceKey == m.DenyKey {
		return false, nil
	}

	if m.held == nil {
		m.held = map[string]string{}
	}
	if _, taken := m.held[resourceKey]; taken {
		return false, nil
	}

	m.held[resourceKey] = holderToken
	m.Acquired = append(m.Acquired, resourceKey)

	return true, nil
}

func (m *LockerMock) Release(ctx context.Context, resourceKey, holderToken string) error {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.held[resourceKey] == holderToken {
		delete(m.held, resourceKey)
	}
	m.Released = append(m.Released, resourceKey)

	return nil
}

func (m *LockerMock) HeldCount() int {
	m.mock.Lock()
	defer m.mock.Unlock()

	return len(m.held)
}

type PublisherMock struct {
	mock sync.Mutex
	Err  error

	Published []int64
}

func (m *PublisherMock) PublishOrderCreated(ctx context.Context, orderID int64) error {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.Published = append(m.Published, orderID)

	return nil
}
