package entities

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Basket maps product id to requested quantity, as submitted by the client.
type Basket map[int64]int

// Normalize drops entries with non-positive quantity and returns the
// remaining items ordered by ascending product id.
func (b Basket) Normalize() []BasketItem {
	items := make([]BasketItem, 0, len(b))
	for productID, quantity := range b {
		if quantity <= 0 {
			continue
		}
		items = append(items, BasketItem{ProductID: productID, Quantity: quantity})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID < items[j].ProductID
	})

	return items
}

type BasketItem struct {
	ProductID int64
	Quantity  int
}

type Order struct {
	ID          int64           `json:"id" db:"id"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

type OrderItem struct {
	OrderID   int64 `json:"order_id" db:"order_id"`
	ProductID int64 `json:"product_id" db:"product_id"`
	Quantity  int   `json:"quantity" db:"quantity"`
}

type OrderCreateResponse struct {
	OrderID     int64           `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
