package orders

import (
	"errors"
	"fmt"
)

// ErrResourceLocked means at least one product lease was held by another
// checkout. The caller may retry; this service does not.
var ErrResourceLocked = errors.New("could not acquire all product leases")

type InvalidRequestError struct {
	Reason            string
	UnknownProductIDs []int64
}

func (e *InvalidRequestError) Error() string {
	if len(e.UnknownProductIDs) > 0 {
		return fmt.Sprintf("unknown product ids: %v", e.UnknownProductIDs)
	}
	return e.Reason
}

// OrderCreationError wraps a ledger-side failure. The transaction was
// rolled back and no order exists.
type OrderCreationError struct {
	Err error
}

func (e *OrderCreationError) Error() string {
	return fmt.Sprintf("order creation failed: %v", e.Err)
}

func (e *OrderCreationError) Unwrap() error {
	return e.Err
}

// PublishError reports that the order was committed but its created
// event could not be made durable anywhere. The order is not rolled
// back.
type PublishError struct {
	OrderID int64
	Err     error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("order %d created but event publish failed: %v", e.OrderID, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}
