package entities

import (
	"time"

	"github.com/google/uuid"
)

type IEvent interface {
	IsInternal() bool
}

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: uuid.NewString(),
	}
}

type OrderCreated_v1 struct {
	Header EventHeader `json:"header"`

	OrderID int64 `json:"order_id"`
}

func (e OrderCreated_v1) IsInternal() bool {
	return false
}

// DeliveryLocationUpdate is pushed to every connected live subscriber.
type DeliveryLocationUpdate struct {
	OrderID   int64   `json:"order_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
