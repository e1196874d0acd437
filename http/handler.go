package http

import (
	"context"
	"shop/entities"
)

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, basket entities.Basket) (entities.OrderCreateResponse, error)
}

type ProductRepository interface {
	Get(ctx context.Context) ([]entities.Product, error)
}

type LocationSubscriber interface {
	Subscribe() (<-chan entities.DeliveryLocationUpdate, func())
}

type Handler struct {
	checkout    OrderPlacer
	productRepo ProductRepository
	hub         LocationSubscriber
}
