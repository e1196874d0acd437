package http

import (
	"errors"
	"net/http"
	"shop/entities"
	"shop/orders"

	"github.com/labstack/echo/v4"
)

type problemDetails struct {
	Title   string `json:"title"`
	Detail  string `json:"detail,omitempty"`
	Status  int    `json:"status"`
	OrderID int64  `json:"order_id,omitempty"`
}

func (h Handler) PostOrders(c echo.Context) error {
	var basket entities.Basket
	if err := c.Bind(&basket); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid basket payload")
	}

	resp, err := h.checkout.PlaceOrder(c.Request().Context(), basket)
	if err != nil {
		return orderErrorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, resp)
}

func orderErrorResponse(c echo.Context, err error) error {
	var invalidErr *orders.InvalidRequestError
	if errors.As(err, &invalidErr) {
		return echo.NewHTTPError(http.StatusBadRequest, invalidErr.Error())
	}

	if errors.Is(err, orders.ErrResourceLocked) {
		return echo.NewHTTPError(http.StatusLocked, "products in the basket are locked by another checkout")
	}

	var publishErr *orders.PublishError
	if errors.As(err, &publishErr) {
		// the order exists; only the notification is missing
		return c.JSON(http.StatusInternalServerError, problemDetails{
			Title:   "order created but its notification could not be published",
			Detail:  publishErr.Error(),
			Status:  http.StatusInternalServerError,
			OrderID: publishErr.OrderID,
		})
	}

	return c.JSON(http.StatusInternalServerError, problemDetails{
		Title:  "order creation failed",
		Detail: err.Error(),
		Status: http.StatusInternalServerError,
	})
}
