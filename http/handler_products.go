package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h Handler) GetProducts(c echo.Context) error {
	products, err := h.productRepo.Get(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, products)
}
