package http

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetLocationUpdates streams delivery-location updates to the client as
// newline-delimited JSON until the client disconnects.
func (h Handler) GetLocationUpdates(c echo.Context) error {
	updates, cancel := h.hub.Subscribe()
	defer cancel()

	c.Response().Header().Set(echo.HeaderContentType, "application/x-ndjson")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Flush()

	enc := json.NewEncoder(c.Response())
	ctx := c.Request().Context()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := enc.Encode(update); err != nil {
				return err
			}
			c.Response().Flush()
		}
	}
}
