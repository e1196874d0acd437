package http

import (
	"net/http"
	"shop/observability"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/lithammer/shortuuid/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func NewHttpRouter(
	checkout OrderPlacer,
	productRepo ProductRepository,
	hub LocationSubscriber,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.Recover())
	e.Use(otelecho.Middleware("shop"))
	e.Use(correlationMiddleware)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler := Handler{
		checkout:    checkout,
		productRepo: productRepo,
		hub:         hub,
	}

	e.POST("/api/orders", handler.PostOrders)
	e.GET("/products", handler.GetProducts)
	e.GET("/location-updates", handler.GetLocationUpdates)

	return e
}

func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		correlationID := c.Request().Header.Get("Correlation-ID")
		if correlationID == "" {
			correlationID = shortuuid.New()
		}

		ctx := c.Request().Context()
		ctx = observability.ToContext(ctx, logrus.WithFields(logrus.Fields{"correlation_id": correlationID}))
		ctx = observability.ContextWithCorrelationID(ctx, correlationID)
		c.SetRequest(c.Request().WithContext(ctx))

		c.Response().Header().Set("Correlation-ID", correlationID)

		return next(c)
	}
}
