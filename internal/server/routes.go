package server

import (
	"net/http"

	"storefront/internal/config"
	mw "storefront/internal/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	auth := mw.AuthJWT(cfg)

	h.Products.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, auth)
	h.Orders.RegisterRoutes(e, auth)
	h.Reviews.RegisterRoutes(e, auth)
}
