package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-station-booking/internal/handler"
    "github.com/iliyamo/train-station-booking/internal/middleware"
)

// RegisterCustomer registers the booking endpoints under /v1.  All
// routes require a valid JWT; admins may also place orders, so both
// roles are accepted.  Customers book seats on journeys and list their
// own orders.
func RegisterCustomer(e *echo.Echo, h *handler.OrderHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("CUSTOMER", "ADMIN"),
    )
    g.POST("/orders", h.PlaceOrder)
    g.GET("/orders", h.ListOrders)
}
