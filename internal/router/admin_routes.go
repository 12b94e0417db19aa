package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-station-booking/internal/handler"
    "github.com/iliyamo/train-station-booking/internal/middleware"
)

// RegisterAdmin registers catalog management endpoints under /v1.  All
// routes require a valid JWT and the ADMIN role.  Admins create the
// resources customers browse: stations, routes, train types, trains,
// crew members and journeys.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("ADMIN"),
    )
    g.POST("/stations", h.CreateStation)
    g.POST("/routes", h.CreateRoute)
    g.POST("/train-types", h.CreateTrainType)
    g.POST("/trains", h.CreateTrain)
    g.POST("/crews", h.CreateCrew)
    g.POST("/journeys", h.CreateJourney)
}
