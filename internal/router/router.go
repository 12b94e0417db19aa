package router // router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-station-booking/internal/handler"
    "github.com/iliyamo/train-station-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check
// used by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Refresh rotates the refresh token; refresh-access only issues a
    // new access token.
    g.POST("/refresh", a.Refresh)
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout accepts a refresh_token body or an Authorization header
    // and therefore does not sit behind the JWT middleware.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole("ADMIN", "CUSTOMER"))
    auth.GET("/me", a.Me)

    // Alias so clients can call either /v1/auth/logout or /v1/logout.
    e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse endpoints: the
// station/route/train catalog and the journey listings guests use to
// find a trip before registering.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
    e.GET("/v1/stations", p.ListStations)
    e.GET("/v1/routes", p.ListRoutes)
    e.GET("/v1/train-types", p.ListTrainTypes)
    e.GET("/v1/crews", p.ListCrews)
    // Trains support ?name= substring and ?train_type=1,2 filters.
    e.GET("/v1/trains", p.ListTrains)
    e.GET("/v1/trains/:id", p.GetTrain)
    // Journeys support ?departure_time=YYYY-MM-DD and ?train= filters;
    // each summary carries the tickets_available count.
    e.GET("/v1/journeys", p.ListJourneys)
    // Journey detail includes taken_places for seat-map rendering.
    e.GET("/v1/journeys/:id", p.GetJourney)
}
