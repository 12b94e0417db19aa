package handler

import (
    "errors"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-station-booking/internal/repository"
)

// AdminHandler bundles repositories for catalog management endpoints.
// All of its routes sit behind the ADMIN role.
type AdminHandler struct {
    Stations *repository.StationRepo
    Routes   *repository.RouteRepo
    Trains   *repository.TrainRepo
    Crews    *repository.CrewRepo
    Journeys *repository.JourneyRepo
}

// NewAdminHandler constructs an AdminHandler and panics if any
// dependency is nil.
func NewAdminHandler(stations *repository.StationRepo, routes *repository.RouteRepo, trains *repository.TrainRepo, crews *repository.CrewRepo, journeys *repository.JourneyRepo) *AdminHandler {
    if stations == nil || routes == nil || trains == nil || crews == nil || journeys == nil {
        panic("nil repository passed to NewAdminHandler")
    }
    return &AdminHandler{
        Stations: stations,
        Routes:   routes,
        Trains:   trains,
        Crews:    crews,
        Journeys: journeys,
    }
}

// getUserID extracts the user_id from echo.Context and converts it to
// uint64.  The JWT middleware stores it as a string claim.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}
