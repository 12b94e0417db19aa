// Package handler exposes HTTP handlers for both authenticated and
// public endpoints.  This file defines the public browsing API:
// stations, routes, train types, crews, trains and journeys are
// readable without authentication.

package handler

import (
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-station-booking/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated
// browsing.
type PublicHandler struct {
    Stations *repository.StationRepo
    Routes   *repository.RouteRepo
    Trains   *repository.TrainRepo
    Crews    *repository.CrewRepo
    Journeys *repository.JourneyRepo
}

// NewPublicHandler constructs a PublicHandler and panics if any
// dependency is nil.
func NewPublicHandler(stations *repository.StationRepo, routes *repository.RouteRepo, trains *repository.TrainRepo, crews *repository.CrewRepo, journeys *repository.JourneyRepo) *PublicHandler {
    if stations == nil || routes == nil || trains == nil || crews == nil || journeys == nil {
        panic("nil repository passed to NewPublicHandler")
    }
    return &PublicHandler{
        Stations: stations,
        Routes:   routes,
        Trains:   trains,
        Crews:    crews,
        Journeys: journeys,
    }
}

// ListStations returns all stations.
func (h *PublicHandler) ListStations(c echo.Context) error {
    ctx := c.Request().Context()
    stations, err := h.Stations.ListAll(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": stations})
}

// ListRoutes returns all routes with station names resolved.
func (h *PublicHandler) ListRoutes(c echo.Context) error {
    ctx := c.Request().Context()
    routes, err := h.Routes.ListAll(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": routes})
}

// ListTrainTypes returns all train types.
func (h *PublicHandler) ListTrainTypes(c echo.Context) error {
    ctx := c.Request().Context()
    types, err := h.Trains.ListTypes(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": types})
}

// ListCrews returns all crew members.
func (h *PublicHandler) ListCrews(c echo.Context) error {
    ctx := c.Request().Context()
    crews, err := h.Crews.ListAll(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": crews})
}

// ListTrains returns trains with their type names and derived
// capacity.  Optional query params: name (substring match) and
// train_type (comma separated type IDs).
func (h *PublicHandler) ListTrains(c echo.Context) error {
    ctx := c.Request().Context()
    name := strings.TrimSpace(c.QueryParam("name"))

    var typeIDs []uint64
    if raw := strings.TrimSpace(c.QueryParam("train_type")); raw != "" {
        for _, part := range strings.Split(raw, ",") {
            part = strings.TrimSpace(part)
            if part == "" {
                continue
            }
            id, err := strconv.ParseUint(part, 10, 64)
            if err != nil {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid train_type"})
            }
            typeIDs = append(typeIDs, id)
        }
    }

    trains, err := h.Trains.List(ctx, name, typeIDs)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": trains})
}

// GetTrain returns one train by ID.
func (h *PublicHandler) GetTrain(c echo.Context) error {
    ctx := c.Request().Context()
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    t, err := h.Trains.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrTrainNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, t)
}

// ListJourneys returns journey summaries including the count of
// tickets still available.  Optional query params: departure_time
// (YYYY-MM-DD, matches the calendar day) and train (train ID).
func (h *PublicHandler) ListJourneys(c echo.Context) error {
    ctx := c.Request().Context()

    var departureDate time.Time
    if raw := strings.TrimSpace(c.QueryParam("departure_time")); raw != "" {
        d, err := time.Parse("2006-01-02", raw)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid departure_time"})
        }
        departureDate = d
    }
    var trainID uint64
    if raw := strings.TrimSpace(c.QueryParam("train")); raw != "" {
        id, err := strconv.ParseUint(raw, 10, 64)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid train"})
        }
        trainID = id
    }

    journeys, err := h.Journeys.List(ctx, departureDate, trainID)
    if err != nil {
        if errors.Is(err, repository.ErrNegativeAvailability) {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "inconsistent ticket data"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": journeys})
}

// GetJourney returns the full journey detail including the claimed
// seats, so clients can render the seating map before booking.
func (h *PublicHandler) GetJourney(c echo.Context) error {
    ctx := c.Request().Context()
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    j, err := h.Journeys.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrJourneyNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "journey not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, j)
}
