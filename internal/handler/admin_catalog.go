// This file defines the catalog management endpoints: creating
// stations, routes, train types, trains, crew members and journeys.
// Each handler validates the payload, delegates persistence to the
// repositories and returns the created resource.

package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-station-booking/internal/model"
    "github.com/iliyamo/train-station-booking/internal/repository"
)

// ----- request DTOs -----

type createStationReq struct {
    Name      string  `json:"name"`
    Latitude  float64 `json:"latitude"`
    Longitude float64 `json:"longitude"`
}

type createRouteReq struct {
    SourceID      uint64 `json:"source_id"`
    DestinationID uint64 `json:"destination_id"`
    Distance      uint32 `json:"distance"`
}

type createTrainTypeReq struct {
    Name string `json:"name"`
}

type createTrainReq struct {
    Name          string `json:"name"`
    CargoNum      uint32 `json:"cargo_num"`
    PlacesInCargo uint32 `json:"places_in_cargo"`
    TrainTypeID   uint64 `json:"train_type_id"`
}

type createCrewReq struct {
    FirstName string `json:"first_name"`
    LastName  string `json:"last_name"`
}

type createJourneyReq struct {
    RouteID       uint64   `json:"route_id"`
    TrainID       uint64   `json:"train_id"`
    DepartureTime string   `json:"departure_time"`
    ArrivalTime   string   `json:"arrival_time"`
    CrewIDs       []uint64 `json:"crew_ids"`
}

// parseTimestamp accepts RFC3339 or a plain "YYYY-MM-DD HH:MM:SS"
// value, the two formats clients actually send.
func parseTimestamp(s string) (time.Time, error) {
    s = strings.TrimSpace(s)
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, nil
    }
    return time.Parse("2006-01-02 15:04:05", s)
}

// CreateStation creates a station.
func (h *AdminHandler) CreateStation(c echo.Context) error {
    var req createStationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    if req.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
    }
    if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coordinates"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    st := &model.Station{Name: req.Name, Latitude: req.Latitude, Longitude: req.Longitude}
    if err := h.Stations.Create(ctx, st); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create station failed"})
    }
    return c.JSON(http.StatusCreated, st)
}

// CreateRoute creates a route between two distinct stations.
func (h *AdminHandler) CreateRoute(c echo.Context) error {
    var req createRouteReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.SourceID == 0 || req.DestinationID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "source_id/destination_id required"})
    }
    if req.SourceID == req.DestinationID {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "source and destination must differ"})
    }
    if req.Distance == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "distance must be positive"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    // Check both endpoints exist so the client gets a 404 instead of a
    // bare foreign-key failure.
    if _, err := h.Stations.GetByID(ctx, req.SourceID); err != nil {
        if err == repository.ErrStationNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "source station not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if _, err := h.Stations.GetByID(ctx, req.DestinationID); err != nil {
        if err == repository.ErrStationNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "destination station not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    rt := &model.Route{SourceID: req.SourceID, DestinationID: req.DestinationID, Distance: req.Distance}
    if err := h.Routes.Create(ctx, rt); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create route failed"})
    }
    return c.JSON(http.StatusCreated, rt)
}

// CreateTrainType creates a train type.
func (h *AdminHandler) CreateTrainType(c echo.Context) error {
    var req createTrainTypeReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    if req.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    tt := &model.TrainType{Name: req.Name}
    if err := h.Trains.CreateType(ctx, tt); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create train type failed"})
    }
    return c.JSON(http.StatusCreated, tt)
}

// Upper bounds on the train layout.  Real rolling stock stays far
// below these; capping them at creation keeps cargo_num *
// places_in_cargo comfortably inside uint32 wherever capacity is
// derived.
const (
    maxCargoNum      = 64
    maxPlacesInCargo = 1000
)

// CreateTrain creates a train.  The cargo layout must be positive and
// within bounds in both dimensions; capacity is derived from it and
// never stored.
func (h *AdminHandler) CreateTrain(c echo.Context) error {
    var req createTrainReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    if req.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
    }
    if req.CargoNum == 0 || req.PlacesInCargo == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "cargo_num and places_in_cargo must be positive"})
    }
    if req.CargoNum > maxCargoNum || req.PlacesInCargo > maxPlacesInCargo {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "cargo_num and places_in_cargo exceed supported train size"})
    }
    if req.TrainTypeID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "train_type_id required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    t := &model.Train{
        Name:          req.Name,
        CargoNum:      req.CargoNum,
        PlacesInCargo: req.PlacesInCargo,
        TrainTypeID:   req.TrainTypeID,
    }
    if err := h.Trains.Create(ctx, t); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create train failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "id":              t.ID,
        "name":            t.Name,
        "cargo_num":       t.CargoNum,
        "places_in_cargo": t.PlacesInCargo,
        "train_type_id":   t.TrainTypeID,
        "capacity":        t.Capacity(),
    })
}

// CreateCrew creates a crew member.
func (h *AdminHandler) CreateCrew(c echo.Context) error {
    var req createCrewReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.FirstName = strings.TrimSpace(req.FirstName)
    req.LastName = strings.TrimSpace(req.LastName)
    if req.FirstName == "" || req.LastName == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name/last_name required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    cr := &model.Crew{FirstName: req.FirstName, LastName: req.LastName}
    if err := h.Crews.Create(ctx, cr); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create crew failed"})
    }
    return c.JSON(http.StatusCreated, cr)
}

// CreateJourney schedules a journey on a route with a train and an
// optional crew.  Arrival must come after departure, and every crew ID
// must reference an existing crew member.
func (h *AdminHandler) CreateJourney(c echo.Context) error {
    var req createJourneyReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.RouteID == 0 || req.TrainID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "route_id/train_id required"})
    }
    departure, err := parseTimestamp(req.DepartureTime)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid departure_time"})
    }
    arrival, err := parseTimestamp(req.ArrivalTime)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid arrival_time"})
    }
    if !arrival.After(departure) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "arrival_time must be after departure_time"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Routes.GetByID(ctx, req.RouteID); err != nil {
        if err == repository.ErrRouteNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if _, err := h.Trains.GetByID(ctx, req.TrainID); err != nil {
        if err == repository.ErrTrainNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if len(req.CrewIDs) > 0 {
        ok, err := h.Crews.ExistAll(ctx, req.CrewIDs)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        if !ok {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown crew id"})
        }
    }

    j := &model.Journey{
        RouteID:       req.RouteID,
        TrainID:       req.TrainID,
        DepartureTime: departure,
        ArrivalTime:   arrival,
    }
    if err := h.Journeys.Create(ctx, j, req.CrewIDs); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create journey failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "id":             j.ID,
        "route_id":       j.RouteID,
        "train_id":       j.TrainID,
        "departure_time": j.DepartureTime,
        "arrival_time":   j.ArrivalTime,
        "crew_ids":       req.CrewIDs,
    })
}
