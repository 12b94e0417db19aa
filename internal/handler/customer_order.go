package handler

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-station-booking/internal/booking"
    "github.com/iliyamo/train-station-booking/internal/queue"
    "github.com/iliyamo/train-station-booking/internal/repository"
    queue_publisher "github.com/iliyamo/train-station-booking/internal/service"
)

// OrderHandler serves the customer-facing booking endpoints.  Seat
// allocation itself lives in the booking service; this layer binds
// requests, maps booking errors to HTTP statuses and publishes the
// confirmation event.
type OrderHandler struct {
    Booking  *booking.Service
    Orders   *repository.OrderRepo
    Journeys *repository.JourneyRepo
}

// NewOrderHandler constructs an OrderHandler and panics if any
// dependency is nil.
func NewOrderHandler(svc *booking.Service, orders *repository.OrderRepo, journeys *repository.JourneyRepo) *OrderHandler {
    if svc == nil || orders == nil || journeys == nil {
        panic("nil dependency passed to NewOrderHandler")
    }
    return &OrderHandler{Booking: svc, Orders: orders, Journeys: journeys}
}

type placeOrderReq struct {
    JourneyID uint64                `json:"journey_id"`
    Seats     []booking.SeatRequest `json:"seats"`
}

// PlaceOrder handles POST /v1/orders.  It books every requested
// (cargo, seat) pair on the journey atomically: either one order with
// one ticket per seat is created, or nothing is.  Validation failures
// report the index of the first offending seat request.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req placeOrderReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.JourneyID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "journey_id required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    placed, err := h.Booking.PlaceOrder(ctx, userID, req.JourneyID, req.Seats)
    if err != nil {
        var seatErr *booking.SeatError
        switch {
        case errors.Is(err, booking.ErrNoSeats):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats is required"})
        case errors.Is(err, repository.ErrJourneyNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "journey not found"})
        case errors.As(err, &seatErr):
            status := http.StatusBadRequest
            if errors.Is(seatErr.Err, booking.ErrSeatTaken) {
                status = http.StatusConflict
            }
            return c.JSON(status, echo.Map{
                "error": seatErr.Err.Error(),
                "index": seatErr.Index,
                "cargo": seatErr.Cargo,
                "seat":  seatErr.Seat,
            })
        case errors.Is(err, booking.ErrSeatTaken):
            // Lost the race at commit time to a concurrent order.
            return c.JSON(http.StatusConflict, echo.Map{"error": "seat already taken"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
        }
    }

    h.publishConfirmed(placed)

    return c.JSON(http.StatusCreated, placed)
}

// publishConfirmed emits the order.confirmed event in the background.
// Publishing is best effort; a broker outage never fails the booking.
func (h *OrderHandler) publishConfirmed(placed *booking.PlacedOrder) {
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()

        ev := queue.OrderConfirmedEvent{
            OrderID:     placed.OrderID,
            UserID:      placed.UserID,
            JourneyID:   placed.JourneyID,
            ConfirmedAt: placed.CreatedAt.UTC().Format(time.RFC3339),
        }
        for _, t := range placed.Tickets {
            ev.Seats = append(ev.Seats, fmt.Sprintf("%d/%d", t.Cargo, t.Seat))
        }
        if j, err := h.Journeys.GetByID(ctx, placed.JourneyID); err == nil {
            ev.Route = j.Route.Source + " -> " + j.Route.Destination
            ev.TrainName = j.Train.Name
            ev.Departure = j.DepartureTime.UTC().Format(time.RFC3339)
        }
        _ = queue_publisher.PublishOrderConfirmed(ctx, ev)
    }()
}

// ListOrders handles GET /v1/orders.  It returns one page of the
// current user's orders, newest first, with their tickets.  Query
// params page and page_size default to 1 and 10; page_size is capped
// at 100.
func (h *OrderHandler) ListOrders(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    page := 1
    if raw := c.QueryParam("page"); raw != "" {
        n, err := strconv.Atoi(raw)
        if err != nil || n < 1 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid page"})
        }
        page = n
    }
    pageSize := 10
    if raw := c.QueryParam("page_size"); raw != "" {
        n, err := strconv.Atoi(raw)
        if err != nil || n < 1 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid page_size"})
        }
        if n > 100 {
            n = 100
        }
        pageSize = n
    }

    ctx := c.Request().Context()
    total, err := h.Orders.CountByUser(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    items, err := h.Orders.ListByUser(ctx, userID, (page-1)*pageSize, pageSize)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "count":     total,
        "page":      page,
        "page_size": pageSize,
        "items":     items,
    })
}
