package booking

import (
    "context"
    "database/sql"
    "fmt"
    "strings"
    "time"

    "github.com/iliyamo/train-station-booking/internal/model"
    "github.com/iliyamo/train-station-booking/internal/repository"
)

// Service performs seat allocation for journeys.  PlaceOrder is the
// only write path for orders and tickets; AvailableSeats is the read
// side used to annotate journey listings.  All database work runs on
// the pool the repositories share.
type Service struct {
    db       *sql.DB
    journeys *repository.JourneyRepo
    orders   *repository.OrderRepo
}

// NewService constructs a booking Service.  All dependencies must be
// non-nil.
func NewService(db *sql.DB, journeys *repository.JourneyRepo, orders *repository.OrderRepo) *Service {
    if db == nil || journeys == nil || orders == nil {
        panic("nil dependency passed to booking.NewService")
    }
    return &Service{db: db, journeys: journeys, orders: orders}
}

// PlacedOrder is the result of a successful PlaceOrder call: the
// persisted order and every ticket created under it.
type PlacedOrder struct {
    OrderID   uint64         `json:"order_id"`
    UserID    uint64         `json:"user_id"`
    JourneyID uint64         `json:"journey_id"`
    CreatedAt time.Time      `json:"created_at"`
    Tickets   []model.Ticket `json:"tickets"`
}

// PlaceOrder atomically creates an order and one ticket per seat
// request, or nothing at all.  Inside a single transaction it loads
// the train layout, locks the journey's existing tickets, validates
// every request in submission order against the layout and the
// accumulated claimed set, then inserts the order and its tickets and
// commits.
//
// The first failing request aborts the whole order and is reported as
// a *SeatError carrying the request index.  A duplicate-entry
// conflict raised by the tickets unique key — a concurrent order won
// the same seat between our lock and commit — is translated to
// ErrSeatTaken.  Any other failure, including context cancellation,
// rolls the transaction back in full.
func (s *Service) PlaceOrder(ctx context.Context, userID, journeyID uint64, seats []SeatRequest) (*PlacedOrder, error) {
    if len(seats) == 0 {
        return nil, ErrNoSeats
    }

    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    cargoNum, placesInCargo, err := s.journeys.TrainLayoutTx(ctx, tx, journeyID)
    if err != nil {
        return nil, err
    }
    layout := Layout{CargoNum: cargoNum, PlacesInCargo: placesInCargo}

    taken, err := s.journeys.TakenSeatsTx(ctx, tx, journeyID)
    if err != nil {
        return nil, err
    }
    claimed := make(ClaimedSet, len(taken)+len(seats))
    for _, t := range taken {
        claimed.Add(t.Cargo, t.Seat)
    }

    for i, req := range seats {
        if err := ValidateSeat(layout, req, claimed); err != nil {
            return nil, &SeatError{Index: i, Cargo: req.Cargo, Seat: req.Seat, Err: err}
        }
        claimed.Add(req.Cargo, req.Seat)
    }

    order := &model.Order{UserID: userID}
    if err := s.orders.CreateTx(ctx, tx, order); err != nil {
        return nil, err
    }

    tickets := make([]model.Ticket, 0, len(seats))
    for _, req := range seats {
        tickets = append(tickets, model.Ticket{
            OrderID:   order.ID,
            JourneyID: journeyID,
            Cargo:     req.Cargo,
            Seat:      req.Seat,
        })
    }
    if err := s.orders.CreateTicketsBulkTx(ctx, tx, tickets); err != nil {
        if isDuplicateSeat(err) {
            return nil, ErrSeatTaken
        }
        return nil, err
    }

    created, err := s.orders.TicketsByOrderTx(ctx, tx, order.ID)
    if err != nil {
        return nil, err
    }

    if err := tx.Commit(); err != nil {
        if isDuplicateSeat(err) {
            return nil, ErrSeatTaken
        }
        return nil, err
    }
    committed = true

    return &PlacedOrder{
        OrderID:   order.ID,
        UserID:    userID,
        JourneyID: journeyID,
        CreatedAt: order.CreatedAt,
        Tickets:   created,
    }, nil
}

// AvailableSeats returns how many seats remain unsold on the journey:
// train capacity minus persisted ticket count.  A negative number
// means the uniqueness invariant was violated upstream; it is
// reported as ErrNegativeAvailability rather than clamped.
func (s *Service) AvailableSeats(ctx context.Context, journeyID uint64) (int64, error) {
    capacity, sold, err := s.journeys.CapacityAndSold(ctx, journeyID)
    if err != nil {
        return 0, err
    }
    available := int64(capacity) - sold
    if available < 0 {
        return 0, fmt.Errorf("journey %d: %w", journeyID, ErrNegativeAvailability)
    }
    return available, nil
}

// isDuplicateSeat reports whether err is the MySQL duplicate-entry
// error (1062).  The only unique key touched by ticket inserts is
// (journey_id, cargo, seat).
func isDuplicateSeat(err error) bool {
    return err != nil && strings.Contains(err.Error(), "1062")
}
