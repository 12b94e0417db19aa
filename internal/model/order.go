package model

import "time"

// Order groups the tickets a user bought in one booking request.
// An order and its tickets are created atomically inside a single
// transaction; a partially created order is never observable.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who placed the order.
//  CreatedAt – creation timestamp.
type Order struct {
    ID        uint64    // orders.id
    UserID    uint64    // orders.user_id
    CreatedAt time.Time // orders.created_at
}

// Ticket is a claim on one physical seat for one journey.  The pair
// (cargo, seat) is unique per journey: the `tickets` table carries a
// UNIQUE KEY on (journey_id, cargo, seat) which backstops the
// in-transaction validation under concurrent bookings.  Tickets are
// immutable after creation.
//
// Fields:
//  ID        – primary key identifier.
//  OrderID   – owning order.
//  JourneyID – journey the seat is claimed on.
//  Cargo     – car number, 1..train.cargo_num.
//  Seat      – seat number within the car, 1..train.places_in_cargo.
type Ticket struct {
    ID        uint64 `json:"id"`         // tickets.id
    OrderID   uint64 `json:"order_id"`   // tickets.order_id
    JourneyID uint64 `json:"journey_id"` // tickets.journey_id
    Cargo     uint32 `json:"cargo"`      // tickets.cargo
    Seat      uint32 `json:"seat"`       // tickets.seat
}
