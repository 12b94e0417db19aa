// Package booking implements seat allocation for journeys: capacity
// derivation from the train layout, remaining-seat accounting and the
// transactional order placement path that keeps the (journey, cargo,
// seat) uniqueness invariant under concurrent requests.
package booking

import (
    "errors"
    "fmt"

    "github.com/iliyamo/train-station-booking/internal/repository"
)

// ErrSeatOutOfRange is returned when a requested cargo/seat pair falls
// outside the physical layout of the journey's train.  The request can
// only succeed with different input.
var ErrSeatOutOfRange = errors.New("seat out of range")

// ErrSeatTaken is returned when the requested seat is already claimed,
// either by a persisted ticket, by an earlier request in the same
// order, or by a concurrent order that committed first (surfaced via
// the unique-key conflict on tickets).  The caller may retry with a
// different seat.
var ErrSeatTaken = errors.New("seat already taken")

// ErrNegativeAvailability signals that more tickets exist for a
// journey than the train has seats.  It is the same sentinel the
// repository layer raises when a listing scan produces a negative
// count, so errors.Is matches it wherever availability is derived.
var ErrNegativeAvailability = repository.ErrNegativeAvailability

// ErrNoSeats is returned when an order is placed without any seat
// requests.  An order always owns at least one ticket.
var ErrNoSeats = errors.New("order contains no seat requests")

// SeatError reports which seat request in an order failed validation
// and why.  Index is the zero-based position in the submitted request
// list.  The whole order is rejected when any request fails.
type SeatError struct {
    Index int
    Cargo uint32
    Seat  uint32
    Err   error
}

func (e *SeatError) Error() string {
    return fmt.Sprintf("seat request %d (cargo %d, seat %d): %v", e.Index, e.Cargo, e.Seat, e.Err)
}

func (e *SeatError) Unwrap() error { return e.Err }
