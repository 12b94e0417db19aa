package booking

// Layout describes the seat grid of a train: CargoNum cars with
// PlacesInCargo seats each.  Cars and seats are addressed 1-based by
// tickets.  Both values are validated positive by the admin CRUD
// layer before a train can be referenced by a journey.
type Layout struct {
    CargoNum      uint32
    PlacesInCargo uint32
}

// Capacity returns the total number of seats the layout provides.
func (l Layout) Capacity() uint32 {
    return l.CargoNum * l.PlacesInCargo
}

// SeatRequest is one requested seat inside an order: a car number and
// a seat number within that car.
type SeatRequest struct {
    Cargo uint32 `json:"cargo"`
    Seat  uint32 `json:"seat"`
}

type seatKey struct {
    cargo uint32
    seat  uint32
}

// ClaimedSet tracks seats already claimed on a journey.  During order
// placement it is seeded with the persisted tickets and grows as
// requests from the current batch are accepted, so duplicates within
// one order are caught the same way as conflicts with earlier orders.
type ClaimedSet map[seatKey]struct{}

// Add marks a seat as claimed.
func (s ClaimedSet) Add(cargo, seat uint32) {
    s[seatKey{cargo: cargo, seat: seat}] = struct{}{}
}

// Has reports whether the seat is already claimed.
func (s ClaimedSet) Has(cargo, seat uint32) bool {
    _, ok := s[seatKey{cargo: cargo, seat: seat}]
    return ok
}

// ValidateSeat checks one seat request against the train layout and
// the set of already claimed seats.  The range check runs before the
// uniqueness check, so a malformed request is rejected with
// ErrSeatOutOfRange even when the seat would also be free.  The
// function has no side effects; the caller records accepted seats in
// the claimed set and performs the insert.
func ValidateSeat(layout Layout, req SeatRequest, claimed ClaimedSet) error {
    if req.Cargo < 1 || req.Cargo > layout.CargoNum {
        return ErrSeatOutOfRange
    }
    if req.Seat < 1 || req.Seat > layout.PlacesInCargo {
        return ErrSeatOutOfRange
    }
    if claimed.Has(req.Cargo, req.Seat) {
        return ErrSeatTaken
    }
    return nil
}
