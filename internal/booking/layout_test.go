package booking

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestLayoutCapacity(t *testing.T) {
    cases := []struct {
        name   string
        layout Layout
        want   uint32
    }{
        {"standard train", Layout{CargoNum: 4, PlacesInCargo: 20}, 80},
        {"single car", Layout{CargoNum: 1, PlacesInCargo: 50}, 50},
        {"one seat", Layout{CargoNum: 1, PlacesInCargo: 1}, 1},
        {"wide layout", Layout{CargoNum: 12, PlacesInCargo: 64}, 768},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, tc.layout.Capacity())
        })
    }
}

func TestValidateSeat(t *testing.T) {
    layout := Layout{CargoNum: 4, PlacesInCargo: 20}

    t.Run("accepts free in-range seat", func(t *testing.T) {
        claimed := make(ClaimedSet)
        assert.NoError(t, ValidateSeat(layout, SeatRequest{Cargo: 1, Seat: 1}, claimed))
        assert.NoError(t, ValidateSeat(layout, SeatRequest{Cargo: 4, Seat: 20}, claimed))
    })

    t.Run("rejects out-of-range requests", func(t *testing.T) {
        claimed := make(ClaimedSet)
        cases := []SeatRequest{
            {Cargo: 0, Seat: 1},
            {Cargo: 5, Seat: 1},
            {Cargo: 1, Seat: 0},
            {Cargo: 1, Seat: 21},
            {Cargo: 0, Seat: 0},
        }
        for _, req := range cases {
            err := ValidateSeat(layout, req, claimed)
            assert.ErrorIs(t, err, ErrSeatOutOfRange, "cargo %d seat %d", req.Cargo, req.Seat)
        }
    })

    t.Run("rejects already claimed seat", func(t *testing.T) {
        claimed := make(ClaimedSet)
        claimed.Add(2, 7)
        err := ValidateSeat(layout, SeatRequest{Cargo: 2, Seat: 7}, claimed)
        assert.ErrorIs(t, err, ErrSeatTaken)
    })

    t.Run("range check wins over uniqueness check", func(t *testing.T) {
        // A claimed seat that is also out of range must be reported as
        // out of range.
        claimed := make(ClaimedSet)
        claimed.Add(9, 9)
        err := ValidateSeat(Layout{CargoNum: 2, PlacesInCargo: 5}, SeatRequest{Cargo: 9, Seat: 9}, claimed)
        assert.ErrorIs(t, err, ErrSeatOutOfRange)
    })

    t.Run("catches duplicates within one batch", func(t *testing.T) {
        claimed := make(ClaimedSet)
        batch := []SeatRequest{{Cargo: 1, Seat: 5}, {Cargo: 2, Seat: 5}, {Cargo: 1, Seat: 5}}

        var failedAt int = -1
        for i, req := range batch {
            if err := ValidateSeat(layout, req, claimed); err != nil {
                require.ErrorIs(t, err, ErrSeatTaken)
                failedAt = i
                break
            }
            claimed.Add(req.Cargo, req.Seat)
        }
        assert.Equal(t, 2, failedAt)
    })
}

func TestClaimedSet(t *testing.T) {
    s := make(ClaimedSet)
    assert.False(t, s.Has(1, 1))
    s.Add(1, 1)
    assert.True(t, s.Has(1, 1))
    // Same seat number in a different car stays free.
    assert.False(t, s.Has(2, 1))
}

func TestSeatErrorFormatting(t *testing.T) {
    err := &SeatError{Index: 3, Cargo: 2, Seat: 15, Err: ErrSeatTaken}
    assert.Equal(t, "seat request 3 (cargo 2, seat 15): seat already taken", err.Error())
    assert.ErrorIs(t, err, ErrSeatTaken)
}
