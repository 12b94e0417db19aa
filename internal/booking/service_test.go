package booking

import (
    "context"
    "database/sql"
    "errors"
    "regexp"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/train-station-booking/internal/repository"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    svc := NewService(db, repository.NewJourneyRepo(db), repository.NewOrderRepo(db))
    return svc, mock
}

func TestPlaceOrder(t *testing.T) {
    const (
        userID    = uint64(7)
        journeyID = uint64(3)
    )

    layoutQ := regexp.QuoteMeta("SELECT t.cargo_num, t.places_in_cargo")
    takenQ := regexp.QuoteMeta("SELECT cargo, seat FROM tickets WHERE journey_id = ? FOR UPDATE")
    insertOrderQ := regexp.QuoteMeta("INSERT INTO orders (user_id) VALUES (?)")
    selectOrderQ := regexp.QuoteMeta("SELECT id, user_id, created_at FROM orders WHERE id = ?")
    insertTicketsQ := regexp.QuoteMeta("INSERT INTO tickets (order_id, journey_id, cargo, seat) VALUES")
    selectTicketsQ := regexp.QuoteMeta("SELECT id, order_id, journey_id, cargo, seat FROM tickets WHERE order_id = ?")

    t.Run("creates order and tickets atomically", func(t *testing.T) {
        svc, mock := newTestService(t)
        createdAt := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

        mock.ExpectBegin()
        mock.ExpectQuery(layoutQ).WithArgs(journeyID).
            WillReturnRows(sqlmock.NewRows([]string{"cargo_num", "places_in_cargo"}).AddRow(4, 20))
        mock.ExpectQuery(takenQ).WithArgs(journeyID).
            WillReturnRows(sqlmock.NewRows([]string{"cargo", "seat"}).AddRow(2, 1))
        mock.ExpectExec(insertOrderQ).WithArgs(userID).
            WillReturnResult(sqlmock.NewResult(41, 1))
        mock.ExpectQuery(selectOrderQ).WithArgs(uint64(41)).
            WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).AddRow(41, userID, createdAt))
        mock.ExpectExec(insertTicketsQ).
            WithArgs(uint64(41), journeyID, uint32(1), uint32(5), uint64(41), journeyID, uint32(1), uint32(6)).
            WillReturnResult(sqlmock.NewResult(100, 2))
        mock.ExpectQuery(selectTicketsQ).WithArgs(uint64(41)).
            WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "journey_id", "cargo", "seat"}).
                AddRow(100, 41, journeyID, 1, 5).
                AddRow(101, 41, journeyID, 1, 6))
        mock.ExpectCommit()

        placed, err := svc.PlaceOrder(context.Background(), userID, journeyID, []SeatRequest{
            {Cargo: 1, Seat: 5},
            {Cargo: 1, Seat: 6},
        })
        require.NoError(t, err)
        assert.Equal(t, uint64(41), placed.OrderID)
        assert.Equal(t, userID, placed.UserID)
        assert.Equal(t, journeyID, placed.JourneyID)
        assert.Equal(t, createdAt, placed.CreatedAt)
        require.Len(t, placed.Tickets, 2)
        assert.Equal(t, uint32(5), placed.Tickets[0].Seat)
        assert.Equal(t, uint32(6), placed.Tickets[1].Seat)
        assert.NoError(t, mock.ExpectationsWereMet())
    })

    t.Run("rejects empty order without touching the database", func(t *testing.T) {
        svc, mock := newTestService(t)
        _, err := svc.PlaceOrder(context.Background(), userID, journeyID, nil)
        assert.ErrorIs(t, err, ErrNoSeats)
        assert.NoError(t, mock.ExpectationsWereMet())
    })

    t.Run("unknown journey", func(t *testing.T) {
        svc, mock := newTestService(t)
        mock.ExpectBegin()
        mock.ExpectQuery(layoutQ).WithArgs(journeyID).WillReturnError(sql.ErrNoRows)
        mock.ExpectRollback()

        _, err := svc.PlaceOrder(context.Background(), userID, journeyID, []SeatRequest{{Cargo: 1, Seat: 1}})
        assert.ErrorIs(t, err, repository.ErrJourneyNotFound)
        assert.NoError(t, mock.ExpectationsWereMet())
    })

    t.Run("out-of-range seat rolls everything back", func(t *testing.T) {
        svc, mock := newTestService(t)
        mock.ExpectBegin()
        mock.ExpectQuery(layoutQ).WithArgs(journeyID).
            WillReturnRows(sqlmock.NewRows([]string{"cargo_num", "places_in_cargo"}).AddRow(2, 10))
        mock.ExpectQuery(takenQ).WithArgs(journeyID).
            WillReturnRows(sqlmock.NewRows([]string{"cargo", "seat"}))
        mock.ExpectRollback()

        _, err := svc.PlaceOrder(context.Background(), userID, journeyID, []SeatRequest{
            {Cargo: 1, Seat: 10},
            {Cargo: 3, Seat: 1},
        })
        var seatErr *SeatError
        require.ErrorAs(t, err, &seatErr)
        assert.Equal(t, 1, seatErr.Index)
        assert.Equal(t, uint32(3), seatErr.Cargo)
        assert.ErrorIs(t, seatErr.Err, ErrSeatOutOfRange)
        assert.NoError(t, mock.ExpectationsWereMet())
    })

    t.Run("seat claimed by an earlier order", func(t *testing.T) {
        svc, mock := newTestService(t)
        mock.ExpectBegin()
        mock.ExpectQuery(layoutQ).WithArgs(journeyID).
            WillReturnRows(sqlmock.NewRows([]string{"cargo_num", "places_in_cargo"}).AddRow(4, 20))
        mock.ExpectQuery(takenQ).WithArgs(journeyID).
            WillReturnRows(sqlmock.NewRows([]string{"cargo", "seat"}).AddRow(1, 5))
        mock.ExpectRollback()

        _, err := svc.PlaceOrder(context.Background(), userID, journeyID, []SeatRequest{{Cargo: 1, Seat: 5}})
        var seatErr *SeatError
        require.ErrorAs(t, err, &seatErr)
        assert.Equal(t, 0, seatErr.Index)
        assert.ErrorIs(t, err, ErrSeatTaken)
        assert.NoError(t, mock.ExpectationsWereMet())
    })

    t.Run("duplicate seat repeated inside the order", func(t *testing.T) {
        svc, mock := newTestService(t)
        mock.ExpectBegin()
        mock.ExpectQuery(layoutQ).WithArgs(journeyID).
            WillReturnRows(sqlmock.NewRows([]string{"cargo_num", "places_in_cargo"}).AddRow(4, 20))
        mock.ExpectQuery(takenQ).WithArgs(journeyID).
            WillReturnRows(sqlmock.NewRows([]string{"cargo", "seat"}))
        mock.ExpectRollback()

        _, err := svc.PlaceOrder(context.Background(), userID, journeyID, []SeatRequest{
            {Cargo: 2, Seat: 2},
            {Cargo: 2, Seat: 2},
        })
        var seatErr *SeatError
        require.ErrorAs(t, err, &seatErr)
        assert.Equal(t, 1, seatErr.Index)
        assert.ErrorIs(t, seatErr.Err, ErrSeatTaken)
        assert.NoError(t, mock.ExpectationsWereMet())
    })

    t.Run("unique key conflict from a concurrent order", func(t *testing.T) {
        svc, mock := newTestService(t)
        createdAt := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

        mock.ExpectBegin()
        mock.ExpectQuery(layoutQ).WithArgs(journeyID).
            WillReturnRows(sqlmock.NewRows([]string{"cargo_num", "places_in_cargo"}).AddRow(4, 20))
        mock.ExpectQuery(takenQ).WithArgs(journeyID).
            WillReturnRows(sqlmock.NewRows([]string{"cargo", "seat"}))
        mock.ExpectExec(insertOrderQ).WithArgs(userID).
            WillReturnResult(sqlmock.NewResult(42, 1))
        mock.ExpectQuery(selectOrderQ).WithArgs(uint64(42)).
            WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).AddRow(42, userID, createdAt))
        mock.ExpectExec(insertTicketsQ).
            WithArgs(uint64(42), journeyID, uint32(1), uint32(5)).
            WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '3-1-5' for key 'tickets.uniq_journey_cargo_seat'"))
        mock.ExpectRollback()

        _, err := svc.PlaceOrder(context.Background(), userID, journeyID, []SeatRequest{{Cargo: 1, Seat: 5}})
        assert.ErrorIs(t, err, ErrSeatTaken)
        assert.NoError(t, mock.ExpectationsWereMet())
    })
}

func TestAvailableSeats(t *testing.T) {
    const journeyID = uint64(3)
    capQ := regexp.QuoteMeta("SELECT t.cargo_num * t.places_in_cargo")

    t.Run("capacity minus sold", func(t *testing.T) {
        svc, mock := newTestService(t)
        mock.ExpectQuery(capQ).WithArgs(journeyID).
            WillReturnRows(sqlmock.NewRows([]string{"capacity", "sold"}).AddRow(80, 3))

        got, err := svc.AvailableSeats(context.Background(), journeyID)
        require.NoError(t, err)
        assert.Equal(t, int64(77), got)
        assert.NoError(t, mock.ExpectationsWereMet())
    })

    t.Run("read is idempotent", func(t *testing.T) {
        svc, mock := newTestService(t)
        for i := 0; i < 2; i++ {
            mock.ExpectQuery(capQ).WithArgs(journeyID).
                WillReturnRows(sqlmock.NewRows([]string{"capacity", "sold"}).AddRow(80, 3))
        }
        first, err := svc.AvailableSeats(context.Background(), journeyID)
        require.NoError(t, err)
        second, err := svc.AvailableSeats(context.Background(), journeyID)
        require.NoError(t, err)
        assert.Equal(t, first, second)
        assert.NoError(t, mock.ExpectationsWereMet())
    })

    t.Run("sold out journey reports zero", func(t *testing.T) {
        svc, mock := newTestService(t)
        mock.ExpectQuery(capQ).WithArgs(journeyID).
            WillReturnRows(sqlmock.NewRows([]string{"capacity", "sold"}).AddRow(80, 80))

        got, err := svc.AvailableSeats(context.Background(), journeyID)
        require.NoError(t, err)
        assert.Equal(t, int64(0), got)
    })

    t.Run("oversold journey is an error, not a clamp", func(t *testing.T) {
        svc, mock := newTestService(t)
        mock.ExpectQuery(capQ).WithArgs(journeyID).
            WillReturnRows(sqlmock.NewRows([]string{"capacity", "sold"}).AddRow(80, 81))

        _, err := svc.AvailableSeats(context.Background(), journeyID)
        assert.ErrorIs(t, err, ErrNegativeAvailability)
    })

    t.Run("unknown journey", func(t *testing.T) {
        svc, mock := newTestService(t)
        mock.ExpectQuery(capQ).WithArgs(journeyID).WillReturnError(sql.ErrNoRows)

        _, err := svc.AvailableSeats(context.Background(), journeyID)
        assert.ErrorIs(t, err, repository.ErrJourneyNotFound)
    })
}
