package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/iliyamo/train-station-booking/internal/model"
)

// OrderRepo provides persistence for orders and their tickets.
// Orders and tickets are only ever created together inside a caller
// managed transaction; the Tx methods here never commit.
type OrderRepo struct {
    db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying sql.DB for transaction control.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a new order within the scope of an existing
// transaction.  It populates the generated ID and the DB-assigned
// created_at on the provided struct.  The caller must commit or roll
// back the transaction.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.Order) error {
    const q = `INSERT INTO orders (user_id) VALUES (?)`
    res, err := tx.ExecContext(ctx, q, o.UserID)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    o.ID = uint64(id)
    // Query back the row to populate the created_at default.
    const sel = `SELECT id, user_id, created_at FROM orders WHERE id = ?`
    return tx.QueryRowContext(ctx, sel, o.ID).Scan(&o.ID, &o.UserID, &o.CreatedAt)
}

// CreateTicketsBulkTx inserts multiple tickets in a single statement
// within the provided transaction.  Each ticket must carry its
// OrderID and JourneyID.  A unique-key conflict on
// (journey_id, cargo, seat) surfaces as the driver's duplicate-entry
// error; the booking layer translates it.  Passing an empty slice has
// no effect and returns nil.
func (r *OrderRepo) CreateTicketsBulkTx(ctx context.Context, tx *sql.Tx, tickets []model.Ticket) error {
    if len(tickets) == 0 {
        return nil
    }
    query := `INSERT INTO tickets (order_id, journey_id, cargo, seat) VALUES `
    args := make([]interface{}, 0, len(tickets)*4)
    for i, t := range tickets {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?)"
        args = append(args, t.OrderID, t.JourneyID, t.Cargo, t.Seat)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

// TicketsByOrderTx returns the tickets of an order within the
// provided transaction, ordered by ID so the result follows insert
// order.
func (r *OrderRepo) TicketsByOrderTx(ctx context.Context, tx *sql.Tx, orderID uint64) ([]model.Ticket, error) {
    const q = `SELECT id, order_id, journey_id, cargo, seat FROM tickets WHERE order_id = ? ORDER BY id`
    rows, err := tx.QueryContext(ctx, q, orderID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Ticket
    for rows.Next() {
        var t model.Ticket
        if err := rows.Scan(&t.ID, &t.OrderID, &t.JourneyID, &t.Cargo, &t.Seat); err != nil {
            return nil, err
        }
        out = append(out, t)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// OrderTicket is one ticket inside an OrderDetail, with its journey
// resolved to a display label.
type OrderTicket struct {
    ID        uint64    `json:"id"`
    JourneyID uint64    `json:"journey_id"`
    Route     string    `json:"route"`
    TrainName string    `json:"train_name"`
    Departure time.Time `json:"departure_time"`
    Cargo     uint32    `json:"cargo"`
    Seat      uint32    `json:"seat"`
}

// OrderDetail is an order with its tickets, returned by ListByUser
// for display to customers.
type OrderDetail struct {
    ID        uint64        `json:"id"`
    CreatedAt time.Time     `json:"created_at"`
    Tickets   []OrderTicket `json:"tickets"`
}

// CountByUser returns how many orders the user has placed.
func (r *OrderRepo) CountByUser(ctx context.Context, userID uint64) (int64, error) {
    var n int64
    err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = ?`, userID).Scan(&n)
    return n, err
}

// ListByUser returns one page of the user's orders, newest first,
// each populated with its tickets and their journey labels.  Offset
// and limit are computed by the handler from page parameters.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64, offset, limit int) ([]OrderDetail, error) {
    const q = `SELECT id, created_at FROM orders
               WHERE user_id = ?
               ORDER BY created_at DESC, id DESC
               LIMIT ? OFFSET ?`
    rows, err := r.db.QueryContext(ctx, q, userID, limit, offset)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]OrderDetail, 0)
    index := make(map[uint64]int)
    for rows.Next() {
        var d OrderDetail
        if err := rows.Scan(&d.ID, &d.CreatedAt); err != nil {
            return nil, err
        }
        d.Tickets = []OrderTicket{}
        index[d.ID] = len(details)
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(details) == 0 {
        return details, nil
    }

    // Fetch tickets for all orders on the page in one query.
    ids := make([]interface{}, 0, len(details))
    placeholders := make([]string, 0, len(details))
    for _, d := range details {
        ids = append(ids, d.ID)
        placeholders = append(placeholders, "?")
    }
    ticketQ := `SELECT tk.order_id, tk.id, tk.journey_id,
                       CONCAT(src.name, ' -> ', dst.name),
                       t.name, j.departure_time,
                       tk.cargo, tk.seat
                FROM tickets tk
                JOIN journeys j ON j.id = tk.journey_id
                JOIN routes r ON r.id = j.route_id
                JOIN stations src ON src.id = r.source_id
                JOIN stations dst ON dst.id = r.destination_id
                JOIN trains t ON t.id = j.train_id
                WHERE tk.order_id IN (` + strings.Join(placeholders, ",") + `)
                ORDER BY tk.order_id, tk.id`
    trows, err := r.db.QueryContext(ctx, ticketQ, ids...)
    if err != nil {
        return nil, err
    }
    defer trows.Close()
    for trows.Next() {
        var orderID uint64
        var t OrderTicket
        if err := trows.Scan(&orderID, &t.ID, &t.JourneyID, &t.Route, &t.TrainName, &t.Departure, &t.Cargo, &t.Seat); err != nil {
            return nil, err
        }
        if idx, ok := index[orderID]; ok {
            details[idx].Tickets = append(details[idx].Tickets, t)
        }
    }
    if err := trows.Err(); err != nil {
        return nil, err
    }
    return details, nil
}
