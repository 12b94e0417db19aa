package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/train-station-booking/internal/model"
)

// ErrRouteNotFound is returned when a route lookup fails.
var ErrRouteNotFound = errors.New("route not found")

// RouteRepo provides persistence for routes.  Routes reference two
// stations via foreign keys with ON DELETE CASCADE, so removing a
// station removes its routes.
type RouteRepo struct {
    db *sql.DB
}

// NewRouteRepo constructs a RouteRepo with the given DB handle.
func NewRouteRepo(db *sql.DB) *RouteRepo { return &RouteRepo{db: db} }

// RouteDetail is a route joined with its station names, returned by
// list endpoints.
type RouteDetail struct {
    ID          uint64 `json:"id"`
    Source      string `json:"source"`
    Destination string `json:"destination"`
    Distance    uint32 `json:"distance"`
}

// Create inserts a new route and assigns the generated ID back to the
// struct.  Source and destination existence is enforced by foreign
// keys; the handler validates that they differ and distance is
// positive before calling.
func (r *RouteRepo) Create(ctx context.Context, rt *model.Route) error {
    const q = `INSERT INTO routes (source_id, destination_id, distance) VALUES (?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, rt.SourceID, rt.DestinationID, rt.Distance)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    rt.ID = uint64(id)
    return nil
}

// GetByID retrieves a route by its ID.  It returns ErrRouteNotFound
// when no row matches.
func (r *RouteRepo) GetByID(ctx context.Context, id uint64) (*model.Route, error) {
    const q = `SELECT id, source_id, destination_id, distance FROM routes WHERE id = ?`
    var rt model.Route
    err := r.db.QueryRowContext(ctx, q, id).Scan(&rt.ID, &rt.SourceID, &rt.DestinationID, &rt.Distance)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRouteNotFound
        }
        return nil, err
    }
    return &rt, nil
}

// ListAll returns all routes with their station names resolved,
// ordered by ID.
func (r *RouteRepo) ListAll(ctx context.Context) ([]RouteDetail, error) {
    const q = `SELECT r.id, src.name, dst.name, r.distance
               FROM routes r
               JOIN stations src ON src.id = r.source_id
               JOIN stations dst ON dst.id = r.destination_id
               ORDER BY r.id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]RouteDetail, 0)
    for rows.Next() {
        var d RouteDetail
        if err := rows.Scan(&d.ID, &d.Source, &d.Destination, &d.Distance); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
