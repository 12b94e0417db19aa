// Package repository contains the data access layer.  Each repository
// wraps a *sql.DB and exposes typed queries for one entity.  Methods
// suffixed Tx operate inside a caller-supplied transaction; the caller
// commits or rolls back.
package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/train-station-booking/internal/model"
)

// ErrStationNotFound is returned when a station lookup fails.
var ErrStationNotFound = errors.New("station not found")

// StationRepo provides persistence for stations.
type StationRepo struct {
    db *sql.DB
}

// NewStationRepo constructs a StationRepo with the given DB handle.
func NewStationRepo(db *sql.DB) *StationRepo { return &StationRepo{db: db} }

// Create inserts a new station and assigns the generated ID back to
// the struct.
func (r *StationRepo) Create(ctx context.Context, s *model.Station) error {
    const q = `INSERT INTO stations (name, latitude, longitude) VALUES (?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, s.Name, s.Latitude, s.Longitude)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    s.ID = uint64(id)
    return nil
}

// GetByID retrieves a station by its ID.  It returns
// ErrStationNotFound when no row matches.
func (r *StationRepo) GetByID(ctx context.Context, id uint64) (*model.Station, error) {
    const q = `SELECT id, name, latitude, longitude FROM stations WHERE id = ?`
    var s model.Station
    err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrStationNotFound
        }
        return nil, err
    }
    return &s, nil
}

// ListAll returns all stations ordered by ID.
func (r *StationRepo) ListAll(ctx context.Context) ([]model.Station, error) {
    const q = `SELECT id, name, latitude, longitude FROM stations ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Station, 0)
    for rows.Next() {
        var s model.Station
        if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
