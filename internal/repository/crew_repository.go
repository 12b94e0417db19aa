package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/train-station-booking/internal/model"
)

// CrewRepo provides persistence for crew members.
type CrewRepo struct {
    db *sql.DB
}

// NewCrewRepo constructs a CrewRepo with the given DB handle.
func NewCrewRepo(db *sql.DB) *CrewRepo { return &CrewRepo{db: db} }

// Create inserts a new crew member and assigns the generated ID back
// to the struct.
func (r *CrewRepo) Create(ctx context.Context, cr *model.Crew) error {
    const q = `INSERT INTO crews (first_name, last_name) VALUES (?, ?)`
    res, err := r.db.ExecContext(ctx, q, cr.FirstName, cr.LastName)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    cr.ID = uint64(id)
    return nil
}

// ListAll returns all crew members ordered by ID.
func (r *CrewRepo) ListAll(ctx context.Context) ([]model.Crew, error) {
    const q = `SELECT id, first_name, last_name FROM crews ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Crew, 0)
    for rows.Next() {
        var cr model.Crew
        if err := rows.Scan(&cr.ID, &cr.FirstName, &cr.LastName); err != nil {
            return nil, err
        }
        out = append(out, cr)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// ExistAll reports whether every ID in the slice references a crew
// member.  Used when assigning crew to a journey.
func (r *CrewRepo) ExistAll(ctx context.Context, ids []uint64) (bool, error) {
    if len(ids) == 0 {
        return true, nil
    }
    q := `SELECT COUNT(*) FROM crews WHERE id IN (`
    args := make([]interface{}, 0, len(ids))
    for i, id := range ids {
        if i > 0 {
            q += ","
        }
        q += "?"
        args = append(args, id)
    }
    q += ")"
    var n int
    if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
        return false, err
    }
    return n == len(ids), nil
}
