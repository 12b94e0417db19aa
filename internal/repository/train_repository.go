package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/train-station-booking/internal/model"
)

// ErrTrainNotFound is returned when a train lookup fails.
var ErrTrainNotFound = errors.New("train not found")

// ErrTrainTypeNotFound is returned when a train type lookup fails.
var ErrTrainTypeNotFound = errors.New("train type not found")

// TrainRepo provides persistence for trains and their types.
type TrainRepo struct {
    db *sql.DB
}

// NewTrainRepo constructs a TrainRepo with the given DB handle.
func NewTrainRepo(db *sql.DB) *TrainRepo { return &TrainRepo{db: db} }

// TrainDetail is a train joined with its type name.  Capacity is the
// derived seat count; it is computed from the layout columns on every
// read and never stored.
type TrainDetail struct {
    ID            uint64 `json:"id"`
    Name          string `json:"name"`
    CargoNum      uint32 `json:"cargo_num"`
    PlacesInCargo uint32 `json:"places_in_cargo"`
    TrainType     string `json:"train_type"`
    Capacity      uint32 `json:"capacity"`
}

// CreateType inserts a new train type and assigns the generated ID
// back to the struct.
func (r *TrainRepo) CreateType(ctx context.Context, tt *model.TrainType) error {
    const q = `INSERT INTO train_types (name) VALUES (?)`
    res, err := r.db.ExecContext(ctx, q, tt.Name)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    tt.ID = uint64(id)
    return nil
}

// ListTypes returns all train types ordered by ID.
func (r *TrainRepo) ListTypes(ctx context.Context) ([]model.TrainType, error) {
    const q = `SELECT id, name FROM train_types ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.TrainType, 0)
    for rows.Next() {
        var tt model.TrainType
        if err := rows.Scan(&tt.ID, &tt.Name); err != nil {
            return nil, err
        }
        out = append(out, tt)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Create inserts a new train and assigns the generated ID back to the
// struct.  The handler validates cargo_num and places_in_cargo as
// positive before calling; the referenced train type is enforced by a
// foreign key.
func (r *TrainRepo) Create(ctx context.Context, t *model.Train) error {
    const q = `INSERT INTO trains (name, cargo_num, places_in_cargo, train_type_id) VALUES (?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, t.Name, t.CargoNum, t.PlacesInCargo, t.TrainTypeID)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    t.ID = uint64(id)
    return nil
}

// GetByID retrieves a train with its type name.  It returns
// ErrTrainNotFound when no row matches.
func (r *TrainRepo) GetByID(ctx context.Context, id uint64) (*TrainDetail, error) {
    const q = `SELECT t.id, t.name, t.cargo_num, t.places_in_cargo, tt.name
               FROM trains t
               JOIN train_types tt ON tt.id = t.train_type_id
               WHERE t.id = ?`
    var d TrainDetail
    err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.Name, &d.CargoNum, &d.PlacesInCargo, &d.TrainType)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrTrainNotFound
        }
        return nil, err
    }
    d.Capacity = d.CargoNum * d.PlacesInCargo
    return &d, nil
}

// List returns trains joined with their type names.  When name is
// non-empty, only trains whose name contains it (case-insensitive via
// collation) are returned.  When typeIDs is non-empty, only trains of
// those types are returned.
func (r *TrainRepo) List(ctx context.Context, name string, typeIDs []uint64) ([]TrainDetail, error) {
    q := `SELECT t.id, t.name, t.cargo_num, t.places_in_cargo, tt.name
          FROM trains t
          JOIN train_types tt ON tt.id = t.train_type_id`
    var conds []string
    var args []interface{}
    if name != "" {
        conds = append(conds, "t.name LIKE ?")
        args = append(args, "%"+name+"%")
    }
    if len(typeIDs) > 0 {
        placeholders := make([]string, len(typeIDs))
        for i, id := range typeIDs {
            placeholders[i] = "?"
            args = append(args, id)
        }
        conds = append(conds, "t.train_type_id IN ("+strings.Join(placeholders, ",")+")")
    }
    if len(conds) > 0 {
        q += " WHERE " + strings.Join(conds, " AND ")
    }
    q += " ORDER BY t.id"

    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]TrainDetail, 0)
    for rows.Next() {
        var d TrainDetail
        if err := rows.Scan(&d.ID, &d.Name, &d.CargoNum, &d.PlacesInCargo, &d.TrainType); err != nil {
            return nil, err
        }
        d.Capacity = d.CargoNum * d.PlacesInCargo
        out = append(out, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
