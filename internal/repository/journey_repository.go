package repository

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/iliyamo/train-station-booking/internal/model"
)

// ErrJourneyNotFound is returned when a journey lookup fails.
var ErrJourneyNotFound = errors.New("journey not found")

// ErrNegativeAvailability signals that more tickets exist for a
// journey than its train has seats.  This cannot happen while the
// tickets unique key is in place; reads surface it instead of
// clamping so the data problem is visible.
var ErrNegativeAvailability = errors.New("tickets sold exceed train capacity")

// JourneyRepo provides persistence for journeys, their crew
// assignments and the derived availability numbers.  Journey rows own
// tickets; the tickets table carries a UNIQUE KEY on
// (journey_id, cargo, seat) which this repository relies on when
// reading claimed seats for booking.
type JourneyRepo struct {
    db *sql.DB
}

// NewJourneyRepo constructs a JourneyRepo with the given DB handle.
func NewJourneyRepo(db *sql.DB) *JourneyRepo { return &JourneyRepo{db: db} }

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning multiple repositories.
func (r *JourneyRepo) DB() *sql.DB { return r.db }

// JourneySummary is one row of the journey list: route and train
// resolved to display names, crew flattened to full names and
// TicketsAvailable derived as capacity minus sold tickets.
type JourneySummary struct {
    ID               uint64    `json:"id"`
    Route            string    `json:"route"`
    TrainName        string    `json:"train_name"`
    DepartureTime    time.Time `json:"departure_time"`
    ArrivalTime      time.Time `json:"arrival_time"`
    Crew             []string  `json:"crew"`
    TicketsAvailable int64     `json:"tickets_available"`
}

// JourneyDetail is the full journey view with nested route and train
// plus the list of already claimed seats.
type JourneyDetail struct {
    ID            uint64      `json:"id"`
    Route         RouteDetail `json:"route"`
    Train         TrainDetail `json:"train"`
    DepartureTime time.Time   `json:"departure_time"`
    ArrivalTime   time.Time   `json:"arrival_time"`
    Crew          []model.Crew `json:"crew"`
    TakenPlaces   []TakenSeat  `json:"taken_places"`
}

// TakenSeat is a claimed (cargo, seat) pair on a journey.
type TakenSeat struct {
    Cargo uint32 `json:"cargo"`
    Seat  uint32 `json:"seat"`
}

// Create inserts a journey and its crew assignments atomically.  The
// generated ID is assigned back to the struct.  Route and train
// existence is enforced by foreign keys; the handler validates the
// time ordering and crew IDs before calling.
func (r *JourneyRepo) Create(ctx context.Context, j *model.Journey, crewIDs []uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const q = `INSERT INTO journeys (route_id, train_id, departure_time, arrival_time) VALUES (?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, j.RouteID, j.TrainID, j.DepartureTime.UTC(), j.ArrivalTime.UTC())
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    j.ID = uint64(id)

    if len(crewIDs) > 0 {
        ins := `INSERT INTO journey_crew (journey_id, crew_id) VALUES `
        args := make([]interface{}, 0, len(crewIDs)*2)
        for i, cid := range crewIDs {
            if i > 0 {
                ins += ","
            }
            ins += "(?, ?)"
            args = append(args, j.ID, cid)
        }
        if _, err := tx.ExecContext(ctx, ins, args...); err != nil {
            return err
        }
    }

    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// List returns journey summaries ordered by departure time.  When
// departureDate is non-zero, only journeys departing on that calendar
// day (UTC) are returned.  When trainID is non-zero, only journeys of
// that train are returned.  TicketsAvailable is computed in the query
// as capacity minus the ticket count, mirroring how availability is
// derived everywhere else; a negative value aborts the listing with
// ErrNegativeAvailability rather than leaking bad counts to clients.
func (r *JourneyRepo) List(ctx context.Context, departureDate time.Time, trainID uint64) ([]JourneySummary, error) {
    q := `SELECT j.id,
                 CONCAT(src.name, ' -> ', dst.name),
                 t.name,
                 j.departure_time, j.arrival_time,
                 t.cargo_num * t.places_in_cargo - COUNT(tk.id)
          FROM journeys j
          JOIN routes r ON r.id = j.route_id
          JOIN stations src ON src.id = r.source_id
          JOIN stations dst ON dst.id = r.destination_id
          JOIN trains t ON t.id = j.train_id
          LEFT JOIN tickets tk ON tk.journey_id = j.id`
    var conds []string
    var args []interface{}
    if !departureDate.IsZero() {
        conds = append(conds, "DATE(j.departure_time) = ?")
        args = append(args, departureDate.UTC().Format("2006-01-02"))
    }
    if trainID != 0 {
        conds = append(conds, "j.train_id = ?")
        args = append(args, trainID)
    }
    if len(conds) > 0 {
        q += " WHERE " + strings.Join(conds, " AND ")
    }
    q += " GROUP BY j.id, src.name, dst.name, t.name, j.departure_time, j.arrival_time, t.cargo_num, t.places_in_cargo"
    q += " ORDER BY j.departure_time, j.id"

    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    summaries := make([]JourneySummary, 0)
    index := make(map[uint64]int)
    for rows.Next() {
        var s JourneySummary
        if err := rows.Scan(&s.ID, &s.Route, &s.TrainName, &s.DepartureTime, &s.ArrivalTime, &s.TicketsAvailable); err != nil {
            return nil, err
        }
        if s.TicketsAvailable < 0 {
            return nil, fmt.Errorf("journey %d: %w", s.ID, ErrNegativeAvailability)
        }
        s.Crew = []string{}
        index[s.ID] = len(summaries)
        summaries = append(summaries, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(summaries) == 0 {
        return summaries, nil
    }

    // Populate crew names for all journeys in a single query.
    ids := make([]interface{}, 0, len(summaries))
    placeholders := make([]string, 0, len(summaries))
    for _, s := range summaries {
        ids = append(ids, s.ID)
        placeholders = append(placeholders, "?")
    }
    crewQ := `SELECT jc.journey_id, CONCAT(c.first_name, ' ', c.last_name)
              FROM journey_crew jc
              JOIN crews c ON c.id = jc.crew_id
              WHERE jc.journey_id IN (` + strings.Join(placeholders, ",") + `)
              ORDER BY jc.journey_id, c.id`
    crows, err := r.db.QueryContext(ctx, crewQ, ids...)
    if err != nil {
        return nil, err
    }
    defer crows.Close()
    for crows.Next() {
        var jid uint64
        var name string
        if err := crows.Scan(&jid, &name); err != nil {
            return nil, err
        }
        if idx, ok := index[jid]; ok {
            summaries[idx].Crew = append(summaries[idx].Crew, name)
        }
    }
    if err := crows.Err(); err != nil {
        return nil, err
    }
    return summaries, nil
}

// GetByID returns the full journey detail including the nested route,
// train with derived capacity, crew members and every claimed seat.
// It returns ErrJourneyNotFound when the journey does not exist.
func (r *JourneyRepo) GetByID(ctx context.Context, id uint64) (*JourneyDetail, error) {
    const q = `SELECT j.id, j.departure_time, j.arrival_time,
                      r.id, src.name, dst.name, r.distance,
                      t.id, t.name, t.cargo_num, t.places_in_cargo, tt.name
               FROM journeys j
               JOIN routes r ON r.id = j.route_id
               JOIN stations src ON src.id = r.source_id
               JOIN stations dst ON dst.id = r.destination_id
               JOIN trains t ON t.id = j.train_id
               JOIN train_types tt ON tt.id = t.train_type_id
               WHERE j.id = ?`
    var d JourneyDetail
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &d.ID, &d.DepartureTime, &d.ArrivalTime,
        &d.Route.ID, &d.Route.Source, &d.Route.Destination, &d.Route.Distance,
        &d.Train.ID, &d.Train.Name, &d.Train.CargoNum, &d.Train.PlacesInCargo, &d.Train.TrainType,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrJourneyNotFound
        }
        return nil, err
    }
    d.Train.Capacity = d.Train.CargoNum * d.Train.PlacesInCargo

    d.Crew = []model.Crew{}
    const crewQ = `SELECT c.id, c.first_name, c.last_name
                   FROM journey_crew jc
                   JOIN crews c ON c.id = jc.crew_id
                   WHERE jc.journey_id = ?
                   ORDER BY c.id`
    crows, err := r.db.QueryContext(ctx, crewQ, d.ID)
    if err != nil {
        return nil, err
    }
    defer crows.Close()
    for crows.Next() {
        var cr model.Crew
        if err := crows.Scan(&cr.ID, &cr.FirstName, &cr.LastName); err != nil {
            return nil, err
        }
        d.Crew = append(d.Crew, cr)
    }
    if err := crows.Err(); err != nil {
        return nil, err
    }

    d.TakenPlaces = []TakenSeat{}
    const seatQ = `SELECT cargo, seat FROM tickets WHERE journey_id = ? ORDER BY cargo, seat`
    srows, err := r.db.QueryContext(ctx, seatQ, d.ID)
    if err != nil {
        return nil, err
    }
    defer srows.Close()
    for srows.Next() {
        var ts TakenSeat
        if err := srows.Scan(&ts.Cargo, &ts.Seat); err != nil {
            return nil, err
        }
        d.TakenPlaces = append(d.TakenPlaces, ts)
    }
    if err := srows.Err(); err != nil {
        return nil, err
    }
    return &d, nil
}

// TrainLayoutTx loads the cargo/seat layout of the journey's train
// inside the caller's transaction.  It returns ErrJourneyNotFound
// when the journey does not exist.
func (r *JourneyRepo) TrainLayoutTx(ctx context.Context, tx *sql.Tx, journeyID uint64) (cargoNum, placesInCargo uint32, err error) {
    const q = `SELECT t.cargo_num, t.places_in_cargo
               FROM journeys j
               JOIN trains t ON t.id = j.train_id
               WHERE j.id = ?`
    err = tx.QueryRowContext(ctx, q, journeyID).Scan(&cargoNum, &placesInCargo)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return 0, 0, ErrJourneyNotFound
        }
        return 0, 0, err
    }
    return cargoNum, placesInCargo, nil
}

// TakenSeatsTx returns all claimed (cargo, seat) pairs for the
// journey, locking the rows with FOR UPDATE so concurrent bookings
// for the same journey serialize on the claimed-seat read.  The
// unique key on tickets remains the durable backstop for writers the
// lock does not cover (phantom inserts).
func (r *JourneyRepo) TakenSeatsTx(ctx context.Context, tx *sql.Tx, journeyID uint64) ([]TakenSeat, error) {
    const q = `SELECT cargo, seat FROM tickets WHERE journey_id = ? FOR UPDATE`
    rows, err := tx.QueryContext(ctx, q, journeyID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []TakenSeat
    for rows.Next() {
        var ts TakenSeat
        if err := rows.Scan(&ts.Cargo, &ts.Seat); err != nil {
            return nil, err
        }
        out = append(out, ts)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// CapacityAndSold returns the train capacity of the journey and the
// number of tickets persisted against it, both read in one query so
// the two numbers are consistent.  It returns ErrJourneyNotFound when
// the journey does not exist.
func (r *JourneyRepo) CapacityAndSold(ctx context.Context, journeyID uint64) (capacity uint32, sold int64, err error) {
    const q = `SELECT t.cargo_num * t.places_in_cargo,
                      (SELECT COUNT(*) FROM tickets tk WHERE tk.journey_id = j.id)
               FROM journeys j
               JOIN trains t ON t.id = j.train_id
               WHERE j.id = ?`
    err = r.db.QueryRowContext(ctx, q, journeyID).Scan(&capacity, &sold)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return 0, 0, ErrJourneyNotFound
        }
        return 0, 0, err
    }
    return capacity, sold, nil
}
