package model

// TrainType is a name tag grouping trains, e.g. "Express" or
// "Night sleeper".  This struct corresponds to a row in the
// `train_types` table.
//
// Fields:
//  ID   – primary key identifier.
//  Name – unique type name.
type TrainType struct {
    ID   uint64 `json:"id"`   // train_types.id
    Name string `json:"name"` // train_types.name
}

// Train describes a physical train and its seat layout.  CargoNum is
// the number of cars and PlacesInCargo the number of seats per car;
// both are validated positive at creation time.  Total capacity is
// always derived from the layout and never stored, so it cannot
// drift when the layout is updated.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – train name.
//  CargoNum      – number of cars, 1-indexed when addressed by tickets.
//  PlacesInCargo – seats per car, 1-indexed when addressed by tickets.
//  TrainTypeID   – foreign key into train_types.
type Train struct {
    ID            uint64 // trains.id
    Name          string // trains.name
    CargoNum      uint32 // trains.cargo_num
    PlacesInCargo uint32 // trains.places_in_cargo
    TrainTypeID   uint64 // trains.train_type_id
}

// Capacity returns the total number of seats on the train.
func (t Train) Capacity() uint32 {
    return t.CargoNum * t.PlacesInCargo
}
