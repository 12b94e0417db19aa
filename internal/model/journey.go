package model

import "time"

// Journey is a scheduled run of a train along a route.  It carries a
// departure and arrival time (arrival strictly after departure) and a
// set of assigned crew members.  Tickets reference journeys; the
// number of unsold seats is derived from the train layout and the
// ticket count, never stored.
//
// Fields:
//  ID            – primary key identifier.
//  RouteID       – route being travelled.
//  TrainID       – train operating the journey.
//  DepartureTime – scheduled departure (UTC).
//  ArrivalTime   – scheduled arrival (UTC), after DepartureTime.
type Journey struct {
    ID            uint64    // journeys.id
    RouteID       uint64    // journeys.route_id
    TrainID       uint64    // journeys.train_id
    DepartureTime time.Time // journeys.departure_time
    ArrivalTime   time.Time // journeys.arrival_time
}
