package model

// Route connects two stations in one direction.  Source and
// destination must be different stations.  Deleting a station
// cascades to its routes via foreign keys.
//
// Fields:
//  ID            – primary key identifier.
//  SourceID      – station the route departs from.
//  DestinationID – station the route arrives at.
//  Distance      – route length in kilometres (positive).
type Route struct {
    ID            uint64 `json:"id"`             // routes.id
    SourceID      uint64 `json:"source_id"`      // routes.source_id
    DestinationID uint64 `json:"destination_id"` // routes.destination_id
    Distance      uint32 `json:"distance"`       // routes.distance
}
