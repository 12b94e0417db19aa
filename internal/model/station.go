package model

// Station represents a railway station as stored in the `stations`
// table.  Stations are referenced by routes as sources and
// destinations.  Coordinates are plain WGS84 degrees.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – human readable station name.
//  Latitude  – geographic latitude in degrees.
//  Longitude – geographic longitude in degrees.
type Station struct {
    ID        uint64  `json:"id"`        // stations.id
    Name      string  `json:"name"`      // stations.name
    Latitude  float64 `json:"latitude"`  // stations.latitude
    Longitude float64 `json:"longitude"` // stations.longitude
}
