// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderConfirmedEvent is published when an order is successfully
// placed.  It contains enough information for downstream consumers to
// log, notify or trigger analytics without querying the primary
// database.
type OrderConfirmedEvent struct {
    OrderID     uint64   `json:"order_id"`
    UserID      uint64   `json:"user_id"`
    JourneyID   uint64   `json:"journey_id"`
    Route       string   `json:"route"`
    TrainName   string   `json:"train_name"`
    Departure   string   `json:"departure_time"`
    Seats       []string `json:"seats"`
    ConfirmedAt string   `json:"confirmed_at"`
}
