package model

import "time"

// Event represents a scheduled museum activity: a guided tour, a workshop,
// a temporary exhibition opening.  Capacity is the maximum total attendee
// count across all non-cancelled reservations; a nil capacity means the
// event is unlimited.  Price is a display label ("Free", "12 EUR"), not an
// amount this service computes with.
//
// Fields:
//  ID        – public string identifier (EVT-...).
//  Date      – when the event takes place (UTC).
//  Capacity  – optional attendee limit; nil = unlimited.
type Event struct {
	ID          string    `json:"id"` // events.id
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location,omitempty"`
	Price       string    `json:"price"`
	Capacity    *int      `json:"capacity,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
