package model

import "time"

// Reservation statuses.  Cancellation is a soft state: records are never
// physically deleted, a cancelled reservation stays in the table with its
// status flipped.  There is no transition out of "cancelled".
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Reservation is a booking of one or more attendee slots against an event.
// The Number is the external handle: it is what visitors quote when looking
// up or cancelling a booking.  EventTitle, EventDate and TotalAmount are
// snapshots taken from the event at booking time; later edits to the event
// must not alter them.
//
// Fields:
//  ID             – primary key identifier.
//  Number         – unique human-shareable reservation code (RES-...).
//  EventID        – event being reserved, immutable after creation.
//  EventTitle     – event title frozen at booking time.
//  EventDate      – event date frozen at booking time (UTC).
//  TotalAmount    – event price label frozen at booking time.
//  NumberOfPeople – party size, 1..10 inclusive.
//  Status         – pending | confirmed | cancelled.
type Reservation struct {
	ID             uint64    `json:"-"`
	Number         string    `json:"reservationNumber"` // reservations.reservation_number
	EventID        string    `json:"eventId"`
	EventTitle     string    `json:"eventTitle"`
	EventDate      time.Time `json:"eventDate"`
	TotalAmount    string    `json:"totalAmount"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"` // stored lowercase
	Phone          string    `json:"phone"`
	NumberOfPeople int       `json:"numberOfPeople"`
	Notes          string    `json:"notes,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ReservationFilter narrows reservation listings.  Zero-value fields are
// ignored; both set means both must match.
type ReservationFilter struct {
	Email   string
	EventID string
}
