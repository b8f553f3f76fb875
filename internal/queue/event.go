// Package queue defines the message payloads exchanged over the broker and
// the background consumer that processes them.
package queue

// Queue names.  Both queues are declared durable so messages survive broker
// restarts.
const (
	ConfirmedQueue = "reservation.confirmed"
	CancelledQueue = "reservation.cancelled"
)

// ReservationConfirmedEvent is published after a booking is persisted.  It
// carries the snapshot fields so downstream consumers (logging, email) need
// not query the primary database.
type ReservationConfirmedEvent struct {
	Number         string `json:"reservation_number"`
	EventID        string `json:"event_id"`
	EventTitle     string `json:"event_title"`
	EventDate      string `json:"event_date"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	NumberOfPeople int    `json:"number_of_people"`
	TotalAmount    string `json:"total_amount"`
	ConfirmedAt    string `json:"confirmed_at"`
}

// ReservationCancelledEvent is published after a reservation is cancelled.
type ReservationCancelledEvent struct {
	Number      string `json:"reservation_number"`
	EventID     string `json:"event_id"`
	EventTitle  string `json:"event_title"`
	Email       string `json:"email"`
	CancelledAt string `json:"cancelled_at"`
}
