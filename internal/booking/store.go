package booking

import (
	"context"

	"github.com/nkoreli/museum-reservations/internal/model"
)

// Store is the persistence contract for reservations.  Any backing store
// satisfying it is compliant: the MySQL repository in production, an
// in-memory fake in tests.  Implementations return the sentinel errors from
// the model package (ErrReservationNotFound, ErrDuplicateNumber).
type Store interface {
	// Create persists a new reservation and fails with
	// model.ErrDuplicateNumber when the reservation number already exists.
	Create(ctx context.Context, res *model.Reservation) error
	// GetByNumber returns a reservation or model.ErrReservationNotFound.
	GetByNumber(ctx context.Context, number string) (*model.Reservation, error)
	// ListByFilter returns matching reservations newest first; a
	// non-positive limit defaults to 100 records.
	ListByFilter(ctx context.Context, f model.ReservationFilter, limit int) ([]model.Reservation, error)
	// ListActiveByEvent returns the non-cancelled reservations of an event
	// for capacity accounting.
	ListActiveByEvent(ctx context.Context, eventID string) ([]model.Reservation, error)
	// UpdateStatus sets the status and returns the updated record.
	UpdateStatus(ctx context.Context, number, status string) (*model.Reservation, error)
	// UpdateFields applies pre-filtered column/value pairs verbatim and
	// returns the updated record.
	UpdateFields(ctx context.Context, number string, fields map[string]any) (*model.Reservation, error)
}

// EventLookup resolves events for admission control and snapshotting.  The
// event catalogue is owned by another subsystem; the booking service only
// ever reads from it.
type EventLookup interface {
	GetByID(ctx context.Context, id string) (*model.Event, error)
}
