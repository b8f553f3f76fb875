// Package model holds the domain types shared by the repository, booking
// and handler layers, together with the sentinel errors those layers use
// to signal well-known failure scenarios.  Keeping the sentinels next to
// the types lets any store implementation satisfy the booking contracts
// without importing the MySQL layer.
package model

import "errors"

// ErrEventNotFound indicates that no event exists with the given ID.
var ErrEventNotFound = errors.New("event not found")

// ErrReservationNotFound indicates that no reservation exists with the
// given reservation number.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrDuplicateNumber is returned by a store when the reservation number of
// a new record collides with an existing one.  The booking service reacts
// by regenerating the number a bounded number of times.
var ErrDuplicateNumber = errors.New("reservation number already exists")

// ErrConflict signals that an operation cannot proceed because of dependent
// records, such as deleting an event that still has active reservations.
// Handlers translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrEmailExists indicates a back-office account with that email already exists.
var ErrEmailExists = errors.New("email already exists")
