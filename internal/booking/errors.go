package booking

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNumberExhausted is returned when every generation attempt for a fresh
// reservation number collided with an existing one.  With a millisecond
// timestamp plus four random characters in the code this should never
// happen in practice.
var ErrNumberExhausted = errors.New("could not generate a unique reservation number")

// ValidationError reports the request fields that are missing or out of
// range.  It is never retried; the caller fixes the input and resubmits.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid reservation request: " + strings.Join(e.Fields, ", ")
}

// CapacityError reports that an event cannot take the requested party.
// Remaining carries the number of spots still open so callers can display
// it rather than a bare rejection.
type CapacityError struct {
	EventID   string
	Requested int
	Remaining int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("event %s cannot take %d more people, %d spots remaining",
		e.EventID, e.Requested, e.Remaining)
}
