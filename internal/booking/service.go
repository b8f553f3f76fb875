// Package booking implements the reservation ledger: admission control
// against event capacity, reservation number generation, and the guarded
// lifecycle (confirmed -> cancelled, restricted amendments).  It talks to
// persistence only through the Store and EventLookup contracts so the MySQL
// layer and the tests can supply their own implementations.
package booking

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/nkoreli/museum-reservations/internal/model"
	"github.com/nkoreli/museum-reservations/internal/utils"
)

const (
	numberPrefix = "RES-"
	// createAttempts bounds how often a colliding reservation number is
	// regenerated before giving up.  This is the only retry in the core.
	createAttempts = 5
	minParty       = 1
	maxParty       = 10
)

// Request carries the visitor input for a new reservation.  The JSON tags
// match the public booking endpoint body.
type Request struct {
	EventID        string `json:"eventId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	NumberOfPeople int    `json:"numberOfPeople"`
	Notes          string `json:"notes"`
}

// Notifier receives lifecycle events after the store write has succeeded.
// Implementations must not block the request path; failures are theirs to
// log and swallow.
type Notifier interface {
	ReservationConfirmed(ctx context.Context, res *model.Reservation)
	ReservationCancelled(ctx context.Context, res *model.Reservation)
}

// Service orchestrates validation, admission control, number generation and
// persistence for reservations.
type Service struct {
	store    Store
	events   EventLookup
	notifier Notifier       // optional
	gen      func() string  // reservation number generator, swappable in tests
}

// NewService builds a Service.  The notifier may be nil.
func NewService(store Store, events EventLookup, notifier Notifier) *Service {
	return &Service{
		store:    store,
		events:   events,
		notifier: notifier,
		gen:      func() string { return utils.NewCode(numberPrefix) },
	}
}

// Book creates a reservation for an event.  It validates the visitor
// fields, resolves the event, runs admission control when the event has a
// capacity, and persists the record with a freshly generated number,
// snapshotting the event's title, date and price label.  Bookings are
// confirmed immediately; there is no payment gate.
//
// Admission control happens at creation time only: the capacity read and
// the insert are separate store calls, so two concurrent bookings at the
// boundary can overshoot an event's capacity.
func (s *Service) Book(ctx context.Context, req Request) (*model.Reservation, error) {
	var missing []string
	if strings.TrimSpace(req.EventID) == "" {
		missing = append(missing, "eventId")
	}
	if strings.TrimSpace(req.FirstName) == "" {
		missing = append(missing, "firstName")
	}
	if strings.TrimSpace(req.LastName) == "" {
		missing = append(missing, "lastName")
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(req.Phone) == "" {
		missing = append(missing, "phone")
	}
	if req.NumberOfPeople < minParty || req.NumberOfPeople > maxParty {
		missing = append(missing, "numberOfPeople")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	ev, err := s.events.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	if ev.Capacity != nil {
		existing, err := s.store.ListActiveByEvent(ctx, ev.ID)
		if err != nil {
			return nil, err
		}
		sizes := partySizes(existing)
		if !Fits(req.NumberOfPeople, sizes, ev.Capacity) {
			return nil, &CapacityError{
				EventID:   ev.ID,
				Requested: req.NumberOfPeople,
				Remaining: Remaining(sizes, *ev.Capacity),
			}
		}
	}

	res := &model.Reservation{
		EventID:        ev.ID,
		EventTitle:     ev.Title,
		EventDate:      ev.Date,
		TotalAmount:    ev.Price,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          strings.TrimSpace(req.Phone),
		NumberOfPeople: req.NumberOfPeople,
		Notes:          strings.TrimSpace(req.Notes),
		Status:         model.StatusConfirmed,
	}
	for i := 0; i < createAttempts; i++ {
		res.Number = s.gen()
		err := s.store.Create(ctx, res)
		if err == nil {
			log.Printf("booking: created %s for event %s (%d people)", res.Number, res.EventID, res.NumberOfPeople)
			if s.notifier != nil {
				go s.notifier.ReservationConfirmed(context.WithoutCancel(ctx), res)
			}
			return res, nil
		}
		if !errors.Is(err, model.ErrDuplicateNumber) {
			return nil, err
		}
	}
	return nil, ErrNumberExhausted
}

// Get returns the reservation with the given number.
func (s *Service) Get(ctx context.Context, number string) (*model.Reservation, error) {
	return s.store.GetByNumber(ctx, number)
}

// List returns reservations matching the filter, newest first, capped at
// 100 records when no explicit limit is given.
func (s *Service) List(ctx context.Context, f model.ReservationFilter, limit int) ([]model.Reservation, error) {
	return s.store.ListByFilter(ctx, f, limit)
}

// Cancel transitions a reservation to cancelled.  Cancelling an already
// cancelled reservation is a no-op success: the record is returned
// unchanged.  Nothing but the status (and the modified time) is touched.
func (s *Service) Cancel(ctx context.Context, number string) (*model.Reservation, error) {
	res, err := s.store.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if res.Status == model.StatusCancelled {
		return res, nil
	}
	updated, err := s.store.UpdateStatus(ctx, number, model.StatusCancelled)
	if err != nil {
		return nil, err
	}
	log.Printf("booking: cancelled %s", number)
	if s.notifier != nil {
		go s.notifier.ReservationCancelled(context.WithoutCancel(ctx), updated)
	}
	return updated, nil
}

// Amend updates the contact details of a reservation.  Only phone,
// numberOfPeople and notes may change; any other key in fields is discarded
// silently.  A party size outside 1..10 is rejected with the same
// validation error as booking.  Capacity is not re-checked: admission
// control is defined at creation time only.
func (s *Service) Amend(ctx context.Context, number string, fields map[string]any) (*model.Reservation, error) {
	filtered := make(map[string]any, 3)
	var bad []string
	for key, val := range fields {
		switch key {
		case "phone":
			if v, ok := val.(string); ok && strings.TrimSpace(v) != "" {
				filtered["phone"] = strings.TrimSpace(v)
			} else {
				bad = append(bad, "phone")
			}
		case "numberOfPeople":
			n, ok := toInt(val)
			if !ok || n < minParty || n > maxParty {
				bad = append(bad, "numberOfPeople")
				continue
			}
			filtered["number_of_people"] = n
		case "notes":
			if v, ok := val.(string); ok {
				filtered["notes"] = v
			} else {
				bad = append(bad, "notes")
			}
		}
	}
	if len(bad) > 0 {
		return nil, &ValidationError{Fields: bad}
	}
	if len(filtered) == 0 {
		return s.store.GetByNumber(ctx, number)
	}
	return s.store.UpdateFields(ctx, number, filtered)
}

func partySizes(reservations []model.Reservation) []int {
	sizes := make([]int, 0, len(reservations))
	for _, r := range reservations {
		sizes = append(sizes, r.NumberOfPeople)
	}
	return sizes
}

// toInt accepts the numeric types a JSON body or a typed caller may supply.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
