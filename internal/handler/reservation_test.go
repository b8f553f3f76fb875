package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkoreli/museum-reservations/internal/booking"
	"github.com/nkoreli/museum-reservations/internal/model"
)

// memStore is a minimal in-memory booking.Store for handler tests.
type memStore struct {
	byNumber map[string]*model.Reservation
	order    []string
	seq      int
}

func newMemStore() *memStore {
	return &memStore{byNumber: make(map[string]*model.Reservation)}
}

func (s *memStore) Create(_ context.Context, res *model.Reservation) error {
	if _, ok := s.byNumber[res.Number]; ok {
		return model.ErrDuplicateNumber
	}
	s.seq++
	res.ID = uint64(s.seq)
	res.CreatedAt = time.Now().UTC()
	res.UpdatedAt = res.CreatedAt
	cp := *res
	s.byNumber[res.Number] = &cp
	s.order = append(s.order, res.Number)
	return nil
}

func (s *memStore) GetByNumber(_ context.Context, number string) (*model.Reservation, error) {
	res, ok := s.byNumber[number]
	if !ok {
		return nil, model.ErrReservationNotFound
	}
	cp := *res
	return &cp, nil
}

func (s *memStore) ListByFilter(_ context.Context, f model.ReservationFilter, limit int) ([]model.Reservation, error) {
	if limit <= 0 {
		limit = 100
	}
	out := make([]model.Reservation, 0)
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		res := s.byNumber[s.order[i]]
		if f.Email != "" && res.Email != strings.ToLower(f.Email) {
			continue
		}
		if f.EventID != "" && res.EventID != f.EventID {
			continue
		}
		out = append(out, *res)
	}
	return out, nil
}

func (s *memStore) ListActiveByEvent(_ context.Context, eventID string) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	for _, number := range s.order {
		res := s.byNumber[number]
		if res.EventID == eventID && res.Status != model.StatusCancelled {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (s *memStore) UpdateStatus(_ context.Context, number, status string) (*model.Reservation, error) {
	res, ok := s.byNumber[number]
	if !ok {
		return nil, model.ErrReservationNotFound
	}
	res.Status = status
	cp := *res
	return &cp, nil
}

func (s *memStore) UpdateFields(_ context.Context, number string, fields map[string]any) (*model.Reservation, error) {
	res, ok := s.byNumber[number]
	if !ok {
		return nil, model.ErrReservationNotFound
	}
	for col, val := range fields {
		switch col {
		case "phone":
			res.Phone = val.(string)
		case "number_of_people":
			res.NumberOfPeople = val.(int)
		case "notes":
			res.Notes = val.(string)
		}
	}
	cp := *res
	return &cp, nil
}

type memEvents struct {
	byID map[string]*model.Event
}

func (f *memEvents) GetByID(_ context.Context, id string) (*model.Event, error) {
	ev, ok := f.byID[id]
	if !ok {
		return nil, model.ErrEventNotFound
	}
	cp := *ev
	return &cp, nil
}

func newTestHandler(capacity *int) (*ReservationHandler, *memStore) {
	store := newMemStore()
	events := &memEvents{byID: map[string]*model.Event{
		"EVT-OPENING": {
			ID:       "EVT-OPENING",
			Title:    "Gallery Opening",
			Date:     time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC),
			Price:    "15 EUR",
			Capacity: capacity,
		},
	}}
	svc := booking.NewService(store, events, nil)
	return NewReservationHandler(svc), store
}

func jsonRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const bookBody = `{
	"eventId": "EVT-OPENING",
	"firstName": "Ada",
	"lastName": "Moreau",
	"email": "ada.moreau@example.com",
	"phone": "+33 6 12 34 56 78",
	"numberOfPeople": 2
}`

func bookOne(t *testing.T, e *echo.Echo, h *ReservationHandler) string {
	t.Helper()
	req, rec := jsonRequest(http.MethodPost, "/v1/reservations", bookBody)
	require.NoError(t, h.Book(e.NewContext(req, rec)))
	require.Equal(t, http.StatusCreated, rec.Code)
	number, _ := decodeBody(t, rec)["reservationNumber"].(string)
	require.NotEmpty(t, number)
	return number
}

func TestBookEndpoint_Created(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(nil)

	req, rec := jsonRequest(http.MethodPost, "/v1/reservations", bookBody)
	require.NoError(t, h.Book(e.NewContext(req, rec)))

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "confirmed", body["status"])
	assert.Equal(t, "Gallery Opening", body["eventTitle"])
	assert.Contains(t, body["reservationNumber"], "RES-")
	// Internal row ID never leaks onto the wire.
	assert.NotContains(t, body, "id")
}

func TestBookEndpoint_ValidationError(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(nil)

	req, rec := jsonRequest(http.MethodPost, "/v1/reservations", `{"eventId":"EVT-OPENING"}`)
	require.NoError(t, h.Book(e.NewContext(req, rec)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "missing or invalid fields", body["error"])
	fields, ok := body["fields"].([]any)
	require.True(t, ok)
	assert.Contains(t, fields, "firstName")
	assert.Contains(t, fields, "numberOfPeople")
	assert.NotContains(t, fields, "eventId")
}

func TestBookEndpoint_CapacityExceeded(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(intptr(3))

	bookOne(t, e, h) // takes 2 of 3 spots

	req, rec := jsonRequest(http.MethodPost, "/v1/reservations", bookBody)
	require.NoError(t, h.Book(e.NewContext(req, rec)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "not enough spots available", body["error"])
	assert.Equal(t, float64(1), body["remaining"])
}

func TestBookEndpoint_EventNotFound(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(nil)

	req, rec := jsonRequest(http.MethodPost, "/v1/reservations",
		strings.Replace(bookBody, "EVT-OPENING", "EVT-GONE", 1))
	require.NoError(t, h.Book(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetEndpoint(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(nil)
	number := bookOne(t, e, h)

	req := httptest.NewRequest(http.MethodGet, "/v1/reservations/"+number, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("number")
	c.SetParamValues(number)
	require.NoError(t, h.Get(c))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, number, decodeBody(t, rec)["reservationNumber"])
}

func TestGetEndpoint_NotFound(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/reservations/RES-NOPE", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("number")
	c.SetParamValues("RES-NOPE")
	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListEndpoint_InvalidLimit(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/reservations?limit=abc", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEndpoint_FilterByEvent(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(nil)
	bookOne(t, e, h)
	bookOne(t, e, h)

	req := httptest.NewRequest(http.MethodGet, "/v1/reservations?event_id=EVT-OPENING", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	req = httptest.NewRequest(http.MethodGet, "/v1/reservations?event_id=EVT-OTHER", nil)
	rec = httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestCancelEndpoint_Idempotent(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(nil)
	number := bookOne(t, e, h)

	for i := 0; i < 2; i++ {
		req, rec := jsonRequest(http.MethodPost, "/v1/reservations/"+number+"/cancel", "")
		c := e.NewContext(req, rec)
		c.SetParamNames("number")
		c.SetParamValues(number)
		require.NoError(t, h.Cancel(c))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "cancelled", decodeBody(t, rec)["status"])
	}
}

func TestAmendEndpoint(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(nil)
	number := bookOne(t, e, h)

	req, rec := jsonRequest(http.MethodPatch, "/v1/reservations/"+number,
		`{"numberOfPeople": 4, "notes": "stroller", "status": "pending"}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("number")
	c.SetParamValues(number)
	require.NoError(t, h.Amend(c))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(4), body["numberOfPeople"])
	assert.Equal(t, "stroller", body["notes"])
	assert.Equal(t, "confirmed", body["status"])
}

func TestAmendEndpoint_BadPartySize(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(nil)
	number := bookOne(t, e, h)

	req, rec := jsonRequest(http.MethodPatch, "/v1/reservations/"+number, `{"numberOfPeople": 0}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("number")
	c.SetParamValues(number)
	require.NoError(t, h.Amend(c))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []any{"numberOfPeople"}, decodeBody(t, rec)["fields"])
}

func TestQREndpoint(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(nil)
	number := bookOne(t, e, h)

	req := httptest.NewRequest(http.MethodGet, "/v1/reservations/"+number+"/qr", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("number")
	c.SetParamValues(number)
	require.NoError(t, h.QR(c))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	// PNG magic bytes.
	require.True(t, rec.Body.Len() > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, rec.Body.Bytes()[:4])
}

func intptr(n int) *int { return &n }
