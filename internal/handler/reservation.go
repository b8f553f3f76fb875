// Package handler contains the HTTP layer: thin Echo handlers that bind
// request bodies, call the booking service or a repository, and map domain
// errors onto status codes.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nkoreli/museum-reservations/internal/booking"
	"github.com/nkoreli/museum-reservations/internal/model"
	"github.com/nkoreli/museum-reservations/internal/utils"
)

// ReservationHandler exposes the reservation ledger over HTTP.  Booking,
// lookup, cancellation and amendment are public (the visitor's handle is
// the reservation number); listing is registered behind the back-office
// middleware.
type ReservationHandler struct {
	Svc *booking.Service
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(svc *booking.Service) *ReservationHandler {
	if svc == nil {
		panic("nil booking service passed to NewReservationHandler")
	}
	return &ReservationHandler{Svc: svc}
}

// Book handles POST /v1/reservations.  The JSON body carries the event ID
// and the visitor fields; on success the created reservation is returned
// with 201.  Validation and capacity failures map to 400, an unknown event
// to 404.
func (h *ReservationHandler) Book(c echo.Context) error {
	var req booking.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Svc.Book(ctx, req)
	if err != nil {
		var ve *booking.ValidationError
		var ce *booking.CapacityError
		switch {
		case errors.As(err, &ve):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":  "missing or invalid fields",
				"fields": ve.Fields,
			})
		case errors.As(err, &ce):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":     "not enough spots available",
				"remaining": ce.Remaining,
			})
		case errors.Is(err, model.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case errors.Is(err, booking.ErrNumberExhausted):
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not allocate reservation number"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, res)
}

// Get handles GET /v1/reservations/:number.
func (h *ReservationHandler) Get(c echo.Context) error {
	res, err := h.Svc.Get(c.Request().Context(), c.Param("number"))
	if err != nil {
		if errors.Is(err, model.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, res)
}

// List handles GET /v1/reservations with optional email and event_id query
// filters and an optional limit (default 100, newest first).
func (h *ReservationHandler) List(c echo.Context) error {
	limit := 0
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}
	f := model.ReservationFilter{
		Email:   c.QueryParam("email"),
		EventID: c.QueryParam("event_id"),
	}
	list, err := h.Svc.List(c.Request().Context(), f, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, list)
}

// Cancel handles POST /v1/reservations/:number/cancel.  Cancelling twice is
// a no-op success, so retried requests do not error.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Svc.Cancel(ctx, c.Param("number"))
	if err != nil {
		if errors.Is(err, model.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, res)
}

// Amend handles PATCH /v1/reservations/:number.  The body is a partial
// object; only phone, numberOfPeople and notes are applied, other keys are
// dropped silently.
func (h *ReservationHandler) Amend(c echo.Context) error {
	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	res, err := h.Svc.Amend(c.Request().Context(), c.Param("number"), fields)
	if err != nil {
		var ve *booking.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":  "missing or invalid fields",
				"fields": ve.Fields,
			})
		case errors.Is(err, model.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, res)
}

// QR handles GET /v1/reservations/:number/qr and returns a PNG QR code of
// the reservation number for scanning at the entrance.
func (h *ReservationHandler) QR(c echo.Context) error {
	res, err := h.Svc.Get(c.Request().Context(), c.Param("number"))
	if err != nil {
		if errors.Is(err, model.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	png, err := utils.QRCodePNG(res.Number, 256)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "qr generation failed"})
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
