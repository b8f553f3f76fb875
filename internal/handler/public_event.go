package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkoreli/museum-reservations/internal/model"
	"github.com/nkoreli/museum-reservations/internal/repository"
)

// PublicEventHandler serves the unauthenticated event catalogue so guests
// can browse before booking.  These routes sit behind the Redis response
// cache.
type PublicEventHandler struct {
	Events *repository.EventRepo
}

func NewPublicEventHandler(events *repository.EventRepo) *PublicEventHandler {
	if events == nil {
		panic("nil event repository passed to NewPublicEventHandler")
	}
	return &PublicEventHandler{Events: events}
}

// ListEvents handles GET /v1/events, ordered by event date.
func (h *PublicEventHandler) ListEvents(c echo.Context) error {
	events, err := h.Events.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, events)
}

// GetEvent handles GET /v1/events/:id.
func (h *PublicEventHandler) GetEvent(c echo.Context) error {
	ev, err := h.Events.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, ev)
}
