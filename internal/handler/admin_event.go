package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nkoreli/museum-reservations/internal/model"
	"github.com/nkoreli/museum-reservations/internal/repository"
	"github.com/nkoreli/museum-reservations/internal/utils"
)

// AdminEventHandler covers the back-office event CRUD.  All routes sit
// behind JWT auth with the ADMIN role.
type AdminEventHandler struct {
	Events *repository.EventRepo
}

func NewAdminEventHandler(events *repository.EventRepo) *AdminEventHandler {
	if events == nil {
		panic("nil event repository passed to NewAdminEventHandler")
	}
	return &AdminEventHandler{Events: events}
}

type eventReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"` // RFC3339
	Location    string `json:"location"`
	Price       string `json:"price"`
	Capacity    *int   `json:"capacity"`
}

// parse validates the shared body of create and update.  Capacity must be a
// positive integer when present; leaving it out means unlimited.
func (r *eventReq) parse() (*model.Event, []string) {
	var bad []string
	if strings.TrimSpace(r.Title) == "" {
		bad = append(bad, "title")
	}
	if strings.TrimSpace(r.Price) == "" {
		bad = append(bad, "price")
	}
	date, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		bad = append(bad, "date")
	}
	if r.Capacity != nil && *r.Capacity <= 0 {
		bad = append(bad, "capacity")
	}
	if len(bad) > 0 {
		return nil, bad
	}
	return &model.Event{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Date:        date.UTC(),
		Location:    strings.TrimSpace(r.Location),
		Price:       strings.TrimSpace(r.Price),
		Capacity:    r.Capacity,
	}, nil
}

// Create handles POST /v1/admin/events.  The public event ID is generated
// server-side (EVT-...).
func (h *AdminEventHandler) Create(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ev, bad := req.parse()
	if bad != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing or invalid fields", "fields": bad})
	}
	ev.ID = utils.NewCode("EVT-")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Events.Create(ctx, ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	return c.JSON(http.StatusCreated, ev)
}

// Update handles PUT /v1/admin/events/:id.  Reducing the capacity below the
// already-booked total is allowed: existing reservations are never
// retroactively invalidated.
func (h *AdminEventHandler) Update(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ev, bad := req.parse()
	if bad != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing or invalid fields", "fields": bad})
	}
	ev.ID = c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Events.Update(ctx, ev); err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update event failed"})
	}
	return c.JSON(http.StatusOK, ev)
}

// Delete handles DELETE /v1/admin/events/:id.  Events with non-cancelled
// reservations cannot be deleted.
func (h *AdminEventHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	err := h.Events.Delete(ctx, c.Param("id"))
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, model.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "event has active reservations"})
	case errors.Is(err, model.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete event failed"})
}
