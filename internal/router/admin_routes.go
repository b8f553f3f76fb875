package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nkoreli/museum-reservations/internal/handler"
	"github.com/nkoreli/museum-reservations/internal/middleware"
	"github.com/nkoreli/museum-reservations/internal/model"
)

// RegisterAdmin registers the event catalogue CRUD.  Only ADMIN accounts
// may mutate events; STAFF can merely browse reservations (see
// RegisterReservations).
func RegisterAdmin(e *echo.Echo, h *handler.AdminEventHandler, jwtSecret string) {
	g := e.Group("/v1/admin/events")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
