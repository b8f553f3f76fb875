package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/nkoreli/museum-reservations/internal/config"
	"github.com/nkoreli/museum-reservations/internal/handler"
	"github.com/nkoreli/museum-reservations/internal/middleware"
	"github.com/nkoreli/museum-reservations/internal/model"
)

// RegisterReservations registers the visitor-facing reservation endpoints.
// Visitors hold no account; the reservation number is their handle, so
// lookup, cancel and amend are unauthenticated.  Booking is rate limited.
// The cross-visitor listing is restricted to back-office roles.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	limited := middleware.NewTokenBucket(rlCfg, rdb)

	e.POST("/v1/reservations", h.Book, limited)
	e.GET("/v1/reservations/:number", h.Get)
	e.GET("/v1/reservations/:number/qr", h.QR)
	e.POST("/v1/reservations/:number/cancel", h.Cancel, limited)
	e.PATCH("/v1/reservations/:number", h.Amend, limited)

	staff := e.Group("/v1/reservations")
	staff.Use(middleware.JWTAuth(jwtSecret))
	staff.Use(middleware.RequireRole(model.RoleAdmin, model.RoleStaff))
	staff.GET("", h.List)
}
