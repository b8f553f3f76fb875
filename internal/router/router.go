// Package router wires HTTP routes to their handlers and middleware, split
// by audience: public catalogue, visitor reservations, back-office admin.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/nkoreli/museum-reservations/internal/config"
	"github.com/nkoreli/museum-reservations/internal/handler"
	"github.com/nkoreli/museum-reservations/internal/middleware"
)

// RegisterRoutes registers the routes that need no authentication or
// backing service: currently only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the back-office auth endpoints.  Register, login,
// refresh and logout live under /v1/auth without a session; /v1/me requires
// a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	me := e.Group("/v1")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated event catalogue behind the
// Redis response cache.  A nil Redis client disables caching transparently.
func RegisterPublic(e *echo.Echo, p *handler.PublicEventHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cached := middleware.NewRedisCache(cacheCfg, rdb)
	e.GET("/v1/events", p.ListEvents, cached)
	e.GET("/v1/events/:id", p.GetEvent, cached)
}
