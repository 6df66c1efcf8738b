package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/activity-ticketing/internal/handler"
	"github.com/iliyamo/activity-ticketing/internal/middleware"
)

// Handlers bundles every handler the router needs so RegisterRoutes
// takes a single argument instead of a long parameter list.
type Handlers struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Activities   *handler.ActivityHandler
	Presenters   *handler.PresenterHandler
	Tickets      *handler.TicketHandler
	Reservations *handler.ReservationHandler
}

// RegisterRoutes registers the full route tree on the provided Echo
// instance.
//
// Layout:
//
//	/healthz                       liveness, no auth
//	/api/v1/auth/*                 register, login, refresh, logout
//	/api/v1/activities (GET)       public browse, optionally cached
//	/api/v1/...                    everything else requires a token
//	admin-only writes              guarded by RequireRole("admin")
//
// cacheMW may be nil when Redis is unavailable; caching is then simply
// skipped. It must only ever wrap public read endpoints, never
// reservation or auth routes.
//
// limitMW (also nil-able) is the rate limiter. It is installed per
// group rather than globally: on token-protected groups it runs after
// JWTAuth so user-keyed bucket strategies see the authenticated
// principal instead of falling back to the guest bucket.
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string, cacheMW, limitMW echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api/v1")

	// Session lifecycle, no token required. Anonymous traffic is
	// limited per IP.
	auth := api.Group("/auth")
	if limitMW != nil {
		auth.Use(limitMW)
	}
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	// Public browse endpoints. Guests can inspect activities and their
	// presenters before registering.
	public := api.Group("")
	if limitMW != nil {
		public.Use(limitMW)
	}
	if cacheMW != nil {
		public.Use(cacheMW)
	}
	public.GET("/activities", h.Activities.List)
	public.GET("/activities/:id", h.Activities.Get)
	public.GET("/activities/:activity_id/presenters", h.Presenters.List)
	public.GET("/activities/:activity_id/presenters/:id", h.Presenters.Get)

	// Everything below requires a valid access token.
	authed := api.Group("")
	authed.Use(middleware.JWTAuth(jwtSecret))
	if limitMW != nil {
		authed.Use(limitMW)
	}
	authed.Use(middleware.RequireRole("admin", "user"))

	authed.GET("/auth/me", h.Auth.Me)
	authed.GET("/users/:id", h.Users.Get)
	authed.PATCH("/users/:id", h.Users.Update)

	authed.GET("/tickets", h.Tickets.List)
	authed.GET("/tickets/:id", h.Tickets.Get)

	// The reservation state machine. Never cached, never rate-exempt.
	authed.POST("/tickets/:id/reserve", h.Reservations.Reserve)
	authed.POST("/tickets/:id/cancel", h.Reservations.Cancel)

	// Admin-only management.
	admin := api.Group("")
	admin.Use(middleware.JWTAuth(jwtSecret))
	if limitMW != nil {
		admin.Use(limitMW)
	}
	admin.Use(middleware.RequireRole("admin"))

	admin.GET("/users", h.Users.List)
	admin.DELETE("/users/:id", h.Users.Delete)

	admin.POST("/activities", h.Activities.Create)
	admin.PATCH("/activities/:id", h.Activities.Update)
	admin.DELETE("/activities/:id", h.Activities.Delete)

	admin.POST("/activities/:activity_id/presenters", h.Presenters.Create)
	admin.PATCH("/activities/:activity_id/presenters/:id", h.Presenters.Update)
	admin.DELETE("/activities/:activity_id/presenters/:id", h.Presenters.Delete)

	admin.POST("/tickets", h.Tickets.Create)
	admin.PATCH("/tickets/:id", h.Tickets.Update)
	admin.DELETE("/tickets/:id", h.Tickets.Delete)
}
