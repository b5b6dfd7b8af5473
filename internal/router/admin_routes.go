package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/staff-timeclock/internal/handler"
	"github.com/iliyamo/staff-timeclock/internal/middleware"
)

// RegisterAdmin registers the ADMIN-only endpoints under /v1/admin:
// account management, cross-user entry queries and timesheet export.
// Export responses are file downloads and are never cached.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	g.GET("/users", h.ListUsers)
	g.POST("/users", h.CreateUser)
	g.PATCH("/users/:id/active", h.SetUserActive)

	g.GET("/entries", h.ListEntries)
	g.GET("/export", h.Export)
}
