package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/staff-timeclock/internal/config"
	"github.com/iliyamo/staff-timeclock/internal/handler"
	"github.com/iliyamo/staff-timeclock/internal/middleware"
)

// RegisterStaff registers the staff-scoped endpoints under /v1.  Both
// STAFF and ADMIN roles may clock time; every route requires a valid
// JWT.  The report GETs sit behind the Redis response cache so repeated
// dashboard polls do not hit MySQL.
func RegisterStaff(e *echo.Echo, clock *handler.ClockHandler, reports *handler.ReportHandler,
	jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {

	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "STAFF"),
	)

	g.POST("/clock/in", clock.ClockIn)
	g.POST("/clock/out", clock.ClockOut)
	g.GET("/clock/status", clock.Status)
	g.POST("/breaks/start", clock.StartBreak)
	g.POST("/breaks/end", clock.EndBreak)

	cached := middleware.NewRedisCache(cacheCfg, rdb)
	g.GET("/entries", reports.Entries, cached)
	g.GET("/reports/daily", reports.Daily, cached)
	g.GET("/reports/weekly", reports.Weekly, cached)
}
