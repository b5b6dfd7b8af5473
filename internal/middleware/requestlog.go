package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLog returns an Echo middleware that emits one structured log
// line per request: method, path, status, latency, remote IP and the
// authenticated user id when present.  Errors returned by handlers are
// passed through unchanged so the global error handler still formats
// the response.
func RequestLog(log *zap.SugaredLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Let Echo write the error response before reading the status.
				c.Error(err)
			}

			log.Infow("request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"ip", c.RealIP(),
				"user", currentUserID(c),
			)
			return nil
		}
	}
}
