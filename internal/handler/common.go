package handler // declare the package name; contains HTTP handlers

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// validate is the shared struct validator for request DTOs.  Handlers
// bind the body first and then run it through this instance so field
// rules live next to the DTO definitions.
var validate = validator.New()

// dbTimeout bounds every repository call made from a handler.
const dbTimeout = 5 * time.Second

// reqCtx derives a bounded context from the incoming request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// currentUser returns the authenticated user's id from the context.
// JWTAuth stores the token's sub claim under "user_id"; an empty string
// means the route was (mis)registered without the middleware.
func currentUser(c echo.Context) string {
	if v, ok := c.Get("user_id").(string); ok {
		return v
	}
	return ""
}
