package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/virtualvault/storefront/internal/api/middleware"
)

// callerID returns the user id stored by middleware.RequireSignIn. It is
// empty on routes that skip the sign-in check.
func callerID(c echo.Context) string {
	id, _ := c.Get(middleware.UserIDKey).(string)
	return id
}
