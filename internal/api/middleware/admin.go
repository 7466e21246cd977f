package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/virtualvault/storefront/internal/api/metrics"
	"github.com/virtualvault/storefront/internal/core/domain"
)

// UserFinder loads the current user for the admin check.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// IsAdmin must run after RequireSignIn. The role is read from storage on
// every request, so a demotion takes effect immediately. A failed lookup is
// reported as 401, never 500.
func IsAdmin(users UserFinder, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(UserIDKey).(string)

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				metrics.AdminRejectionsTotal.WithLabelValues("lookup_error").Inc()
				log.Error().Err(err).Str("user_id", userID).Msg("admin check failed")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"error":   err.Error(),
					"message": "Error in admin middleware",
				})
			}

			if user == nil || !user.Role.IsAdmin() {
				metrics.AdminRejectionsTotal.WithLabelValues("not_admin").Inc()
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "UnAuthorized Access",
				})
			}

			return next(c)
		}
	}
}
