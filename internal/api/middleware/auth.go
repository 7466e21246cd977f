package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/virtualvault/storefront/internal/api/metrics"
	"github.com/virtualvault/storefront/internal/pkg/token"
)

// UserIDKey is the echo.Context key holding the authenticated user id.
const UserIDKey = "userID"

// TokenVerifier resolves a raw session token to a user id.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// RequireSignIn reads the raw token from the Authorization header (no
// scheme prefix) and stores the user id under UserIDKey. Any failure is a
// 401 and next is not called.
func RequireSignIn(verifier TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := verifier.Verify(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				reason := "invalid"
				var invalid *token.InvalidTokenError
				if errors.As(err, &invalid) {
					reason = invalid.Reason
				}
				metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
				log.Debug().Str("reason", reason).Str("path", c.Path()).Msg("sign-in required")

				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Unauthorized: invalid or missing token",
				})
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}
