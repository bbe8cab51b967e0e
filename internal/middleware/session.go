package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dailydiet/internal/auth"
	"dailydiet/internal/errors"
	"dailydiet/internal/service"
)

// SessionGuard rejects requests without a resolvable sessionId cookie and
// attaches the authenticated user for downstream handlers.
func SessionGuard(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := auth.SessionIDFromRequest(c)
			if sessionID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: "Unauthorized"})
			}

			user, err := authService.Authenticate(c.Request().Context(), sessionID)
			if err != nil {
				httpErr := errors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
			}

			auth.SetUser(c, user)
			return next(c)
		}
	}
}
