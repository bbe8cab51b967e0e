package auth

import (
	"github.com/labstack/echo/v4"

	"dailydiet/internal/model"
)

// userContextKey is where the session guard stores the authenticated user.
const userContextKey = "auth.user"

// SetUser attaches the authenticated user to the request context.
func SetUser(c echo.Context, user *model.User) {
	c.Set(userContextKey, user)
}

// UserFromContext returns the user attached by the session guard.
func UserFromContext(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(userContextKey).(*model.User)
	return user, ok && user != nil
}

// SessionIDFromRequest returns the session cookie value, or "" when absent.
func SessionIDFromRequest(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
