package auth

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// SessionCookieName is the cookie carrying the session identifier.
	SessionCookieName = "sessionId"
	// DefaultSessionTTL is the cookie max-age and the session cache TTL.
	DefaultSessionTTL = 7 * 24 * time.Hour
)

// NewSessionID generates an opaque, unique session identifier.
func NewSessionID() string {
	return uuid.New().String()
}

// CookieOptions controls how the session cookie is written.
type CookieOptions struct {
	TTL    time.Duration
	Secure bool
}

// SessionCookie builds the cookie issued on sign-in.
func SessionCookie(sessionID string, opts CookieOptions) *http.Cookie {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie builds a cookie that makes the client drop its session.
func ExpiredSessionCookie(opts CookieOptions) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
