package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Cookie names and path scopes. The refresh cookie is scoped to the
// refresh endpoint alone, so it rides along only when a session is
// actually being renewed.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
	AccessCookiePath   = "/api"
	RefreshCookiePath  = "/api/auth/refresh"
)

// CookieTransport writes and clears the session cookies. Both cookies
// are HttpOnly and SameSite=Strict; Secure tracks the environment.
type CookieTransport struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewCookieTransport(cfg *Config) *CookieTransport {
	return &CookieTransport{
		Secure:     cfg.IsProduction(),
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	}
}

// SetSessionCookies installs a full session pair after login or email
// verification.
func (t *CookieTransport) SetSessionCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	t.SetAccessCookie(c, accessToken)
	c.Cookie(t.cookie(RefreshTokenCookie, refreshToken, RefreshCookiePath, t.RefreshTTL))
}

// SetAccessCookie installs only the access cookie. Refresh leaves the
// refresh cookie untouched so its original expiry bounds the session.
func (t *CookieTransport) SetAccessCookie(c *fiber.Ctx, accessToken string) {
	c.Cookie(t.cookie(AccessTokenCookie, accessToken, AccessCookiePath, t.AccessTTL))
}

// ClearSessionCookies expires both cookies with the same flags and
// paths they were set with; a mismatch would leave the original cookie
// in place.
func (t *CookieTransport) ClearSessionCookies(c *fiber.Ctx) {
	c.Cookie(t.expired(AccessTokenCookie, AccessCookiePath))
	c.Cookie(t.expired(RefreshTokenCookie, RefreshCookiePath))
}

func (t *CookieTransport) cookie(name, value, path string, ttl time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HTTPOnly: true,
		Secure:   t.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

func (t *CookieTransport) expired(name, path string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   t.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}
