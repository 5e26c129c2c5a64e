package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are carried by access and refresh tokens. The subject
// is the user ID; uid duplicates it for clients that unpack the
// payload directly.
type SessionClaims struct {
	jwt.RegisteredClaims
	UID string `json:"uid,omitempty"`
}

func (c *SessionClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject
}

func (c *SessionClaims) Expires() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// VerificationClaims additionally bind the email being proven, so a
// verification link is only ever good for the address it was sent to.
type VerificationClaims struct {
	SessionClaims
	Email string `json:"email,omitempty"`
}
