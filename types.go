package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenService issues and validates the three token classes. Each
// class signs with its own secret; a token minted for one class must
// never validate against another.
type TokenService interface {
	IssueAccess(userID string) (string, error)
	IssueRefresh(userID string) (string, error)
	IssueVerification(userID, email string) (string, error)
	ValidateAccess(raw string) (*SessionClaims, error)
	ValidateRefresh(raw string) (*SessionClaims, error)
	ValidateVerification(raw string) (*VerificationClaims, error)
}

// Mailer delivers the verification link to a registrant. Content and
// transport are the collaborator's concern; the controller only hands
// over the destination address and the URL.
type Mailer interface {
	SendVerification(ctx context.Context, to, verificationURL string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
