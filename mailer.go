package auth

import (
	"context"
	"strings"
)

// VerificationURL builds the link embedded in the verification email.
// The token rides in the path, matching the verify route.
func VerificationURL(origin, token string) string {
	return strings.TrimRight(origin, "/") + "/api/auth/verify/" + token
}

// LogMailer writes verification links to the log instead of sending
// mail. It is the development stand-in for a real delivery channel.
type LogMailer struct {
	Logger Logger
}

func NewLogMailer(logger Logger) *LogMailer {
	if logger == nil {
		logger = defLogger{}
	}
	return &LogMailer{Logger: logger}
}

func (m *LogMailer) SendVerification(ctx context.Context, to, verificationURL string) error {
	m.Logger.Info("verification email: ", "to", to, "url", verificationURL)
	return nil
}
