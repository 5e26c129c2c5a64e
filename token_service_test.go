package auth_test

import (
	"testing"
	"time"

	"github.com/linguate/auth"
	"github.com/stretchr/testify/assert"
)

func tokenConfig() *auth.Config {
	return &auth.Config{
		AccessSecret:       "access-secret",
		AccessTTL:          15 * time.Minute,
		RefreshSecret:      "refresh-secret",
		RefreshTTL:         24 * time.Hour,
		VerificationSecret: "verification-secret",
		VerificationTTL:    time.Hour,
	}
}

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := auth.NewTokenService(tokenConfig(), nil)
	userID := "3e63ccd4-8f1a-4bd0-b1a7-917f0e6c7a3c"

	t.Run("Access token", func(t *testing.T) {
		token, err := svc.IssueAccess(userID)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := svc.ValidateAccess(token)
		assert.NoError(t, err)
		assert.Equal(t, userID, claims.UserID())
		assert.True(t, claims.Expires().After(time.Now()))
	})

	t.Run("Refresh token", func(t *testing.T) {
		token, err := svc.IssueRefresh(userID)
		assert.NoError(t, err)

		claims, err := svc.ValidateRefresh(token)
		assert.NoError(t, err)
		assert.Equal(t, userID, claims.UserID())
	})

	t.Run("Verification token", func(t *testing.T) {
		token, err := svc.IssueVerification(userID, "user@example.com")
		assert.NoError(t, err)

		claims, err := svc.ValidateVerification(token)
		assert.NoError(t, err)
		assert.Equal(t, userID, claims.UserID())
		assert.Equal(t, "user@example.com", claims.Email)
	})
}

func TestTokenServiceRejectsCrossClassTokens(t *testing.T) {
	svc := auth.NewTokenService(tokenConfig(), nil)
	userID := "3e63ccd4-8f1a-4bd0-b1a7-917f0e6c7a3c"

	access, err := svc.IssueAccess(userID)
	assert.NoError(t, err)

	refresh, err := svc.IssueRefresh(userID)
	assert.NoError(t, err)

	verification, err := svc.IssueVerification(userID, "user@example.com")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		validate func() error
	}{
		{
			name: "Refresh token as access token",
			validate: func() error {
				_, err := svc.ValidateAccess(refresh)
				return err
			},
		},
		{
			name: "Access token as refresh token",
			validate: func() error {
				_, err := svc.ValidateRefresh(access)
				return err
			},
		},
		{
			name: "Access token as verification token",
			validate: func() error {
				_, err := svc.ValidateVerification(access)
				return err
			},
		},
		{
			name: "Verification token as access token",
			validate: func() error {
				_, err := svc.ValidateAccess(verification)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.validate(), auth.ErrTokenMalformed)
		})
	}
}

func TestTokenServiceRejectsExpiredTokens(t *testing.T) {
	cfg := tokenConfig()
	cfg.AccessTTL = -time.Minute

	svc := auth.NewTokenService(cfg, nil)

	token, err := svc.IssueAccess("3e63ccd4-8f1a-4bd0-b1a7-917f0e6c7a3c")
	assert.NoError(t, err)

	_, err = svc.ValidateAccess(token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestTokenServiceRejectsGarbage(t *testing.T) {
	svc := auth.NewTokenService(tokenConfig(), nil)

	tests := []string{
		"",
		"not-a-token",
		"aaaa.bbbb.cccc",
	}

	for _, raw := range tests {
		_, err := svc.ValidateAccess(raw)
		assert.ErrorIs(t, err, auth.ErrTokenMalformed)
	}
}
