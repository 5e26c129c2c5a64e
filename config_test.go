package auth_test

import (
	"testing"
	"time"

	"github.com/linguate/auth"
	"github.com/stretchr/testify/assert"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("AUTH_SECRET", "access-secret")
	t.Setenv("AUTH_REFRESH_SECRET", "refresh-secret")
	t.Setenv("EMAIL_VERIFICATION_SECRET", "verification-secret")
	t.Setenv("AUTH_SECRET_EXPIRATION", "30m")
	t.Setenv("APP_ENV", "production")

	cfg, err := auth.ConfigFromEnv()
	assert.NoError(t, err)

	assert.Equal(t, "access-secret", cfg.AccessSecret)
	assert.Equal(t, 30*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, time.Hour, cfg.VerificationTTL)
	assert.True(t, cfg.IsProduction())
}

func TestConfigFromEnvMissingSecret(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")
	t.Setenv("AUTH_REFRESH_SECRET", "refresh-secret")
	t.Setenv("EMAIL_VERIFICATION_SECRET", "verification-secret")

	_, err := auth.ConfigFromEnv()
	assert.Error(t, err)
}

func TestConfigFromEnvBadDuration(t *testing.T) {
	t.Setenv("AUTH_SECRET", "access-secret")
	t.Setenv("AUTH_REFRESH_SECRET", "refresh-secret")
	t.Setenv("EMAIL_VERIFICATION_SECRET", "verification-secret")
	t.Setenv("AUTH_REFRESH_EXPIRATION", "one day")

	_, err := auth.ConfigFromEnv()
	assert.Error(t, err)
}
