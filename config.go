package auth

import (
	"os"
	"time"

	"github.com/goliatone/go-errors"
)

// Environment names recognized by the service.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds everything sourced from the environment at process
// start. The three signing secrets are independent and required;
// missing any of them is a startup failure, never a per-request one.
type Config struct {
	Environment string
	Origin      string
	DSN         string

	AccessSecret string
	AccessTTL    time.Duration

	RefreshSecret string
	RefreshTTL    time.Duration

	VerificationSecret string
	VerificationTTL    time.Duration

	// UnverifiedTTL bounds the lifetime of a pending identity; the
	// store purges older unverified records outside the request path.
	UnverifiedTTL time.Duration
}

// ConfigFromEnv builds the configuration once at startup.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{
		Environment: envOrDefault("APP_ENV", EnvDevelopment),
		Origin:      envOrDefault("APP_ORIGIN", "http://localhost:3000"),
		DSN:         envOrDefault("DB_DSN", "file:linguate.db"),
	}

	var err error
	if cfg.AccessSecret, err = requireEnv("AUTH_SECRET"); err != nil {
		return nil, err
	}
	if cfg.RefreshSecret, err = requireEnv("AUTH_REFRESH_SECRET"); err != nil {
		return nil, err
	}
	if cfg.VerificationSecret, err = requireEnv("EMAIL_VERIFICATION_SECRET"); err != nil {
		return nil, err
	}

	if cfg.AccessTTL, err = durationEnv("AUTH_SECRET_EXPIRATION", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RefreshTTL, err = durationEnv("AUTH_REFRESH_EXPIRATION", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.VerificationTTL, err = durationEnv("EMAIL_VERIFICATION_EXPIRATION", time.Hour); err != nil {
		return nil, err
	}
	if cfg.UnverifiedTTL, err = durationEnv("UNVERIFIED_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func requireEnv(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", errors.New("missing required env var: "+name, errors.CategoryOperation).
			WithTextCode(TextCodeServer)
	}
	return value, nil
}

func envOrDefault(name, def string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return def
}

func durationEnv(name string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryOperation, "invalid duration in env var: "+name).
			WithTextCode(TextCodeServer)
	}

	return d, nil
}
