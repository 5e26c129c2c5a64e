package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

type tokenClass struct {
	secret []byte
	ttl    time.Duration
}

type tokenService struct {
	access       tokenClass
	refresh      tokenClass
	verification tokenClass
	logger       Logger
}

// NewTokenService builds the JWT signer. Each token class carries its
// own secret and lifetime, so a leaked access secret cannot mint
// refresh or verification tokens.
func NewTokenService(cfg *Config, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}

	return &tokenService{
		access:       tokenClass{secret: []byte(cfg.AccessSecret), ttl: cfg.AccessTTL},
		refresh:      tokenClass{secret: []byte(cfg.RefreshSecret), ttl: cfg.RefreshTTL},
		verification: tokenClass{secret: []byte(cfg.VerificationSecret), ttl: cfg.VerificationTTL},
		logger:       logger,
	}
}

func (s *tokenService) IssueAccess(userID string) (string, error) {
	return s.sign(s.access, sessionClaims(userID, s.access.ttl))
}

func (s *tokenService) IssueRefresh(userID string) (string, error) {
	return s.sign(s.refresh, sessionClaims(userID, s.refresh.ttl))
}

func (s *tokenService) IssueVerification(userID, email string) (string, error) {
	claims := &VerificationClaims{
		SessionClaims: *sessionClaims(userID, s.verification.ttl),
		Email:         email,
	}
	return s.sign(s.verification, claims)
}

func (s *tokenService) ValidateAccess(raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := s.parse(s.access, raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *tokenService) ValidateRefresh(raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := s.parse(s.refresh, raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *tokenService) ValidateVerification(raw string) (*VerificationClaims, error) {
	claims := &VerificationClaims{}
	if err := s.parse(s.verification, raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *tokenService) sign(class tokenClass, claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(class.secret)
	if err != nil {
		return "", NewServerError("", err)
	}

	return signed, nil
}

func (s *tokenService) parse(class tokenClass, raw string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return class.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		s.logger.Debug("token rejected: ", "error", err)
		return ErrTokenMalformed
	}

	if !token.Valid {
		return ErrTokenMalformed
	}

	return nil
}

func sessionClaims(userID string, ttl time.Duration) *SessionClaims {
	now := time.Now()
	return &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UID: userID,
	}
}
