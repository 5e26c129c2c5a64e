package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// Wire discriminants for the closed error taxonomy. Every failure a
// client sees carries exactly one of these in its errType field.
const (
	TextCodeSchemaValidation = "SchemaValidationErr"
	TextCodeUnauthorized     = "UnauthorizedError"
	TextCodeRegistration     = "RegistrationError"
	TextCodeInvalidToken     = "InvalidTokenError"
	TextCodeForbidden        = "ForbiddenError"
	TextCodeLogout           = "LogoutError"
	TextCodeServer           = "ServerError"
)

// ErrIdentityNotFound is returned when a token references a record
// that no longer exists.
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrMismatchedHashAndPassword covers both wrong secrets and digests
// we cannot decode; verification fails closed either way.
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty secrets before they reach the KDF.
var ErrNoEmptyString = errors.New("secret must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeSchemaValidation).
	WithCode(http.StatusBadRequest)

// ErrTokenExpired is the expiry failure for any token class.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed covers decode errors and signature mismatches.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// NewUnauthorizedError builds a credential failure with the auxiliary
// flags the wire contract expects (userExists, isAuthenticated, desc).
func NewUnauthorizedError(meta map[string]any) *errors.Error {
	e := errors.New("unauthorized", errors.CategoryAuth).
		WithTextCode(TextCodeUnauthorized).
		WithCode(errors.CodeUnauthorized)

	if len(meta) > 0 {
		e = e.WithMetadata(meta)
	}

	return e
}

// NewSchemaValidationError echoes the field issues produced by payload
// validation back to the client verbatim.
func NewSchemaValidationError(issues []FieldIssue) *errors.Error {
	return errors.New("incorrect schema in request body", errors.CategoryValidation).
		WithTextCode(TextCodeSchemaValidation).
		WithCode(http.StatusBadRequest).
		WithMetadata(map[string]any{
			"errors":  issues,
			"message": "Incorrect schema in request body",
		})
}

// NewRegistrationError is the duplicate-email failure. It fires for
// any existing record regardless of verification state.
func NewRegistrationError() *errors.Error {
	return errors.New("email already in use", errors.CategoryConflict).
		WithTextCode(TextCodeRegistration).
		WithCode(http.StatusBadRequest).
		WithMetadata(map[string]any{
			"userExists": true,
			"desc":       "Email already in use",
		})
}

// NewInvalidTokenError is the terminal failure for a verification
// token that cannot be decoded, is expired, or was signed for another
// class.
func NewInvalidTokenError(err error) *errors.Error {
	var e *errors.Error
	if err != nil {
		e = errors.Wrap(err, errors.CategoryAuth, "invalid verification token")
	} else {
		e = errors.New("invalid verification token", errors.CategoryAuth)
	}

	return e.WithTextCode(TextCodeInvalidToken).WithCode(errors.CodeUnauthorized)
}

// NewServerError downgrades an infrastructure failure to the opaque
// wire shape. The source error is kept for logging, never exposed.
func NewServerError(desc string, err error) *errors.Error {
	var e *errors.Error
	if err != nil {
		e = errors.Wrap(err, errors.CategoryInternal, "unexpected server error")
	} else {
		e = errors.New("unexpected server error", errors.CategoryInternal)
	}

	e = e.WithTextCode(TextCodeServer).WithCode(errors.CodeInternal)
	if desc != "" {
		e = e.WithMetadata(map[string]any{"desc": desc})
	}

	return e
}

// WriteError is the single boundary between the error taxonomy and the
// transport. Handlers never build error bodies inline; anything that
// is not already a taxonomy member is downgraded to ServerError here.
func WriteError(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = NewServerError("", err)
	}

	errType := richErr.TextCode
	if errType == "" {
		errType = TextCodeServer
	}

	status := richErr.Code
	if status == 0 {
		status = http.StatusInternalServerError
	}

	body := fiber.Map{
		"status":  "error",
		"errType": errType,
	}
	for k, v := range richErr.Metadata {
		body[k] = v
	}

	return c.Status(status).JSON(body)
}
