package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	repository "github.com/goliatone/go-repository-bun"
)

// RegisterAuthRoutes mounts the credential lifecycle under the given
// router, normally app.Group("/api/auth").
func RegisterAuthRoutes(router fiber.Router, controller *AuthController) {
	router.Post("/register", controller.Register)
	router.Get("/verify/:token", controller.Verify)
	router.Post("/login", controller.Login)
	router.Post("/refresh", controller.Refresh)
	router.Post("/", controller.Authenticate)
	router.Get("/logout", controller.Logout)
}

type AuthController struct {
	Debug   bool
	Logger  Logger
	Repo    RepositoryManager
	Tokens  TokenService
	Cookies *CookieTransport
	Mailer  Mailer
	Origin  string
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Origin: "http://localhost:3000",
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Tokens == nil {
		panic("Missing TokenService in auth controller...")
	}

	if c.Cookies == nil {
		panic("Missing CookieTransport in auth controller...")
	}

	if c.Mailer == nil {
		panic("Missing Mailer in auth controller...")
	}

	return c
}

func WithDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

func WithLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithRepositoryManager(repo RepositoryManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Repo = repo
		return c
	}
}

func WithTokenService(tokens TokenService) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Tokens = tokens
		return c
	}
}

func WithCookieTransport(cookies *CookieTransport) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Cookies = cookies
		return c
	}
}

func WithMailer(mailer Mailer) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Mailer = mailer
		return c
	}
}

func WithOrigin(origin string) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if origin != "" {
			c.Origin = origin
		}
		return c
	}
}

// Register creates an unverified identity and dispatches the
// verification email. No session is started until the email is
// confirmed.
func (a *AuthController) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	payload := RegisterRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return WriteError(c, NewSchemaValidationError([]FieldIssue{{
			Field:   "",
			Code:    "invalid",
			Message: "request body is not valid JSON",
		}}))
	}

	if a.Debug {
		fmt.Println(print.MaybePrettyJSON(payload))
	}

	if err := payload.Validate(); err != nil {
		return WriteError(c, NewSchemaValidationError(FormatValidationIssues(err)))
	}

	phone, err := NormalizePhone(payload.Phone)
	if err != nil {
		return WriteError(c, err)
	}

	email := NormalizeEmail(payload.Email)

	if _, err := a.Repo.Users().GetByEmail(ctx, email); err == nil {
		return WriteError(c, NewRegistrationError())
	} else if !repository.IsRecordNotFound(err) {
		a.Logger.Error("register lookup error: ", "error", err)
		return WriteError(c, NewServerError("Failed to create user", err))
	}

	passwordHash, err := HashPassword(payload.Password)
	if err != nil {
		a.Logger.Error("register hash error: ", "error", err)
		return WriteError(c, NewServerError("Failed to create user", err))
	}

	user := &User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Phone:        phone,
	}

	user, err = a.Repo.Users().Register(ctx, user)
	if err != nil {
		a.Logger.Error("register create error: ", "error", err)
		return WriteError(c, NewServerError("Failed to create user", err))
	}

	token, err := a.Tokens.IssueVerification(user.ID.String(), user.Email)
	if err != nil {
		a.Logger.Error("register token error: ", "error", err)
		return WriteError(c, NewServerError("Failed to create user", err))
	}

	if err := a.Mailer.SendVerification(ctx, user.Email, VerificationURL(a.Origin, token)); err != nil {
		a.Logger.Error("register mail error: ", "error", err)
		return WriteError(c, NewServerError("Failed to create user", err))
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Sent Email Verification",
	})
}

// Verify consumes the emailed token, activates the account, and
// starts the first session. It renders HTML because the link is
// opened from a mail client, not the app.
func (a *AuthController) Verify(c *fiber.Ctx) error {
	ctx := c.UserContext()
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	claims, err := a.Tokens.ValidateVerification(c.Params("token"))
	if err != nil {
		a.Logger.Debug("verify token rejected: ", "error", NewInvalidTokenError(err))
		return c.Status(http.StatusUnauthorized).
			SendString(VerifyFailurePage(a.Origin, "This verification link is invalid or has expired."))
	}

	user, err := a.Repo.Users().GetByUserID(ctx, claims.UserID())
	if err != nil {
		if repository.IsRecordNotFound(err) || errors.Is(err, ErrIdentityNotFound) {
			return c.Status(http.StatusBadRequest).
				SendString(VerifyFailurePage(a.Origin, "We could not find an account for this verification link."))
		}
		a.Logger.Error("verify lookup error: ", "error", err)
		return c.Status(http.StatusInternalServerError).
			SendString(VerifyFailurePage(a.Origin, "Something went wrong. Please try again."))
	}

	// Re-visits of a consumed link acknowledge without starting a new
	// session or rotating the stored refresh hash.
	if user.IsVerified {
		return c.Status(http.StatusOK).SendString(VerifySuccessPage(a.Origin))
	}

	accessToken, refreshToken, err := a.startSession(ctx, user)
	if err != nil {
		a.Logger.Error("verify session error: ", "error", err)
		return c.Status(http.StatusInternalServerError).
			SendString(VerifyFailurePage(a.Origin, "Something went wrong. Please try again."))
	}

	a.Cookies.SetSessionCookies(c, accessToken, refreshToken)

	return c.Status(http.StatusOK).SendString(VerifySuccessPage(a.Origin))
}

// Login checks credentials and starts a session. The response
// distinguishes unknown accounts, bad passwords, and unverified
// accounts so the client can prompt accordingly.
func (a *AuthController) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	payload := LoginRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return WriteError(c, NewSchemaValidationError([]FieldIssue{{
			Field:   "",
			Code:    "invalid",
			Message: "request body is not valid JSON",
		}}))
	}

	if err := payload.Validate(); err != nil {
		return WriteError(c, NewSchemaValidationError(FormatValidationIssues(err)))
	}

	user, err := a.Repo.Users().GetByEmail(ctx, payload.Email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return WriteError(c, NewUnauthorizedError(map[string]any{
				"userExists":      false,
				"isAuthenticated": false,
			}))
		}
		a.Logger.Error("login lookup error: ", "error", err)
		return WriteError(c, NewServerError("", err))
	}

	// Verification state is checked before the password so a pending
	// account always gets the "not verified" answer.
	if !user.IsVerified {
		return WriteError(c, NewUnauthorizedError(map[string]any{
			"userExists":      true,
			"isAuthenticated": false,
			"desc":            "User has not verified their email",
		}))
	}

	if err := ComparePasswordAndHash(payload.Password, user.PasswordHash); err != nil {
		return WriteError(c, NewUnauthorizedError(map[string]any{
			"userExists":      true,
			"isAuthenticated": false,
		}))
	}

	accessToken, refreshToken, err := a.startSession(ctx, user)
	if err != nil {
		a.Logger.Error("login session error: ", "error", err)
		return WriteError(c, NewServerError("", err))
	}

	a.Cookies.SetSessionCookies(c, accessToken, refreshToken)

	return c.Status(http.StatusOK).JSON(a.sessionBody(user))
}

// Refresh trades a live refresh cookie for a fresh access cookie. It
// trusts the signature and expiry alone and does not touch the store,
// so renewal stays cheap; revocation rides on the refresh cookie's
// own expiry.
func (a *AuthController) Refresh(c *fiber.Ctx) error {
	raw := c.Cookies(RefreshTokenCookie)
	if raw == "" {
		return WriteError(c, NewUnauthorizedError(nil))
	}

	claims, err := a.Tokens.ValidateRefresh(raw)
	if err != nil {
		return WriteError(c, NewUnauthorizedError(nil))
	}

	accessToken, err := a.Tokens.IssueAccess(claims.UserID())
	if err != nil {
		a.Logger.Error("refresh token error: ", "error", err)
		return WriteError(c, NewServerError("", err))
	}

	a.Cookies.SetAccessCookie(c, accessToken)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"status": "success",
	})
}

// Authenticate answers who-am-i for the client shell using the access
// cookie.
func (a *AuthController) Authenticate(c *fiber.Ctx) error {
	ctx := c.UserContext()

	raw := c.Cookies(AccessTokenCookie)
	if raw == "" {
		return WriteError(c, NewUnauthorizedError(map[string]any{
			"isAuthenticated": false,
		}))
	}

	claims, err := a.Tokens.ValidateAccess(raw)
	if err != nil {
		return WriteError(c, NewUnauthorizedError(map[string]any{
			"isAuthenticated": false,
		}))
	}

	user, err := a.Repo.Users().GetByUserID(ctx, claims.UserID())
	if err != nil {
		if repository.IsRecordNotFound(err) || errors.Is(err, ErrIdentityNotFound) {
			return WriteError(c, NewUnauthorizedError(map[string]any{
				"isAuthenticated": false,
			}))
		}
		a.Logger.Error("authenticate lookup error: ", "error", err)
		return WriteError(c, NewServerError("", err))
	}

	return c.Status(http.StatusOK).JSON(a.sessionBody(user))
}

// Logout clears both session cookies. Tokens already issued stay
// valid until they expire; there is no server side session to tear
// down.
func (a *AuthController) Logout(c *fiber.Ctx) error {
	a.Cookies.ClearSessionCookies(c)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"status": "success",
	})
}

// startSession mints the token pair and persists the refresh token
// hash. For unverified users it also flips the verification flag in
// the same statement.
func (a *AuthController) startSession(ctx context.Context, user *User) (string, string, error) {
	accessToken, err := a.Tokens.IssueAccess(user.ID.String())
	if err != nil {
		return "", "", err
	}

	refreshToken, err := a.Tokens.IssueRefresh(user.ID.String())
	if err != nil {
		return "", "", err
	}

	refreshHash, err := HashPassword(refreshToken)
	if err != nil {
		return "", "", err
	}

	if user.IsVerified {
		err = a.Repo.Users().StoreRefreshTokenHash(ctx, user.ID, refreshHash)
	} else {
		_, err = a.Repo.Users().MarkVerified(ctx, user.ID, refreshHash)
	}
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (a *AuthController) sessionBody(user *User) fiber.Map {
	body := fiber.Map{
		"status":          "success",
		"isAuthenticated": true,
	}
	for k, v := range user.Profile() {
		body[k] = v
	}
	return body
}
