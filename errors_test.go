package auth_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/linguate/auth"
	"github.com/stretchr/testify/assert"
)

func TestNewInvalidTokenError(t *testing.T) {
	e := auth.NewInvalidTokenError(fmt.Errorf("segment count"))
	assert.Equal(t, auth.TextCodeInvalidToken, e.TextCode)
	assert.Equal(t, http.StatusUnauthorized, e.Code)

	bare := auth.NewInvalidTokenError(nil)
	assert.Equal(t, auth.TextCodeInvalidToken, bare.TextCode)
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantBody   map[string]any
	}{
		{
			name:       "Registration conflict",
			err:        auth.NewRegistrationError(),
			wantStatus: http.StatusBadRequest,
			wantType:   "RegistrationError",
			wantBody:   map[string]any{"userExists": true, "desc": "Email already in use"},
		},
		{
			name: "Unauthorized with flags",
			err: auth.NewUnauthorizedError(map[string]any{
				"userExists":      false,
				"isAuthenticated": false,
			}),
			wantStatus: http.StatusUnauthorized,
			wantType:   "UnauthorizedError",
			wantBody:   map[string]any{"userExists": false, "isAuthenticated": false},
		},
		{
			name:       "Unknown errors downgrade to server error",
			err:        fmt.Errorf("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantType:   "ServerError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return auth.WriteError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			assert.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := map[string]any{}
			assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

			assert.Equal(t, "error", body["status"])
			assert.Equal(t, tt.wantType, body["errType"])
			for k, v := range tt.wantBody {
				assert.Equal(t, v, body[k])
			}
		})
	}
}
