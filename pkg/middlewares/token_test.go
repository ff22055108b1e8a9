package middlewares

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	t_token "fitness_chat_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Use(JWTMiddleware())
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.SendString(MemberID(c) + "|" + c.Locals(TokenRole).(string))
	})
	return app
}

func TestJWTMiddleware(t *testing.T) {
	tok, err := t_token.GenerateJWT("trainer-1", string(t_token.RoleTrainer), "test")
	require.NoError(t, err)

	tests := []struct {
		name       string
		build      func() *http.Request
		wantStatus int
		wantBody   string
	}{
		{
			name: "authorization header",
			build: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/me", nil)
				req.Header.Set("Authorization", "Bearer "+tok)
				return req
			},
			wantStatus: http.StatusOK,
			wantBody:   "trainer-1|trainer",
		},
		{
			name: "query parameter",
			build: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/me?auth="+tok, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "trainer-1|trainer",
		},
		{
			name: "cookie",
			build: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/me", nil)
				req.AddCookie(&http.Cookie{Name: CookieToken, Value: tok})
				return req
			},
			wantStatus: http.StatusOK,
			wantBody:   "trainer-1|trainer",
		},
		{
			name: "missing",
			build: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/me", nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "invalid",
			build: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/me", nil)
				req.Header.Set("Authorization", "Bearer nope")
				return req
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	app := newProtectedApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(tt.build())
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantBody != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}
