package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/tutor/pkg/auth"
)

func newApp(secret, issuer string) *fiber.App {
	app := fiber.New()
	app.Get("/me", NewAuthMiddleware(secret, issuer), func(c *fiber.Ctx) error {
		id, err := UserID(c)
		if err != nil {
			return c.SendStatus(http.StatusUnauthorized)
		}
		return c.SendString(id.String())
	})
	return app
}

func TestMiddleware(t *testing.T) {
	user := auth.User{ID: uuid.New(), Email: "s@example.com"}
	token, err := NewGenerator("secret", "ai-tutor", time.Hour).Generate(context.Background(), user)
	require.NoError(t, err)
	expired, err := NewGenerator("secret", "ai-tutor", -time.Minute).Generate(context.Background(), user)
	require.NoError(t, err)
	foreign, err := NewGenerator("secret", "someone-else", time.Hour).Generate(context.Background(), user)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"bearer", "Bearer " + token, http.StatusOK},
		{"bare token", token, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong issuer", "Bearer " + foreign, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}
	app := newApp("secret", "ai-tutor")
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
