package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/artem13815/tutor/pkg/auth"
)

type fakeAuth struct{ err error }

func (f fakeAuth) Register(_ context.Context, email, _ string) (auth.AuthResult, error) {
	return auth.AuthResult{User: auth.User{ID: uuid.New(), Email: email}, Token: "t"}, f.err
}

func (f fakeAuth) Login(_ context.Context, email, _ string) (auth.AuthResult, error) {
	return auth.AuthResult{User: auth.User{ID: uuid.New(), Email: email}, Token: "t"}, f.err
}

func newAuthApp(uc auth.AuthUseCase) *fiber.App {
	app := fiber.New()
	h := NewAuthHandler(uc)
	app.Post("/auth/register", h.Register)
	app.Post("/auth/login", h.Login)
	return app
}

func TestAuthHandlers(t *testing.T) {
	body := `{"email":"s@example.com","password":"long enough"}`

	status, out := postJSON(t, newAuthApp(fakeAuth{}), "/auth/register", "", body)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "t", out["token"])

	status, _ = postJSON(t, newAuthApp(fakeAuth{err: auth.ErrUserAlreadyExists}), "/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = postJSON(t, newAuthApp(fakeAuth{err: auth.ErrWeakPassword}), "/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = postJSON(t, newAuthApp(fakeAuth{}), "/auth/login", "", body)
	assert.Equal(t, http.StatusOK, status)

	status, _ = postJSON(t, newAuthApp(fakeAuth{err: auth.ErrInvalidCredentials}), "/auth/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = postJSON(t, newAuthApp(fakeAuth{}), "/auth/login", "", `{"email":""}`)
	assert.Equal(t, http.StatusBadRequest, status)
}
