package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers map[string]User

func (m memUsers) Create(_ context.Context, u User) error {
	if _, ok := m[u.Email]; ok {
		return ErrUserAlreadyExists
	}
	m[u.Email] = u
	return nil
}

func (m memUsers) GetByEmail(_ context.Context, email string) (User, error) {
	u, ok := m[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

type staticTokens struct{}

func (staticTokens) Generate(_ context.Context, u User) (string, error) { return "token-" + u.Email, nil }

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(memUsers{}, staticTokens{})
	ctx := context.Background()

	res, err := svc.Register(ctx, "  Student@Example.com ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", res.User.Email)
	assert.Equal(t, "token-student@example.com", res.Token)
	assert.NotEqual(t, "correct horse", res.User.PasswordHash)

	_, err = svc.Register(ctx, "student@example.com", "another password")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	res, err = svc.Login(ctx, "STUDENT@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = svc.Login(ctx, "student@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewAuthService(memUsers{}, staticTokens{})

	_, err := svc.Register(context.Background(), "not-an-email", "long enough")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(context.Background(), "a@b.io", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)
}
