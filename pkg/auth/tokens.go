package auth

import "context"

// TokenGenerator issues access tokens for authenticated users.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}
