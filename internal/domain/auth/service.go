package auth

import "context"

// AuthService authenticates operators and issues access tokens.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
