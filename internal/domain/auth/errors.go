package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrOperatorNotFound   = errors.New("operator not found")
	ErrAdminRequired      = errors.New("admin privilege required")
)
