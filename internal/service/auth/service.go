package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/presentia-hr/presentia-backend-go/internal/domain/auth"
	"github.com/presentia-hr/presentia-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	auth.OperatorRepository
	jwtService jwt.Service
}

func NewAuthService(operatorRepo auth.OperatorRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		OperatorRepository: operatorRepo,
		jwtService:         jwtService,
	}
}

// Login implements auth.AuthService.
//
// Unknown usernames and wrong passwords collapse into the same
// ErrInvalidCredentials so a caller cannot probe which usernames exist.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	op, err := s.OperatorRepository.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, auth.ErrOperatorNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to load operator: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(op.ID, op.Username, op.IsAdmin)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
