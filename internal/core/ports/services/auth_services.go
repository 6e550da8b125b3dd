package services

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
)

// TokenSvcFacade issues and verifies bearer tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ParseAccessToken returns the user ID encoded in a valid token. Expired tokens yield
	// apperrors.ErrSessionExpired, anything else apperrors.ErrUnauthorized.
	ParseAccessToken(ctx context.Context, token string) (string, error)
}

// AuthSvcFacade handles registration and password login.
type AuthSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}
