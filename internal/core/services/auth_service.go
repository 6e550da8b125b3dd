package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/google/uuid"
)

const (
	msgEmailTaken           = "Email already registered"
	msgInvalidCredentials   = "Invalid credentials"
	msgRegisterFieldsNeeded = "Name, email and password are required"
	msgLoginFieldsNeeded    = "Email and password are required"
	msgInvalidEmail         = "Please provide a valid email"
)

var msgPasswordTooLong = fmt.Sprintf("Password must be at most %d bytes", utils.MaxPasswordBytes)

// unknownUserHash is what Login compares against when the email has no account.
var unknownUserHash = sync.OnceValue(func() string {
	hash, _ := utils.HashPassword(uuid.NewString())
	return hash
})

// authService implements AuthSvcFacade on top of the credential store and the token service.
type authService struct {
	BaseService
	userRepo        portsrepo.UserRepositoryFacade
	tokens          portssvc.TokenSvcFacade
	comparePassword func(password, hash string) bool
}

// AuthServiceOption is a functional option for configuring the auth service
type AuthServiceOption func(*authService)

// WithPasswordComparer replaces the bcrypt comparison used by Login.
func WithPasswordComparer(compare func(password, hash string) bool) AuthServiceOption {
	return func(s *authService) {
		if compare != nil {
			s.comparePassword = compare
		}
	}
}

// NewAuthService creates a new authService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, tokens portssvc.TokenSvcFacade, options ...AuthServiceOption) portssvc.AuthSvcFacade {
	s := &authService{
		userRepo:        userRepo,
		tokens:          tokens,
		comparePassword: utils.CheckPasswordHash,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Register creates a user with a bcrypt-hashed password and signs them in.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := domain.NormalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, apperrors.NewValidationError(msgRegisterFieldsNeeded)
	}
	if valueValidator.Var(email, "email,max=254") != nil {
		return nil, apperrors.NewValidationError(msgInvalidEmail)
	}
	if len(req.Password) > utils.MaxPasswordBytes {
		return nil, apperrors.NewValidationError(msgPasswordTooLong)
	}

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, apperrors.NewConflictError(msgEmailTaken)
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up email during registration")
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		AuditFields:  domain.NewAuditFields(userID, time.Now().UTC()),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		// a concurrent registration can still hit the unique index
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError(msgEmailTaken)
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", userID))
	return s.issue(ctx, &user)
}

// Login verifies the credentials. Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := domain.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperrors.NewValidationError(msgLoginFieldsNeeded)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.comparePassword(req.Password, unknownUserHash())
			return nil, apperrors.NewAppError(http.StatusUnauthorized, msgInvalidCredentials, apperrors.ErrInvalidCredentials)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if !s.comparePassword(req.Password, user.PasswordHash) {
		s.LogInfo(ctx, "Password mismatch on login", slog.String("user_id", user.UserID))
		return nil, apperrors.NewAppError(http.StatusUnauthorized, msgInvalidCredentials, apperrors.ErrInvalidCredentials)
	}

	return s.issue(ctx, user)
}

func (s *authService) issue(ctx context.Context, user *domain.User) (*dto.AuthResponse, error) {
	token, _, err := s.tokens.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: dto.ToUserResponse(user)}, nil
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)
