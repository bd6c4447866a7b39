package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zvanbay-arch/transfer-test/internal/auth"
	"github.com/zvanbay-arch/transfer-test/internal/domain"
	"github.com/zvanbay-arch/transfer-test/internal/repository"
)

// AuthService handles registration, login and credential resolution.
type AuthService struct {
	userRepo    repository.UserRepository
	profileRepo repository.DriverProfileRepository
	tokens      *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	profileRepo repository.DriverProfileRepository,
	tokens *auth.TokenManager,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
	}
}

// RegisterRequest contains the parameters for registering a user.
type RegisterRequest struct {
	Email    string
	Password string
	FullName string
	Role     domain.Role
}

// Register creates a new user. Only client and driver roles can be
// self-assigned; administrators are seeded at startup. Registering a
// driver also creates an empty, unverified driver profile.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || req.FullName == "" {
		return nil, ErrInvalidCredentials
	}

	role := req.Role
	if role == "" {
		role = domain.RoleClient
	}
	if role != domain.RoleClient && role != domain.RoleDriver {
		return nil, ErrInvalidRole
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index is the authority; the lookup above only
		// shortcuts the common case.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if role == domain.RoleDriver {
		profile := &domain.DriverProfile{
			ID:              uuid.New().String(),
			UserID:          user.ID,
			DocumentsStatus: domain.DocumentStatusPending,
			CreatedAt:       time.Now(),
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// LoginResult contains the outcome of a successful login.
type LoginResult struct {
	User        *domain.User
	Token       string
	RedirectURL string
}

// Login verifies credentials and issues an access token. The redirect URL
// points at the caller's role dashboard.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:        user,
		Token:       token,
		RedirectURL: "/" + string(user.Role) + "/dashboard",
	}, nil
}

// ResolveToken validates a raw credential and resolves it to an active
// user. Used by the authentication middleware.
func (s *AuthService) ResolveToken(ctx context.Context, raw string) (*domain.User, error) {
	if raw == "" {
		return nil, ErrAuthenticationRequired
	}

	userID, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, ErrAuthenticationRequired
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthenticationRequired
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrAuthenticationRequired
	}

	return user, nil
}
