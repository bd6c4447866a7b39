package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zvanbay-arch/transfer-test/internal/auth"
	"github.com/zvanbay-arch/transfer-test/internal/domain"
	"github.com/zvanbay-arch/transfer-test/internal/service"
)

// ──────────────────────────────────────────────
// REGISTRATION AND LOGIN
// ──────────────────────────────────────────────

func newAuthService(userRepo *MockUserRepository, profileRepo *MockDriverProfileRepository) *service.AuthService {
	tokens := auth.NewTokenManager("test-secret", 30*time.Minute)
	return service.NewAuthService(userRepo, profileRepo, tokens)
}

func TestAuth_RegisterClient(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	profileRepo := NewMockDriverProfileRepository()
	svc := newAuthService(userRepo, profileRepo)

	user, err := svc.Register(context.Background(), service.RegisterRequest{
		Email:    "Alice@Example.com",
		Password: "secret123",
		FullName: "Alice Smith",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Email != "alice@example.com" {
		t.Errorf("email must be lowercased, got %q", user.Email)
	}
	if user.Role != domain.RoleClient {
		t.Errorf("role defaults to client, got %s", user.Role)
	}
	if !user.IsActive {
		t.Error("new users must be active")
	}
	if user.PasswordHash == "secret123" {
		t.Error("password must not be stored in plain text")
	}
	if profileRepo.CreateCallCount != 0 {
		t.Error("client registration must not create a driver profile")
	}
}

func TestAuth_RegisterDriverCreatesProfile(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	profileRepo := NewMockDriverProfileRepository()
	svc := newAuthService(userRepo, profileRepo)

	user, err := svc.Register(context.Background(), service.RegisterRequest{
		Email:    "bob@example.com",
		Password: "secret123",
		FullName: "Bob Jones",
		Role:     domain.RoleDriver,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile, err := profileRepo.GetByUserID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("expected a driver profile: %v", err)
	}
	if profile.DocumentsStatus != domain.DocumentStatusPending {
		t.Errorf("new driver profile must start pending, got %s", profile.DocumentsStatus)
	}
	if profile.IsVerified {
		t.Error("new driver profile must not be verified")
	}
}

func TestAuth_RegisterRejectsAdminRole(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := newAuthService(userRepo, NewMockDriverProfileRepository())

	_, err := svc.Register(context.Background(), service.RegisterRequest{
		Email:    "evil@example.com",
		Password: "secret123",
		FullName: "Evil Eve",
		Role:     domain.RoleAdmin,
	})
	if !errors.Is(err, service.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
	if userRepo.UserCount() != 0 {
		t.Error("no user must be created")
	}
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := newAuthService(userRepo, NewMockDriverProfileRepository())

	req := service.RegisterRequest{
		Email:    "carol@example.com",
		Password: "secret123",
		FullName: "Carol One",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req.FullName = "Carol Two"
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, service.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	if userRepo.UserCount() != 1 {
		t.Errorf("second registration must not be persisted, got %d users", userRepo.UserCount())
	}
}

func TestAuth_LoginIssuesToken(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := newAuthService(userRepo, NewMockDriverProfileRepository())

	if _, err := svc.Register(context.Background(), service.RegisterRequest{
		Email:    "dave@example.com",
		Password: "secret123",
		FullName: "Dave",
		Role:     domain.RoleDriver,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.Login(context.Background(), "dave@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token == "" {
		t.Error("login must issue a token")
	}
	if result.RedirectURL != "/driver/dashboard" {
		t.Errorf("expected driver dashboard redirect, got %q", result.RedirectURL)
	}

	// The issued token resolves back to the user.
	user, err := svc.ResolveToken(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "dave@example.com" {
		t.Errorf("token resolved to wrong user: %q", user.Email)
	}
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := newAuthService(userRepo, NewMockDriverProfileRepository())

	if _, err := svc.Register(context.Background(), service.RegisterRequest{
		Email:    "erin@example.com",
		Password: "secret123",
		FullName: "Erin",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Login(context.Background(), "erin@example.com", "wrong"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	// Unknown emails produce the same error as wrong passwords.
	if _, err := svc.Login(context.Background(), "nobody@example.com", "secret123"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuth_ResolveTokenRejectsInactiveUser(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	tokens := auth.NewTokenManager("test-secret", 30*time.Minute)
	svc := service.NewAuthService(userRepo, NewMockDriverProfileRepository(), tokens)

	userRepo.AddUser(&domain.User{
		ID:       "user-1",
		Email:    "frank@example.com",
		Role:     domain.RoleClient,
		IsActive: false,
	})

	token, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.ResolveToken(context.Background(), token); !errors.Is(err, service.ErrAuthenticationRequired) {
		t.Errorf("expected ErrAuthenticationRequired, got %v", err)
	}
}

func TestAuth_ResolveTokenRejectsGarbage(t *testing.T) {
	t.Parallel()

	svc := newAuthService(NewMockUserRepository(), NewMockDriverProfileRepository())

	for _, raw := range []string{"", "not-a-token", "Bearer not-a-token"} {
		if _, err := svc.ResolveToken(context.Background(), raw); !errors.Is(err, service.ErrAuthenticationRequired) {
			t.Errorf("raw %q: expected ErrAuthenticationRequired, got %v", raw, err)
		}
	}
}
