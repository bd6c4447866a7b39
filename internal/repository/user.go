package repository

import (
	"context"
	"time"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create adds a new user. Returns ErrDuplicate if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List retrieves users, optionally filtered by role (empty = all).
	List(ctx context.Context, role domain.Role) ([]*domain.User, error)

	// Count counts users with the given role (empty = all) created at or
	// after since (zero = all time).
	Count(ctx context.Context, role domain.Role, since time.Time) (int, error)
}
