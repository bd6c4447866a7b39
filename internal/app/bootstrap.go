package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/zvanbay-arch/transfer-test/internal/auth"
	"github.com/zvanbay-arch/transfer-test/internal/config"
	"github.com/zvanbay-arch/transfer-test/internal/domain"
	"github.com/zvanbay-arch/transfer-test/internal/repository"
)

// SeedAdmin ensures the default administrator account exists.
func SeedAdmin(ctx context.Context, users repository.UserRepository, cfg config.AdminConfig) error {
	_, err := users.GetByEmail(ctx, cfg.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &domain.User{
		ID:           uuid.NewString(),
		Email:        cfg.Email,
		PasswordHash: hash,
		FullName:     cfg.FullName,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := users.Create(ctx, admin); err != nil {
		// Tolerate a concurrent seed from another instance.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	return nil
}
