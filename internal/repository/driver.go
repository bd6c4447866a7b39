package repository

import (
	"context"
	"time"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
)

// DriverProfileRepository defines the persistence operations for driver
// profiles.
type DriverProfileRepository interface {
	// Create adds a new driver profile.
	Create(ctx context.Context, profile *domain.DriverProfile) error

	// GetByID retrieves a profile by its own ID.
	GetByID(ctx context.Context, id string) (*domain.DriverProfile, error)

	// GetByUserID retrieves the profile belonging to a user.
	GetByUserID(ctx context.Context, userID string) (*domain.DriverProfile, error)

	// UpdateContact updates the driver-editable profile fields.
	UpdateContact(ctx context.Context, id, phone string, experienceYears int, bio string) error

	// SetDocumentsStatus updates the verification outcome for a profile.
	SetDocumentsStatus(ctx context.Context, id string, status domain.DocumentStatus, verified bool) error

	// IncrementTrips increments the cumulative trip counter by one.
	IncrementTrips(ctx context.Context, id string) error

	// SetRating stores a recomputed average rating.
	SetRating(ctx context.Context, id string, rating float64) error

	// ListByStatus retrieves profiles with the given verification status.
	ListByStatus(ctx context.Context, status domain.DocumentStatus) ([]*domain.DriverProfile, error)

	// CountByStatus counts profiles with the given verification status.
	CountByStatus(ctx context.Context, status domain.DocumentStatus) (int, error)
}

// DriverDocumentRepository defines the persistence operations for
// verification documents.
type DriverDocumentRepository interface {
	// Create adds a new document row.
	Create(ctx context.Context, doc *domain.DriverDocument) error

	// ListByProfile retrieves all documents for a profile.
	ListByProfile(ctx context.Context, profileID string) ([]*domain.DriverDocument, error)

	// ReviewAll stamps every document of a profile with the review
	// outcome. The reason is stored only for rejections.
	ReviewAll(ctx context.Context, profileID string, status domain.DocumentStatus, reviewerID string, reviewedAt time.Time, reason string) error
}

// CarRepository defines the persistence operations for cars.
type CarRepository interface {
	// Create adds a new car. Returns ErrDuplicate if the license plate is
	// already registered.
	Create(ctx context.Context, car *domain.Car) error

	// ListByProfile retrieves all cars for a profile.
	ListByProfile(ctx context.Context, profileID string) ([]*domain.Car, error)
}
