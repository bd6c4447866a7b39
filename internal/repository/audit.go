package repository

import (
	"context"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
)

// DriverReviewRepository defines the persistence operations for reviews.
// Reviews are append-only.
type DriverReviewRepository interface {
	// Create adds a new review. Returns ErrDuplicate if the order was
	// already reviewed.
	Create(ctx context.Context, review *domain.DriverReview) error

	// GetByOrderID retrieves the review for an order, if any.
	GetByOrderID(ctx context.Context, orderID string) (*domain.DriverReview, error)

	// AverageForProfile computes the average rating over a profile's
	// reviews. Returns 0 when there are none.
	AverageForProfile(ctx context.Context, profileID string) (float64, error)
}

// AdminActionRepository defines the persistence operations for the
// append-only admin audit log.
type AdminActionRepository interface {
	// Create appends an audit record.
	Create(ctx context.Context, action *domain.AdminAction) error
}
