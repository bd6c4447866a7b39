package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
	"github.com/zvanbay-arch/transfer-test/internal/repository"
)

// DriverReviewRepository is a PostgreSQL implementation of
// repository.DriverReviewRepository.
type DriverReviewRepository struct {
	q Querier
}

// NewDriverReviewRepository creates a new PostgreSQL review repository.
func NewDriverReviewRepository(db *sql.DB) *DriverReviewRepository {
	return &DriverReviewRepository{q: db}
}

// NewDriverReviewRepositoryWithTx creates a review repository using a transaction.
func NewDriverReviewRepositoryWithTx(tx *sql.Tx) *DriverReviewRepository {
	return &DriverReviewRepository{q: tx}
}

// Create appends a new review.
func (r *DriverReviewRepository) Create(ctx context.Context, review *domain.DriverReview) error {
	query := `
		INSERT INTO driver_reviews (id, profile_id, client_id, order_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		review.ID,
		review.ProfileID,
		review.ClientID,
		review.OrderID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)

	return translateError(err)
}

// GetByOrderID retrieves the review for an order, if any.
func (r *DriverReviewRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.DriverReview, error) {
	query := `
		SELECT id, profile_id, client_id, order_id, rating, comment, created_at
		FROM driver_reviews WHERE order_id = $1
	`

	var review domain.DriverReview
	err := r.q.QueryRowContext(ctx, query, orderID).Scan(
		&review.ID,
		&review.ProfileID,
		&review.ClientID,
		&review.OrderID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// AverageForProfile computes the average rating over a profile's reviews.
func (r *DriverReviewRepository) AverageForProfile(ctx context.Context, profileID string) (float64, error) {
	query := `SELECT COALESCE(AVG(rating), 0) FROM driver_reviews WHERE profile_id = $1`

	var avg float64
	err := r.q.QueryRowContext(ctx, query, profileID).Scan(&avg)
	return avg, err
}

// AdminActionRepository is a PostgreSQL implementation of
// repository.AdminActionRepository.
type AdminActionRepository struct {
	q Querier
}

// NewAdminActionRepository creates a new PostgreSQL admin action repository.
func NewAdminActionRepository(db *sql.DB) *AdminActionRepository {
	return &AdminActionRepository{q: db}
}

// NewAdminActionRepositoryWithTx creates an admin action repository using a transaction.
func NewAdminActionRepositoryWithTx(tx *sql.Tx) *AdminActionRepository {
	return &AdminActionRepository{q: tx}
}

// Create appends an audit record.
func (r *AdminActionRepository) Create(ctx context.Context, action *domain.AdminAction) error {
	query := `
		INSERT INTO admin_actions (id, admin_id, action_type, target_user_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		action.ID,
		action.AdminID,
		action.ActionType,
		nullString(action.TargetUserID),
		action.Details,
		action.CreatedAt,
	)

	return err
}
