package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
	"github.com/zvanbay-arch/transfer-test/internal/repository"
)

// ReviewService handles client reviews of completed orders.
type ReviewService struct {
	orderRepo   repository.OrderRepository
	profileRepo repository.DriverProfileRepository
	reviewRepo  repository.DriverReviewRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(
	orderRepo repository.OrderRepository,
	profileRepo repository.DriverProfileRepository,
	reviewRepo repository.DriverReviewRepository,
) *ReviewService {
	return &ReviewService{
		orderRepo:   orderRepo,
		profileRepo: profileRepo,
		reviewRepo:  reviewRepo,
	}
}

// ReviewOrder records a client's rating of a completed order and
// recomputes the driver's average rating. One review per order.
func (s *ReviewService) ReviewOrder(ctx context.Context, clientID, orderID string, rating int, comment string) (*domain.DriverReview, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.ClientID != clientID {
		return nil, ErrNotAuthorized
	}

	if order.Status != domain.OrderStatusCompleted {
		return nil, ErrOrderNotCompleted
	}

	if _, err := s.reviewRepo.GetByOrderID(ctx, orderID); err == nil {
		return nil, ErrAlreadyReviewed
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, order.DriverID)
	if err != nil {
		return nil, err
	}

	review := &domain.DriverReview{
		ID:        uuid.New().String(),
		ProfileID: profile.ID,
		ClientID:  clientID,
		OrderID:   orderID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	avg, err := s.reviewRepo.AverageForProfile(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.SetRating(ctx, profile.ID, avg); err != nil {
		return nil, err
	}

	return review, nil
}
