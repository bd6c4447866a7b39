package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
	"github.com/zvanbay-arch/transfer-test/internal/redis"
	"github.com/zvanbay-arch/transfer-test/internal/repository"
	"github.com/zvanbay-arch/transfer-test/internal/repository/postgres"
)

const (
	maxPassengers = 8
	acceptLockTTL = 5 * time.Second
)

// OrderService handles the order lifecycle.
type OrderService struct {
	db          *sql.DB
	orderRepo   repository.OrderRepository
	profileRepo repository.DriverProfileRepository
	locks       *redis.LockStore
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	db *sql.DB,
	orderRepo repository.OrderRepository,
	profileRepo repository.DriverProfileRepository,
	locks *redis.LockStore,
) *OrderService {
	return &OrderService{
		db:          db,
		orderRepo:   orderRepo,
		profileRepo: profileRepo,
		locks:       locks,
	}
}

// CreateOrderRequest contains the parameters for creating an order.
type CreateOrderRequest struct {
	ClientID        string
	PickupLocation  string
	DropoffLocation string
	PickupTime      time.Time
	PassengersCount int
	LuggageCount    int
	ClientPrice     float64
}

// Create inserts a new pending order. The price is fixed at creation and
// the pickup time is not required to be in the future.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	if req.PickupTime.IsZero() {
		return nil, ErrInvalidPickupTime
	}
	if req.PassengersCount < 1 || req.PassengersCount > maxPassengers {
		return nil, ErrInvalidPassengersCount
	}
	if req.LuggageCount < 0 {
		return nil, ErrInvalidLuggageCount
	}
	if req.ClientPrice <= 0 {
		return nil, ErrInvalidPrice
	}

	order := &domain.Order{
		ID:              uuid.New().String(),
		ClientID:        req.ClientID,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		PickupTime:      req.PickupTime,
		PassengersCount: req.PassengersCount,
		LuggageCount:    req.LuggageCount,
		ClientPrice:     req.ClientPrice,
		Status:          domain.OrderStatusPending,
		CreatedAt:       time.Now(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// ListForClient retrieves a client's orders, newest first.
func (s *OrderService) ListForClient(ctx context.Context, clientID string) ([]*domain.Order, error) {
	return s.orderRepo.ListByClient(ctx, clientID)
}

// ListForDriver retrieves a driver's orders, newest first.
func (s *OrderService) ListForDriver(ctx context.Context, driverID string) ([]*domain.Order, error) {
	return s.orderRepo.ListByDriver(ctx, driverID)
}

// ListAvailable retrieves pending orders with a future pickup time.
// Only approved drivers may browse them.
func (s *OrderService) ListAvailable(ctx context.Context, driverUserID string) ([]*domain.Order, error) {
	if err := s.requireApprovedDriver(ctx, driverUserID); err != nil {
		return nil, err
	}

	return s.orderRepo.ListAvailable(ctx, time.Now())
}

// Get retrieves an order. Clients see only their own orders, drivers only
// orders assigned to them; admins see everything.
func (s *OrderService) Get(ctx context.Context, user *domain.User, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := checkOrderOwnership(user, order); err != nil {
		return nil, err
	}

	return order, nil
}

// Accept transitions a pending order to accepted and assigns the driver.
// The repository update is conditional on the order still being pending,
// so of two concurrent accepts exactly one wins; a short order-scoped
// redis lock additionally serializes the attempts.
func (s *OrderService) Accept(ctx context.Context, driverUserID, orderID string) (*domain.Order, error) {
	if err := s.requireApprovedDriver(ctx, driverUserID); err != nil {
		return nil, err
	}

	if s.locks != nil {
		acquired, err := s.locks.AcquireOrderLock(ctx, orderID, acceptLockTTL)
		if err == nil && !acquired {
			return nil, ErrOrderNotAvailable
		}
		if err == nil {
			defer func() { _ = s.locks.ReleaseOrderLock(ctx, orderID) }()
		}
	}

	err := s.orderRepo.AcceptPending(ctx, orderID, driverUserID, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Distinguish a missing order from a lost race.
			if _, getErr := s.orderRepo.GetByID(ctx, orderID); getErr != nil {
				return nil, getErr
			}
			return nil, ErrOrderNotAvailable
		}
		return nil, err
	}

	return s.orderRepo.GetByID(ctx, orderID)
}

// Complete transitions an accepted order to completed. The final price is
// fixed to the client-quoted price and the driver's trip counter is
// incremented, all in one transaction.
func (s *OrderService) Complete(ctx context.Context, driverUserID, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.DriverID != driverUserID {
		return nil, ErrNotAuthorized
	}

	if order.Status != domain.OrderStatusAccepted {
		return nil, ErrOrderNotCompletable
	}

	profile, err := s.profileRepo.GetByUserID(ctx, driverUserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txOrderRepo := postgres.NewOrderRepositoryWithTx(tx)
	txProfileRepo := postgres.NewDriverProfileRepositoryWithTx(tx)

	if err = txOrderRepo.CompleteAccepted(ctx, orderID, order.ClientPrice, now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrOrderNotCompletable
		}
		return nil, err
	}

	if profile != nil {
		if err = txProfileRepo.IncrementTrips(ctx, profile.ID); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return s.orderRepo.GetByID(ctx, orderID)
}

// Cancel cancels an order. The owning client or the assigned driver may
// cancel from pending or accepted; nothing leaves completed or cancelled.
// No reason is recorded.
func (s *OrderService) Cancel(ctx context.Context, user *domain.User, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := checkOrderOwnership(user, order); err != nil {
		return nil, err
	}

	if order.Status == domain.OrderStatusCompleted || order.Status == domain.OrderStatusCancelled {
		return nil, ErrOrderAlreadyClosed
	}

	if err := s.orderRepo.CancelActive(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderAlreadyClosed
		}
		return nil, err
	}

	return s.orderRepo.GetByID(ctx, orderID)
}

// ClientStats summarizes a client's order history.
type ClientStats struct {
	TotalOrders     int
	CompletedOrders int
	PendingOrders   int
	TotalSpent      float64
}

// StatsForClient computes a client's order statistics.
func (s *OrderService) StatsForClient(ctx context.Context, clientID string) (*ClientStats, error) {
	total, err := s.orderRepo.CountByClient(ctx, clientID, "")
	if err != nil {
		return nil, err
	}
	completed, err := s.orderRepo.CountByClient(ctx, clientID, domain.OrderStatusCompleted)
	if err != nil {
		return nil, err
	}
	pending, err := s.orderRepo.CountByClient(ctx, clientID, domain.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	spent, err := s.orderRepo.SumSpentByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return &ClientStats{
		TotalOrders:     total,
		CompletedOrders: completed,
		PendingOrders:   pending,
		TotalSpent:      spent,
	}, nil
}

// DriverStats summarizes a driver's order history.
type DriverStats struct {
	TotalTrips         int
	CompletedTrips     int
	CancelledTrips     int
	ActiveTrips        int
	TotalEarnings      float64
	Rating             float64
	VerificationStatus domain.DocumentStatus
}

// StatsForDriver computes a driver's order statistics.
func (s *OrderService) StatsForDriver(ctx context.Context, driverUserID string) (*DriverStats, error) {
	total, err := s.orderRepo.CountByDriver(ctx, driverUserID, "")
	if err != nil {
		return nil, err
	}
	completed, err := s.orderRepo.CountByDriver(ctx, driverUserID, domain.OrderStatusCompleted)
	if err != nil {
		return nil, err
	}
	cancelled, err := s.orderRepo.CountByDriver(ctx, driverUserID, domain.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	active, err := s.orderRepo.CountByDriver(ctx, driverUserID, domain.OrderStatusAccepted)
	if err != nil {
		return nil, err
	}
	earnings, err := s.orderRepo.SumEarningsByDriver(ctx, driverUserID)
	if err != nil {
		return nil, err
	}

	stats := &DriverStats{
		TotalTrips:     total,
		CompletedTrips: completed,
		CancelledTrips: cancelled,
		ActiveTrips:    active,
		TotalEarnings:  earnings,
	}

	profile, err := s.profileRepo.GetByUserID(ctx, driverUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return stats, nil
		}
		return nil, err
	}

	stats.Rating = profile.Rating
	stats.VerificationStatus = profile.DocumentsStatus
	return stats, nil
}

// requireApprovedDriver fails unless the user's profile exists and has an
// approved verification status.
func (s *OrderService) requireApprovedDriver(ctx context.Context, driverUserID string) error {
	profile, err := s.profileRepo.GetByUserID(ctx, driverUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDriverNotVerified
		}
		return err
	}

	if profile.DocumentsStatus != domain.DocumentStatusApproved {
		return ErrDriverNotVerified
	}

	return nil
}

// checkOrderOwnership gates order access: clients own what they created,
// drivers what is assigned to them, admins everything.
func checkOrderOwnership(user *domain.User, order *domain.Order) error {
	switch user.Role {
	case domain.RoleClient:
		if order.ClientID != user.ID {
			return ErrNotAuthorized
		}
	case domain.RoleDriver:
		if order.DriverID != user.ID {
			return ErrNotAuthorized
		}
	case domain.RoleAdmin:
	default:
		return ErrNotAuthorized
	}
	return nil
}
