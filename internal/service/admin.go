package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
	"github.com/zvanbay-arch/transfer-test/internal/repository"
	"github.com/zvanbay-arch/transfer-test/internal/repository/postgres"
)

// AdminService handles driver verification review and reporting.
type AdminService struct {
	db           *sql.DB
	userRepo     repository.UserRepository
	profileRepo  repository.DriverProfileRepository
	documentRepo repository.DriverDocumentRepository
	orderRepo    repository.OrderRepository
	actionRepo   repository.AdminActionRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	db *sql.DB,
	userRepo repository.UserRepository,
	profileRepo repository.DriverProfileRepository,
	documentRepo repository.DriverDocumentRepository,
	orderRepo repository.OrderRepository,
	actionRepo repository.AdminActionRepository,
) *AdminService {
	return &AdminService{
		db:           db,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		documentRepo: documentRepo,
		orderRepo:    orderRepo,
		actionRepo:   actionRepo,
	}
}

// DashboardStats are the aggregate counts shown on the admin dashboard.
// Everything is recomputed from raw rows on every call.
type DashboardStats struct {
	TotalUsers      int
	TotalClients    int
	TotalDrivers    int
	PendingDrivers  int
	TotalOrders     int
	PendingOrders   int
	CompletedOrders int
	TotalRevenue    float64
}

// Dashboard computes the dashboard counts.
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalUsers, err = s.userRepo.Count(ctx, "", time.Time{}); err != nil {
		return nil, err
	}
	if stats.TotalClients, err = s.userRepo.Count(ctx, domain.RoleClient, time.Time{}); err != nil {
		return nil, err
	}
	if stats.TotalDrivers, err = s.userRepo.Count(ctx, domain.RoleDriver, time.Time{}); err != nil {
		return nil, err
	}
	if stats.PendingDrivers, err = s.profileRepo.CountByStatus(ctx, domain.DocumentStatusPending); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.orderRepo.CountByStatus(ctx, "", time.Time{}); err != nil {
		return nil, err
	}
	if stats.PendingOrders, err = s.orderRepo.CountByStatus(ctx, domain.OrderStatusPending, time.Time{}); err != nil {
		return nil, err
	}
	if stats.CompletedOrders, err = s.orderRepo.CountByStatus(ctx, domain.OrderStatusCompleted, time.Time{}); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.orderRepo.SumRevenue(ctx, time.Time{}); err != nil {
		return nil, err
	}

	return &stats, nil
}

// ListUsers retrieves users, optionally filtered by role.
func (s *AdminService) ListUsers(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	return s.userRepo.List(ctx, role)
}

// PendingDriver bundles a pending verification submission for review.
type PendingDriver struct {
	Profile   *domain.DriverProfile
	User      *domain.User
	Documents []*domain.DriverDocument
}

// PendingDrivers retrieves all profiles awaiting review, with the
// submitting user and uploaded documents.
func (s *AdminService) PendingDrivers(ctx context.Context) ([]*PendingDriver, error) {
	profiles, err := s.profileRepo.ListByStatus(ctx, domain.DocumentStatusPending)
	if err != nil {
		return nil, err
	}

	var result []*PendingDriver
	for _, profile := range profiles {
		user, err := s.userRepo.GetByID(ctx, profile.UserID)
		if err != nil {
			return nil, err
		}

		documents, err := s.documentRepo.ListByProfile(ctx, profile.ID)
		if err != nil {
			return nil, err
		}

		result = append(result, &PendingDriver{
			Profile:   profile,
			User:      user,
			Documents: documents,
		})
	}

	return result, nil
}

// ApproveDriver approves every document of a driver's submission, marks
// the profile verified, and appends an audit record, all in one
// transaction. No per-document partial approval is exposed.
func (s *AdminService) ApproveDriver(ctx context.Context, adminID, driverUserID string) error {
	return s.reviewDriver(ctx, adminID, driverUserID, domain.DocumentStatusApproved, "")
}

// RejectDriver rejects every document of a driver's submission with the
// given reason, which is stamped onto every document row.
func (s *AdminService) RejectDriver(ctx context.Context, adminID, driverUserID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	return s.reviewDriver(ctx, adminID, driverUserID, domain.DocumentStatusRejected, reason)
}

func (s *AdminService) reviewDriver(ctx context.Context, adminID, driverUserID string, outcome domain.DocumentStatus, reason string) error {
	profile, err := s.profileRepo.GetByUserID(ctx, driverUserID)
	if err != nil {
		return err
	}

	now := time.Now()
	verified := outcome == domain.DocumentStatusApproved

	actionType := domain.AdminActionApproveDriver
	details := "Driver approved"
	if !verified {
		actionType = domain.AdminActionRejectDriver
		details = fmt.Sprintf("Driver rejected: %s", reason)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txDocumentRepo := postgres.NewDriverDocumentRepositoryWithTx(tx)
	txProfileRepo := postgres.NewDriverProfileRepositoryWithTx(tx)
	txActionRepo := postgres.NewAdminActionRepositoryWithTx(tx)

	if err = txDocumentRepo.ReviewAll(ctx, profile.ID, outcome, adminID, now, reason); err != nil {
		return err
	}

	if err = txProfileRepo.SetDocumentsStatus(ctx, profile.ID, outcome, verified); err != nil {
		return err
	}

	if err = txActionRepo.Create(ctx, &domain.AdminAction{
		ID:           uuid.New().String(),
		AdminID:      adminID,
		ActionType:   actionType,
		TargetUserID: driverUserID,
		Details:      details,
		CreatedAt:    now,
	}); err != nil {
		return err
	}

	return tx.Commit()
}

// AdminOrder is an order joined with the client and driver identities.
type AdminOrder struct {
	Order  *domain.Order
	Client *domain.User
	Driver *domain.User // nil until accepted
}

// OrderListFilter narrows the admin order listing. Dates are inclusive.
type OrderListFilter struct {
	Status    domain.OrderStatus
	StartDate time.Time
	EndDate   time.Time
}

// ListOrders retrieves orders with client and driver identities, newest
// first, optionally filtered by status and creation date range.
func (s *AdminService) ListOrders(ctx context.Context, filter OrderListFilter) ([]*AdminOrder, error) {
	orders, err := s.orderRepo.List(ctx, repository.OrderFilter{
		Status:      filter.Status,
		CreatedFrom: filter.StartDate,
		CreatedTo:   filter.EndDate,
	})
	if err != nil {
		return nil, err
	}

	var result []*AdminOrder
	for _, order := range orders {
		client, err := s.userRepo.GetByID(ctx, order.ClientID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}

		var driver *domain.User
		if order.DriverID != "" {
			driver, err = s.userRepo.GetByID(ctx, order.DriverID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
		}

		result = append(result, &AdminOrder{Order: order, Client: client, Driver: driver})
	}

	return result, nil
}

// PeriodStats is the period-bucketed statistics view.
type PeriodStats struct {
	Period            string
	StartDate         time.Time
	EndDate           time.Time
	NewUsers          int
	NewClients        int
	NewDrivers        int
	TotalOrders       int
	CompletedOrders   int
	CancelledOrders   int
	PendingOrders     int
	Revenue           float64
	AverageOrderValue float64
}

// Statistics computes aggregate statistics for orders and registrations
// created since the start of the given period.
func (s *AdminService) Statistics(ctx context.Context, period string) (*PeriodStats, error) {
	now := time.Now()
	start := PeriodStart(now, period)

	stats := &PeriodStats{
		Period:    period,
		StartDate: start,
		EndDate:   now,
	}

	var err error
	if stats.NewUsers, err = s.userRepo.Count(ctx, "", start); err != nil {
		return nil, err
	}
	if stats.NewClients, err = s.userRepo.Count(ctx, domain.RoleClient, start); err != nil {
		return nil, err
	}
	if stats.NewDrivers, err = s.userRepo.Count(ctx, domain.RoleDriver, start); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.orderRepo.CountByStatus(ctx, "", start); err != nil {
		return nil, err
	}
	if stats.CompletedOrders, err = s.orderRepo.CountByStatus(ctx, domain.OrderStatusCompleted, start); err != nil {
		return nil, err
	}
	if stats.CancelledOrders, err = s.orderRepo.CountByStatus(ctx, domain.OrderStatusCancelled, start); err != nil {
		return nil, err
	}
	stats.PendingOrders = stats.TotalOrders - stats.CompletedOrders - stats.CancelledOrders

	if stats.Revenue, err = s.orderRepo.SumRevenue(ctx, start); err != nil {
		return nil, err
	}
	if stats.CompletedOrders > 0 {
		stats.AverageOrderValue = stats.Revenue / float64(stats.CompletedOrders)
	}

	return stats, nil
}

// PeriodStart truncates now to the start of the named period: day to
// midnight, week to Monday midnight, month to the 1st, year to January 1.
// An unknown period falls back to the trailing 30 days.
func PeriodStart(now time.Time, period string) time.Time {
	switch period {
	case "day":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "week":
		weekday := int(now.Weekday())
		// Monday-based week.
		offset := (weekday + 6) % 7
		monday := now.AddDate(0, 0, -offset)
		return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, now.Location())
	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case "year":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default:
		return now.AddDate(0, 0, -30)
	}
}
