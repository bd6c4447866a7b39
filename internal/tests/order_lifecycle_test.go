package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
	"github.com/zvanbay-arch/transfer-test/internal/repository"
	"github.com/zvanbay-arch/transfer-test/internal/service"
)

// ──────────────────────────────────────────────
// ORDER LIFECYCLE
// ──────────────────────────────────────────────

func newOrderService(orderRepo *MockOrderRepository, profileRepo *MockDriverProfileRepository) *service.OrderService {
	// The *sql.DB is only touched by the transactional completion path;
	// everything else runs against the repositories.
	return service.NewOrderService(nil, orderRepo, profileRepo, nil)
}

func approvedProfile(id, userID string) *domain.DriverProfile {
	return &domain.DriverProfile{
		ID:              id,
		UserID:          userID,
		DocumentsStatus: domain.DocumentStatusApproved,
		IsVerified:      true,
	}
}

func TestOrder_CreateValidation(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	svc := newOrderService(orderRepo, NewMockDriverProfileRepository())

	pickup := time.Now().Add(24 * time.Hour)

	cases := []struct {
		name    string
		req     service.CreateOrderRequest
		wantErr error
	}{
		{
			name:    "zero pickup time",
			req:     service.CreateOrderRequest{ClientID: "client-1", PassengersCount: 2, ClientPrice: 100},
			wantErr: service.ErrInvalidPickupTime,
		},
		{
			name:    "zero passengers",
			req:     service.CreateOrderRequest{ClientID: "client-1", PickupTime: pickup, PassengersCount: 0, ClientPrice: 100},
			wantErr: service.ErrInvalidPassengersCount,
		},
		{
			name:    "too many passengers",
			req:     service.CreateOrderRequest{ClientID: "client-1", PickupTime: pickup, PassengersCount: 9, ClientPrice: 100},
			wantErr: service.ErrInvalidPassengersCount,
		},
		{
			name:    "negative luggage",
			req:     service.CreateOrderRequest{ClientID: "client-1", PickupTime: pickup, PassengersCount: 2, LuggageCount: -1, ClientPrice: 100},
			wantErr: service.ErrInvalidLuggageCount,
		},
		{
			name:    "non-positive price",
			req:     service.CreateOrderRequest{ClientID: "client-1", PickupTime: pickup, PassengersCount: 2, ClientPrice: 0},
			wantErr: service.ErrInvalidPrice,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	if orderRepo.CreateCallCount != 0 {
		t.Errorf("expected no creates on validation failure, got %d", orderRepo.CreateCallCount)
	}
}

func TestOrder_CreateStartsPending(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	svc := newOrderService(orderRepo, NewMockDriverProfileRepository())

	order, err := svc.Create(context.Background(), service.CreateOrderRequest{
		ClientID:        "client-1",
		PickupLocation:  "Airport",
		DropoffLocation: "Hotel Plaza",
		PickupTime:      time.Now().Add(24 * time.Hour),
		PassengersCount: 3,
		LuggageCount:    2,
		ClientPrice:     150,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.ID == "" {
		t.Error("expected generated order ID")
	}
	if order.Status != domain.OrderStatusPending {
		t.Errorf("expected status %s, got %s", domain.OrderStatusPending, order.Status)
	}
	if order.DriverID != "" {
		t.Error("new order must not have a driver")
	}
	if order.HasFinalPrice {
		t.Error("new order must not have a final price")
	}
}

func TestOrder_AcceptAssignsDriverAndTimestamp(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	profileRepo := NewMockDriverProfileRepository()
	profileRepo.AddProfile(approvedProfile("profile-1", "driver-1"))
	orderRepo.AddOrder(&domain.Order{
		ID:       "order-1",
		ClientID: "client-1",
		Status:   domain.OrderStatusPending,
	})

	svc := newOrderService(orderRepo, profileRepo)

	order, err := svc.Accept(context.Background(), "driver-1", "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.Status != domain.OrderStatusAccepted {
		t.Errorf("expected status %s, got %s", domain.OrderStatusAccepted, order.Status)
	}
	if order.DriverID != "driver-1" {
		t.Errorf("expected driver-1 assigned, got %q", order.DriverID)
	}
	if order.AcceptedAt.IsZero() {
		t.Error("acceptance must set the accepted timestamp")
	}
}

func TestOrder_AcceptRequiresApprovedDriver(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	profileRepo := NewMockDriverProfileRepository()
	orderRepo.AddOrder(&domain.Order{ID: "order-1", ClientID: "client-1", Status: domain.OrderStatusPending})

	// Driver with a pending verification.
	profileRepo.AddProfile(&domain.DriverProfile{
		ID:              "profile-2",
		UserID:          "driver-2",
		DocumentsStatus: domain.DocumentStatusPending,
	})

	svc := newOrderService(orderRepo, profileRepo)

	// No profile at all.
	if _, err := svc.Accept(context.Background(), "driver-1", "order-1"); !errors.Is(err, service.ErrDriverNotVerified) {
		t.Errorf("expected ErrDriverNotVerified, got %v", err)
	}

	// Profile exists but not approved.
	if _, err := svc.Accept(context.Background(), "driver-2", "order-1"); !errors.Is(err, service.ErrDriverNotVerified) {
		t.Errorf("expected ErrDriverNotVerified, got %v", err)
	}

	if orderRepo.AcceptPendingCallCount != 0 {
		t.Errorf("unverified drivers must not reach the accept update, got %d calls", orderRepo.AcceptPendingCallCount)
	}
	if got := orderRepo.GetOrder("order-1").Status; got != domain.OrderStatusPending {
		t.Errorf("order must stay pending, got %s", got)
	}
}

func TestOrder_AcceptOnlyFromPending(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	profileRepo := NewMockDriverProfileRepository()
	profileRepo.AddProfile(approvedProfile("profile-1", "driver-1"))
	profileRepo.AddProfile(approvedProfile("profile-2", "driver-2"))
	orderRepo.AddOrder(&domain.Order{
		ID:       "order-1",
		ClientID: "client-1",
		Status:   domain.OrderStatusPending,
	})

	svc := newOrderService(orderRepo, profileRepo)

	if _, err := svc.Accept(context.Background(), "driver-1", "order-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A second accept loses: the order is no longer pending.
	if _, err := svc.Accept(context.Background(), "driver-2", "order-1"); !errors.Is(err, service.ErrOrderNotAvailable) {
		t.Errorf("expected ErrOrderNotAvailable, got %v", err)
	}

	if got := orderRepo.GetOrder("order-1").DriverID; got != "driver-1" {
		t.Errorf("first accept must keep the order, got driver %q", got)
	}

	// Accepting a missing order is a plain not-found.
	if _, err := svc.Accept(context.Background(), "driver-2", "no-such-order"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOrder_CompleteGuards(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	profileRepo := NewMockDriverProfileRepository()
	orderRepo.AddOrder(&domain.Order{
		ID:       "order-1",
		ClientID: "client-1",
		DriverID: "driver-1",
		Status:   domain.OrderStatusAccepted,
	})
	orderRepo.AddOrder(&domain.Order{
		ID:       "order-2",
		ClientID: "client-1",
		DriverID: "driver-1",
		Status:   domain.OrderStatusCompleted,
	})

	svc := newOrderService(orderRepo, profileRepo)

	// Only the assigned driver may complete.
	if _, err := svc.Complete(context.Background(), "driver-2", "order-1"); !errors.Is(err, service.ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized, got %v", err)
	}

	// Completed orders cannot be completed again.
	if _, err := svc.Complete(context.Background(), "driver-1", "order-2"); !errors.Is(err, service.ErrOrderNotCompletable) {
		t.Errorf("expected ErrOrderNotCompletable, got %v", err)
	}
}

func TestOrder_CompleteSetsFinalPriceAndTimestamp(t *testing.T) {
	t.Parallel()

	// The service runs completion in a database transaction, so the
	// conditional update semantics are exercised on the repository here.
	orderRepo := NewMockOrderRepository()
	orderRepo.AddOrder(&domain.Order{
		ID:          "order-1",
		ClientID:    "client-1",
		DriverID:    "driver-1",
		ClientPrice: 150,
		Status:      domain.OrderStatusAccepted,
	})

	now := time.Now()
	if err := orderRepo.CompleteAccepted(context.Background(), "order-1", 150, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order := orderRepo.GetOrder("order-1")
	if order.Status != domain.OrderStatusCompleted {
		t.Errorf("expected status %s, got %s", domain.OrderStatusCompleted, order.Status)
	}
	if !order.HasFinalPrice || order.FinalPrice != 150 {
		t.Errorf("expected final price 150, got %v (set=%v)", order.FinalPrice, order.HasFinalPrice)
	}
	if order.CompletedAt.IsZero() {
		t.Error("completion must set the completed timestamp")
	}

	// A second completion finds no accepted row.
	if err := orderRepo.CompleteAccepted(context.Background(), "order-1", 150, now); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOrder_CancelRules(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	svc := newOrderService(orderRepo, NewMockDriverProfileRepository())

	client := &domain.User{ID: "client-1", Role: domain.RoleClient}
	otherClient := &domain.User{ID: "client-2", Role: domain.RoleClient}
	driver := &domain.User{ID: "driver-1", Role: domain.RoleDriver}
	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}

	orderRepo.AddOrder(&domain.Order{ID: "pending", ClientID: "client-1", Status: domain.OrderStatusPending})
	orderRepo.AddOrder(&domain.Order{ID: "accepted", ClientID: "client-1", DriverID: "driver-1", Status: domain.OrderStatusAccepted})
	orderRepo.AddOrder(&domain.Order{ID: "completed", ClientID: "client-1", DriverID: "driver-1", Status: domain.OrderStatusCompleted})
	orderRepo.AddOrder(&domain.Order{ID: "admin-target", ClientID: "client-1", Status: domain.OrderStatusPending})

	// A stranger cannot cancel someone else's order.
	if _, err := svc.Cancel(context.Background(), otherClient, "pending"); !errors.Is(err, service.ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized, got %v", err)
	}

	// The owning client cancels a pending order.
	order, err := svc.Cancel(context.Background(), client, "pending")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != domain.OrderStatusCancelled {
		t.Errorf("expected status %s, got %s", domain.OrderStatusCancelled, order.Status)
	}

	// The assigned driver cancels an accepted order.
	order, err = svc.Cancel(context.Background(), driver, "accepted")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != domain.OrderStatusCancelled {
		t.Errorf("expected status %s, got %s", domain.OrderStatusCancelled, order.Status)
	}

	// Nothing leaves a terminal status.
	if _, err := svc.Cancel(context.Background(), client, "completed"); !errors.Is(err, service.ErrOrderAlreadyClosed) {
		t.Errorf("expected ErrOrderAlreadyClosed, got %v", err)
	}
	if _, err := svc.Cancel(context.Background(), client, "pending"); !errors.Is(err, service.ErrOrderAlreadyClosed) {
		t.Errorf("expected ErrOrderAlreadyClosed, got %v", err)
	}

	// Admins may cancel any active order.
	if _, err := svc.Cancel(context.Background(), admin, "admin-target"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOrder_GetEnforcesOwnership(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	svc := newOrderService(orderRepo, NewMockDriverProfileRepository())

	orderRepo.AddOrder(&domain.Order{ID: "order-1", ClientID: "client-1", DriverID: "driver-1", Status: domain.OrderStatusAccepted})

	cases := []struct {
		name    string
		user    *domain.User
		wantErr error
	}{
		{"owning client", &domain.User{ID: "client-1", Role: domain.RoleClient}, nil},
		{"other client", &domain.User{ID: "client-2", Role: domain.RoleClient}, service.ErrNotAuthorized},
		{"assigned driver", &domain.User{ID: "driver-1", Role: domain.RoleDriver}, nil},
		{"other driver", &domain.User{ID: "driver-2", Role: domain.RoleDriver}, service.ErrNotAuthorized},
		{"admin", &domain.User{ID: "admin-1", Role: domain.RoleAdmin}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Get(context.Background(), tc.user, "order-1")
			if tc.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestOrder_AvailableListingRequiresApproval(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	profileRepo := NewMockDriverProfileRepository()
	profileRepo.AddProfile(approvedProfile("profile-1", "driver-1"))

	future := time.Now().Add(48 * time.Hour)
	past := time.Now().Add(-48 * time.Hour)
	orderRepo.AddOrder(&domain.Order{ID: "future", ClientID: "client-1", Status: domain.OrderStatusPending, PickupTime: future})
	orderRepo.AddOrder(&domain.Order{ID: "past", ClientID: "client-1", Status: domain.OrderStatusPending, PickupTime: past})
	orderRepo.AddOrder(&domain.Order{ID: "taken", ClientID: "client-1", DriverID: "driver-9", Status: domain.OrderStatusAccepted, PickupTime: future})

	svc := newOrderService(orderRepo, profileRepo)

	if _, err := svc.ListAvailable(context.Background(), "driver-unknown"); !errors.Is(err, service.ErrDriverNotVerified) {
		t.Errorf("expected ErrDriverNotVerified, got %v", err)
	}

	orders, err := svc.ListAvailable(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != "future" {
		t.Errorf("expected only the future pending order, got %d orders", len(orders))
	}
}

func TestOrder_DriverStatsFallsBackToClientPrice(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	profileRepo := NewMockDriverProfileRepository()
	profile := approvedProfile("profile-1", "driver-1")
	profile.Rating = 4.5
	profileRepo.AddProfile(profile)

	orderRepo.AddOrder(&domain.Order{ID: "o1", DriverID: "driver-1", Status: domain.OrderStatusCompleted, ClientPrice: 100, FinalPrice: 120, HasFinalPrice: true})
	orderRepo.AddOrder(&domain.Order{ID: "o2", DriverID: "driver-1", Status: domain.OrderStatusCompleted, ClientPrice: 80})
	orderRepo.AddOrder(&domain.Order{ID: "o3", DriverID: "driver-1", Status: domain.OrderStatusCancelled, ClientPrice: 50})

	svc := newOrderService(orderRepo, profileRepo)

	stats, err := svc.StatsForDriver(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalTrips != 3 || stats.CompletedTrips != 2 || stats.CancelledTrips != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.TotalEarnings != 200 {
		t.Errorf("expected earnings 200 (120 final + 80 fallback), got %v", stats.TotalEarnings)
	}
	if stats.Rating != 4.5 {
		t.Errorf("expected rating 4.5, got %v", stats.Rating)
	}
	if stats.VerificationStatus != domain.DocumentStatusApproved {
		t.Errorf("expected approved status, got %s", stats.VerificationStatus)
	}
}
