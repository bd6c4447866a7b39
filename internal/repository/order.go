package repository

import (
	"context"
	"time"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
)

// OrderFilter narrows an admin order listing. Zero values mean "no filter".
type OrderFilter struct {
	Status      domain.OrderStatus
	CreatedFrom time.Time
	CreatedTo   time.Time
}

// OrderRepository defines the persistence operations for orders.
type OrderRepository interface {
	// Create persists a new order.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by ID.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// ListByClient retrieves a client's orders, newest first.
	ListByClient(ctx context.Context, clientID string) ([]*domain.Order, error)

	// ListByDriver retrieves a driver's orders, newest first.
	ListByDriver(ctx context.Context, driverID string) ([]*domain.Order, error)

	// ListAvailable retrieves pending orders with a pickup time at or
	// after now, newest first.
	ListAvailable(ctx context.Context, now time.Time) ([]*domain.Order, error)

	// List retrieves orders matching the filter, newest first.
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)

	// AcceptPending assigns a driver to an order if and only if it is
	// still pending. Returns ErrNotFound when no pending row matched,
	// which covers both a missing order and a lost race.
	AcceptPending(ctx context.Context, id, driverID string, at time.Time) error

	// CompleteAccepted finalizes an order if and only if it is still
	// accepted, setting the final price and completion time together.
	CompleteAccepted(ctx context.Context, id string, finalPrice float64, at time.Time) error

	// CancelActive cancels an order if and only if it is pending or
	// accepted.
	CancelActive(ctx context.Context, id string) error

	// CountByStatus counts orders with the given status (empty = all)
	// created at or after since (zero = all time).
	CountByStatus(ctx context.Context, status domain.OrderStatus, since time.Time) (int, error)

	// CountByClient counts a client's orders with the given status
	// (empty = all).
	CountByClient(ctx context.Context, clientID string, status domain.OrderStatus) (int, error)

	// CountByDriver counts a driver's orders with the given status
	// (empty = all).
	CountByDriver(ctx context.Context, driverID string, status domain.OrderStatus) (int, error)

	// SumRevenue sums final prices over completed orders created at or
	// after since (zero = all time). NULL final prices count as 0.
	SumRevenue(ctx context.Context, since time.Time) (float64, error)

	// SumSpentByClient sums final prices over a client's completed
	// orders. NULL final prices count as 0.
	SumSpentByClient(ctx context.Context, clientID string) (float64, error)

	// SumEarningsByDriver sums a driver's earnings over completed orders,
	// falling back to the client price when no final price was recorded.
	SumEarningsByDriver(ctx context.Context, driverID string) (float64, error)
}
