package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
	"github.com/zvanbay-arch/transfer-test/internal/repository"
)

// OrderRepository is a PostgreSQL implementation of repository.OrderRepository.
type OrderRepository struct {
	q Querier
}

// NewOrderRepository creates a new PostgreSQL order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{q: db}
}

// NewOrderRepositoryWithTx creates an order repository using a transaction.
func NewOrderRepositoryWithTx(tx *sql.Tx) *OrderRepository {
	return &OrderRepository{q: tx}
}

const orderColumns = `id, client_id, driver_id, pickup_location, dropoff_location, pickup_time, passengers_count, luggage_count, client_price, final_price, status, created_at, accepted_at, completed_at`

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, client_id, driver_id, pickup_location, dropoff_location, pickup_time, passengers_count, luggage_count, client_price, final_price, status, created_at, accepted_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	var finalPrice sql.NullFloat64
	if order.HasFinalPrice {
		finalPrice = sql.NullFloat64{Float64: order.FinalPrice, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		order.ID,
		order.ClientID,
		nullString(order.DriverID),
		order.PickupLocation,
		order.DropoffLocation,
		order.PickupTime,
		order.PassengersCount,
		order.LuggageCount,
		order.ClientPrice,
		finalPrice,
		order.Status,
		order.CreatedAt,
		nullTime(order.AcceptedAt),
		nullTime(order.CompletedAt),
	)

	return err
}

// GetByID retrieves an order by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// ListByClient retrieves a client's orders, newest first.
func (r *OrderRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE client_id = $1 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, clientID)
}

// ListByDriver retrieves a driver's orders, newest first.
func (r *OrderRepository) ListByDriver(ctx context.Context, driverID string) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE driver_id = $1 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, driverID)
}

// ListAvailable retrieves pending orders with a pickup time at or after now.
func (r *OrderRepository) ListAvailable(ctx context.Context, now time.Time) ([]*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE status = $1 AND pickup_time >= $2
		ORDER BY created_at DESC
	`
	return r.queryMany(ctx, query, domain.OrderStatusPending, now)
}

// List retrieves orders matching the filter, newest first.
func (r *OrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE ($1 = '' OR status = $1)
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC
	`
	return r.queryMany(ctx, query, string(filter.Status), nullTime(filter.CreatedFrom), nullTime(filter.CreatedTo))
}

// AcceptPending assigns a driver to an order only while it is still
// pending. The status check in the WHERE clause is what makes two
// concurrent accepts resolve to a single winner.
func (r *OrderRepository) AcceptPending(ctx context.Context, id, driverID string, at time.Time) error {
	query := `
		UPDATE orders
		SET driver_id = $1, status = $2, accepted_at = $3
		WHERE id = $4 AND status = $5
	`
	return r.execConditional(ctx, query, driverID, domain.OrderStatusAccepted, at, id, domain.OrderStatusPending)
}

// CompleteAccepted finalizes an order only while it is still accepted.
func (r *OrderRepository) CompleteAccepted(ctx context.Context, id string, finalPrice float64, at time.Time) error {
	query := `
		UPDATE orders
		SET status = $1, final_price = $2, completed_at = $3
		WHERE id = $4 AND status = $5
	`
	return r.execConditional(ctx, query, domain.OrderStatusCompleted, finalPrice, at, id, domain.OrderStatusAccepted)
}

// CancelActive cancels an order only while it is pending or accepted.
func (r *OrderRepository) CancelActive(ctx context.Context, id string) error {
	query := `
		UPDATE orders
		SET status = $1
		WHERE id = $2 AND status IN ($3, $4)
	`
	return r.execConditional(ctx, query, domain.OrderStatusCancelled, id, domain.OrderStatusPending, domain.OrderStatusAccepted)
}

// CountByStatus counts orders by status and creation time.
func (r *OrderRepository) CountByStatus(ctx context.Context, status domain.OrderStatus, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM orders
		WHERE ($1 = '' OR status = $1)
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
	`

	var count int
	err := r.q.QueryRowContext(ctx, query, string(status), nullTime(since)).Scan(&count)
	return count, err
}

// CountByClient counts a client's orders with the given status.
func (r *OrderRepository) CountByClient(ctx context.Context, clientID string, status domain.OrderStatus) (int, error) {
	query := `
		SELECT COUNT(*) FROM orders
		WHERE client_id = $1 AND ($2 = '' OR status = $2)
	`

	var count int
	err := r.q.QueryRowContext(ctx, query, clientID, string(status)).Scan(&count)
	return count, err
}

// CountByDriver counts a driver's orders with the given status.
func (r *OrderRepository) CountByDriver(ctx context.Context, driverID string, status domain.OrderStatus) (int, error) {
	query := `
		SELECT COUNT(*) FROM orders
		WHERE driver_id = $1 AND ($2 = '' OR status = $2)
	`

	var count int
	err := r.q.QueryRowContext(ctx, query, driverID, string(status)).Scan(&count)
	return count, err
}

// SumRevenue sums final prices over completed orders.
func (r *OrderRepository) SumRevenue(ctx context.Context, since time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(COALESCE(final_price, 0)), 0) FROM orders
		WHERE status = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
	`

	var sum float64
	err := r.q.QueryRowContext(ctx, query, domain.OrderStatusCompleted, nullTime(since)).Scan(&sum)
	return sum, err
}

// SumSpentByClient sums final prices over a client's completed orders.
func (r *OrderRepository) SumSpentByClient(ctx context.Context, clientID string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(COALESCE(final_price, 0)), 0) FROM orders
		WHERE client_id = $1 AND status = $2
	`

	var sum float64
	err := r.q.QueryRowContext(ctx, query, clientID, domain.OrderStatusCompleted).Scan(&sum)
	return sum, err
}

// SumEarningsByDriver sums a driver's earnings over completed orders.
func (r *OrderRepository) SumEarningsByDriver(ctx context.Context, driverID string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(COALESCE(final_price, client_price, 0)), 0) FROM orders
		WHERE driver_id = $1 AND status = $2
	`

	var sum float64
	err := r.q.QueryRowContext(ctx, query, driverID, domain.OrderStatusCompleted).Scan(&sum)
	return sum, err
}

func (r *OrderRepository) execConditional(ctx context.Context, query string, args ...any) error {
	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *OrderRepository) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var driverID sql.NullString
	var finalPrice sql.NullFloat64
	var acceptedAt, completedAt sql.NullTime

	err := row.Scan(
		&order.ID,
		&order.ClientID,
		&driverID,
		&order.PickupLocation,
		&order.DropoffLocation,
		&order.PickupTime,
		&order.PassengersCount,
		&order.LuggageCount,
		&order.ClientPrice,
		&finalPrice,
		&order.Status,
		&order.CreatedAt,
		&acceptedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if driverID.Valid {
		order.DriverID = driverID.String
	}
	if finalPrice.Valid {
		order.FinalPrice = finalPrice.Float64
		order.HasFinalPrice = true
	}
	if acceptedAt.Valid {
		order.AcceptedAt = acceptedAt.Time
	}
	if completedAt.Valid {
		order.CompletedAt = completedAt.Time
	}

	return &order, nil
}
