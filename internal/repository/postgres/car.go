package postgres

import (
	"context"
	"database/sql"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
)

// CarRepository is a PostgreSQL implementation of repository.CarRepository.
type CarRepository struct {
	q Querier
}

// NewCarRepository creates a new PostgreSQL car repository.
func NewCarRepository(db *sql.DB) *CarRepository {
	return &CarRepository{q: db}
}

// Create persists a new car.
func (r *CarRepository) Create(ctx context.Context, car *domain.Car) error {
	query := `
		INSERT INTO cars (id, profile_id, make, model, year, color, license_plate, capacity, has_air_conditioning, has_wifi, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.ExecContext(ctx, query,
		car.ID,
		car.ProfileID,
		car.Make,
		car.Model,
		car.Year,
		car.Color,
		car.LicensePlate,
		car.Capacity,
		car.HasAirConditioning,
		car.HasWifi,
		car.CreatedAt,
	)

	return translateError(err)
}

// ListByProfile retrieves all cars for a profile.
func (r *CarRepository) ListByProfile(ctx context.Context, profileID string) ([]*domain.Car, error) {
	query := `
		SELECT id, profile_id, make, model, year, color, license_plate, capacity, has_air_conditioning, has_wifi, created_at
		FROM cars
		WHERE profile_id = $1
		ORDER BY created_at
	`

	rows, err := r.q.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []*domain.Car
	for rows.Next() {
		var car domain.Car
		if err := rows.Scan(
			&car.ID,
			&car.ProfileID,
			&car.Make,
			&car.Model,
			&car.Year,
			&car.Color,
			&car.LicensePlate,
			&car.Capacity,
			&car.HasAirConditioning,
			&car.HasWifi,
			&car.CreatedAt,
		); err != nil {
			return nil, err
		}
		cars = append(cars, &car)
	}
	return cars, rows.Err()
}
