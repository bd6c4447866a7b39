package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
	"github.com/zvanbay-arch/transfer-test/internal/repository"
)

// DriverProfileRepository is a PostgreSQL implementation of
// repository.DriverProfileRepository.
type DriverProfileRepository struct {
	q Querier
}

// NewDriverProfileRepository creates a new PostgreSQL driver profile repository.
func NewDriverProfileRepository(db *sql.DB) *DriverProfileRepository {
	return &DriverProfileRepository{q: db}
}

// NewDriverProfileRepositoryWithTx creates a driver profile repository using a transaction.
func NewDriverProfileRepositoryWithTx(tx *sql.Tx) *DriverProfileRepository {
	return &DriverProfileRepository{q: tx}
}

const profileColumns = `id, user_id, phone, experience_years, bio, documents_status, is_verified, rating, total_trips, created_at`

// Create persists a new driver profile.
func (r *DriverProfileRepository) Create(ctx context.Context, profile *domain.DriverProfile) error {
	query := `
		INSERT INTO driver_profiles (id, user_id, phone, experience_years, bio, documents_status, is_verified, rating, total_trips, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Phone,
		profile.ExperienceYears,
		profile.Bio,
		profile.DocumentsStatus,
		profile.IsVerified,
		profile.Rating,
		profile.TotalTrips,
		profile.CreatedAt,
	)

	return translateError(err)
}

// GetByID retrieves a profile by ID.
func (r *DriverProfileRepository) GetByID(ctx context.Context, id string) (*domain.DriverProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM driver_profiles WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// GetByUserID retrieves the profile belonging to a user.
func (r *DriverProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.DriverProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM driver_profiles WHERE user_id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, userID))
}

// UpdateContact updates the driver-editable fields.
func (r *DriverProfileRepository) UpdateContact(ctx context.Context, id, phone string, experienceYears int, bio string) error {
	query := `
		UPDATE driver_profiles
		SET phone = $1, experience_years = $2, bio = $3
		WHERE id = $4
	`
	return r.exec(ctx, query, phone, experienceYears, bio, id)
}

// SetDocumentsStatus updates the verification outcome.
func (r *DriverProfileRepository) SetDocumentsStatus(ctx context.Context, id string, status domain.DocumentStatus, verified bool) error {
	query := `
		UPDATE driver_profiles
		SET documents_status = $1, is_verified = $2
		WHERE id = $3
	`
	return r.exec(ctx, query, status, verified, id)
}

// IncrementTrips increments the cumulative trip counter.
func (r *DriverProfileRepository) IncrementTrips(ctx context.Context, id string) error {
	query := `UPDATE driver_profiles SET total_trips = total_trips + 1 WHERE id = $1`
	return r.exec(ctx, query, id)
}

// SetRating stores a recomputed average rating.
func (r *DriverProfileRepository) SetRating(ctx context.Context, id string, rating float64) error {
	query := `UPDATE driver_profiles SET rating = $1 WHERE id = $2`
	return r.exec(ctx, query, rating, id)
}

// ListByStatus retrieves profiles with the given verification status.
func (r *DriverProfileRepository) ListByStatus(ctx context.Context, status domain.DocumentStatus) ([]*domain.DriverProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM driver_profiles WHERE documents_status = $1 ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.DriverProfile
	for rows.Next() {
		var profile domain.DriverProfile
		if err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.Phone,
			&profile.ExperienceYears,
			&profile.Bio,
			&profile.DocumentsStatus,
			&profile.IsVerified,
			&profile.Rating,
			&profile.TotalTrips,
			&profile.CreatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, &profile)
	}
	return profiles, rows.Err()
}

// CountByStatus counts profiles with the given verification status.
func (r *DriverProfileRepository) CountByStatus(ctx context.Context, status domain.DocumentStatus) (int, error) {
	query := `SELECT COUNT(*) FROM driver_profiles WHERE documents_status = $1`

	var count int
	err := r.q.QueryRowContext(ctx, query, status).Scan(&count)
	return count, err
}

func (r *DriverProfileRepository) exec(ctx context.Context, query string, args ...any) error {
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

func (r *DriverProfileRepository) scanOne(row *sql.Row) (*domain.DriverProfile, error) {
	var profile domain.DriverProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Phone,
		&profile.ExperienceYears,
		&profile.Bio,
		&profile.DocumentsStatus,
		&profile.IsVerified,
		&profile.Rating,
		&profile.TotalTrips,
		&profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}
