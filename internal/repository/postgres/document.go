package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/zvanbay-arch/transfer-test/internal/domain"
)

// DriverDocumentRepository is a PostgreSQL implementation of
// repository.DriverDocumentRepository.
type DriverDocumentRepository struct {
	q Querier
}

// NewDriverDocumentRepository creates a new PostgreSQL document repository.
func NewDriverDocumentRepository(db *sql.DB) *DriverDocumentRepository {
	return &DriverDocumentRepository{q: db}
}

// NewDriverDocumentRepositoryWithTx creates a document repository using a transaction.
func NewDriverDocumentRepositoryWithTx(tx *sql.Tx) *DriverDocumentRepository {
	return &DriverDocumentRepository{q: tx}
}

// Create persists a new document row.
func (r *DriverDocumentRepository) Create(ctx context.Context, doc *domain.DriverDocument) error {
	query := `
		INSERT INTO driver_documents (id, profile_id, document_type, file_path, side, uploaded_at, status, reviewed_by, reviewed_at, rejection_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		doc.ID,
		doc.ProfileID,
		doc.Type,
		doc.FilePath,
		doc.Side,
		doc.UploadedAt,
		doc.Status,
		nullString(doc.ReviewedBy),
		nullTime(doc.ReviewedAt),
		nullString(doc.RejectionReason),
	)

	return err
}

// ListByProfile retrieves all documents for a profile.
func (r *DriverDocumentRepository) ListByProfile(ctx context.Context, profileID string) ([]*domain.DriverDocument, error) {
	query := `
		SELECT id, profile_id, document_type, file_path, side, uploaded_at, status, reviewed_by, reviewed_at, rejection_reason
		FROM driver_documents
		WHERE profile_id = $1
		ORDER BY uploaded_at
	`

	rows, err := r.q.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*domain.DriverDocument
	for rows.Next() {
		var doc domain.DriverDocument
		var reviewedBy, reason sql.NullString
		var reviewedAt sql.NullTime
		if err := rows.Scan(
			&doc.ID,
			&doc.ProfileID,
			&doc.Type,
			&doc.FilePath,
			&doc.Side,
			&doc.UploadedAt,
			&doc.Status,
			&reviewedBy,
			&reviewedAt,
			&reason,
		); err != nil {
			return nil, err
		}
		if reviewedBy.Valid {
			doc.ReviewedBy = reviewedBy.String
		}
		if reviewedAt.Valid {
			doc.ReviewedAt = reviewedAt.Time
		}
		if reason.Valid {
			doc.RejectionReason = reason.String
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

// ReviewAll stamps every document of a profile with the review outcome.
func (r *DriverDocumentRepository) ReviewAll(ctx context.Context, profileID string, status domain.DocumentStatus, reviewerID string, reviewedAt time.Time, reason string) error {
	query := `
		UPDATE driver_documents
		SET status = $1, reviewed_by = $2, reviewed_at = $3, rejection_reason = $4
		WHERE profile_id = $5
	`

	_, err := r.q.ExecContext(ctx, query, status, reviewerID, reviewedAt, nullString(reason), profileID)
	return err
}
