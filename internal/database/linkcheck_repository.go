package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/guardiao60/linkguard/internal/domain"
)

// LinkCheckRepository handles the audit trail of link classifications.
type LinkCheckRepository struct {
	db *sqlx.DB
}

// NewLinkCheckRepository creates a new link check repository.
func NewLinkCheckRepository(db *sqlx.DB) *LinkCheckRepository {
	return &LinkCheckRepository{db: db}
}

// Create inserts a new link check record.
func (r *LinkCheckRepository) Create(ctx context.Context, check *domain.LinkCheck) error {
	query := `
		INSERT INTO link_checks (url, is_safe, score, reasons, sources)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		check.URL,
		check.IsSafe,
		check.Score,
		pq.Array(check.Reasons),
		pq.Array(check.Sources),
	).Scan(&check.ID, &check.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create link check: %w", err)
	}
	return nil
}

// Recent returns the latest link checks, newest first.
func (r *LinkCheckRepository) Recent(ctx context.Context, limit int) ([]domain.LinkCheck, error) {
	query := `
		SELECT id, url, is_safe, score, reasons, sources, created_at
		FROM link_checks
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list link checks: %w", err)
	}
	defer rows.Close()

	var checks []domain.LinkCheck
	for rows.Next() {
		var check domain.LinkCheck
		if err := rows.Scan(
			&check.ID,
			&check.URL,
			&check.IsSafe,
			&check.Score,
			pq.Array(&check.Reasons),
			pq.Array(&check.Sources),
			&check.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan link check: %w", err)
		}
		checks = append(checks, check)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate link checks: %w", err)
	}
	return checks, nil
}
