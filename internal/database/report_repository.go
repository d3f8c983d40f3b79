package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/guardiao60/linkguard/internal/domain"
)

// ReportRepository handles database operations for user scam reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts a new report and fills in its ID and timestamp.
func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (url, description, reporter_hash, evidence)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		report.URL,
		report.Description,
		report.ReporterHash,
		pq.Array(report.Evidence),
	).Scan(&report.ID, &report.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetByID retrieves a single report.
func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	var report domain.Report
	query := `
		SELECT id, url, description, reporter_hash, evidence, created_at
		FROM reports
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&report.ID,
		&report.URL,
		&report.Description,
		&report.ReporterHash,
		pq.Array(&report.Evidence),
		&report.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}
