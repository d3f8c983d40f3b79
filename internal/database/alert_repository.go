package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/guardiao60/linkguard/internal/domain"
)

// AlertRepository handles database operations for alerts.
type AlertRepository struct {
	db *sqlx.DB
}

// NewAlertRepository creates a new alert repository.
func NewAlertRepository(db *sqlx.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Create inserts a new alert and fills in its ID, status and timestamp.
func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	query := `
		INSERT INTO alerts (type, url, description, severity, score, message_id, report_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, status, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		alert.Type,
		alert.URL,
		alert.Description,
		alert.Severity,
		alert.Score,
		alert.MessageID,
		alert.ReportID,
	).Scan(&alert.ID, &alert.Status, &alert.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

// GetByID retrieves a single alert.
func (r *AlertRepository) GetByID(ctx context.Context, id int64) (*domain.Alert, error) {
	var alert domain.Alert
	query := `
		SELECT id, type, url, description, severity, score, status,
		       message_id, report_id, created_at, ack_at
		FROM alerts
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &alert, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return &alert, nil
}

// List returns alerts newest first, narrowed by the filter.
func (r *AlertRepository) List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Severity != "" {
		args = append(args, filter.Severity)
		conditions = append(conditions, fmt.Sprintf("severity = $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		conditions = append(conditions, fmt.Sprintf("(description ILIKE $%d OR url ILIKE $%d)", len(args), len(args)))
	}

	query := `
		SELECT id, type, url, description, severity, score, status,
		       message_id, report_id, created_at, ack_at
		FROM alerts
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	alerts := []domain.Alert{}
	if err := r.db.SelectContext(ctx, &alerts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

// Acknowledge marks an alert acknowledged. Acknowledging an already
// acknowledged alert is a no-op; an unknown id is domain.ErrNotFound.
func (r *AlertRepository) Acknowledge(ctx context.Context, id int64) (*domain.Alert, error) {
	query := `
		UPDATE alerts
		SET status = 'ack', ack_at = NOW()
		WHERE id = $1 AND status = 'new'
	`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return nil, fmt.Errorf("failed to acknowledge alert: %w", err)
	}

	// A zero-row update is either "already acked" (fine, re-acking is a
	// no-op) or "no such alert"; GetByID distinguishes the two.
	return r.GetByID(ctx, id)
}
