package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/guardiao60/linkguard/internal/domain"
)

// MessageRepository handles database operations for ingested messages.
type MessageRepository struct {
	db *sqlx.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message and fills in its ID and timestamp.
func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (sender, body)
		VALUES ($1, $2)
		RETURNING id, processed, received_at
	`

	err := r.db.QueryRowContext(ctx, query, msg.Sender, msg.Body).
		Scan(&msg.ID, &msg.Processed, &msg.ReceivedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// GetByID retrieves a single message.
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	var msg domain.Message
	query := `
		SELECT id, sender, body, processed, received_at
		FROM messages
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &msg, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return &msg, nil
}

// List returns messages newest first.
func (r *MessageRepository) List(ctx context.Context, limit, offset int) ([]domain.Message, error) {
	query := `
		SELECT id, sender, body, processed, received_at
		FROM messages
		ORDER BY received_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	messages := []domain.Message{}
	if err := r.db.SelectContext(ctx, &messages, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// ListUnprocessed returns the oldest unprocessed messages, up to limit.
func (r *MessageRepository) ListUnprocessed(ctx context.Context, limit int) ([]domain.Message, error) {
	query := `
		SELECT id, sender, body, processed, received_at
		FROM messages
		WHERE NOT processed
		ORDER BY received_at ASC, id ASC
		LIMIT $1
	`

	messages := []domain.Message{}
	if err := r.db.SelectContext(ctx, &messages, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list unprocessed messages: %w", err)
	}
	return messages, nil
}

// MarkProcessed flips the processed flag. Missing ids are ErrNotFound.
func (r *MessageRepository) MarkProcessed(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE messages SET processed = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark message processed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
