package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrate creates the schema if it does not exist. Statements are
// idempotent so the service can bootstrap a fresh database on startup.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS link_checks (
			id         BIGSERIAL PRIMARY KEY,
			url        TEXT NOT NULL,
			is_safe    BOOLEAN NOT NULL,
			score      INTEGER NOT NULL,
			reasons    TEXT[] NOT NULL DEFAULT '{}',
			sources    TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS reports (
			id            BIGSERIAL PRIMARY KEY,
			url           TEXT,
			description   TEXT NOT NULL,
			reporter_hash TEXT NOT NULL DEFAULT '',
			evidence      TEXT[] NOT NULL DEFAULT '{}',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id          BIGSERIAL PRIMARY KEY,
			sender      TEXT NOT NULL DEFAULT '',
			body        TEXT NOT NULL,
			processed   BOOLEAN NOT NULL DEFAULT FALSE,
			received_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS alerts (
			id          BIGSERIAL PRIMARY KEY,
			type        TEXT NOT NULL,
			url         TEXT,
			description TEXT NOT NULL,
			severity    TEXT NOT NULL,
			score       INTEGER,
			status      TEXT NOT NULL DEFAULT 'new',
			message_id  BIGINT REFERENCES messages(id),
			report_id   BIGINT REFERENCES reports(id),
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			ack_at      TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_status ON alerts (status)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_created_at ON alerts (created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_unprocessed ON messages (received_at) WHERE NOT processed`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
