// Package alerting turns classification outcomes into durable alerts and
// manages their lifecycle. It orchestrates the scoring pipeline: every
// inbound link, report or message flows through here on its way to the
// database.
package alerting

import (
	"context"

	"github.com/guardiao60/linkguard/internal/domain"
)

// AlertStore is the persistence surface the materializer and lifecycle
// manager need. *database.AlertRepository satisfies it.
type AlertStore interface {
	Create(ctx context.Context, alert *domain.Alert) error
	GetByID(ctx context.Context, id int64) (*domain.Alert, error)
	List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error)
	Acknowledge(ctx context.Context, id int64) (*domain.Alert, error)
}

// LinkCheckStore persists the link classification audit trail.
type LinkCheckStore interface {
	Create(ctx context.Context, check *domain.LinkCheck) error
	Recent(ctx context.Context, limit int) ([]domain.LinkCheck, error)
}

// ReportStore persists user scam reports.
type ReportStore interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id int64) (*domain.Report, error)
}

// MessageStore persists ingested messages.
type MessageStore interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	List(ctx context.Context, limit, offset int) ([]domain.Message, error)
	MarkProcessed(ctx context.Context, id int64) error
}
