package alerting

import (
	"context"
	"fmt"

	"github.com/guardiao60/linkguard/internal/domain"
	"github.com/guardiao60/linkguard/internal/logger"
	"github.com/guardiao60/linkguard/internal/telemetry"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Lifecycle serves and acknowledges alerts. Alerts only move one way,
// new to ack, and are never reopened or deleted.
type Lifecycle struct {
	alerts    AlertStore
	telemetry *telemetry.Provider
	log       logger.Logger
}

// NewLifecycle creates a lifecycle manager over the alert store.
// The telemetry provider may be nil.
func NewLifecycle(alerts AlertStore, tel *telemetry.Provider, log logger.Logger) *Lifecycle {
	return &Lifecycle{alerts: alerts, telemetry: tel, log: log}
}

// List returns alerts newest first. A zero limit gets the default page
// size; requests above the maximum are clamped.
func (l *Lifecycle) List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	return l.alerts.List(ctx, filter)
}

// Get returns a single alert by id.
func (l *Lifecycle) Get(ctx context.Context, id int64) (*domain.Alert, error) {
	return l.alerts.GetByID(ctx, id)
}

// Acknowledge transitions an alert to ack, stamping ack_at. Re-acking is
// a no-op success; an unknown id returns domain.ErrNotFound.
func (l *Lifecycle) Acknowledge(ctx context.Context, id int64) (*domain.Alert, error) {
	alert, err := l.alerts.Acknowledge(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("acknowledge alert %d: %w", id, err)
	}
	if l.telemetry != nil {
		l.telemetry.RecordAcknowledgement(ctx)
	}
	l.log.Info("alert acknowledged", logger.Int64("alert_id", id))
	return alert, nil
}
