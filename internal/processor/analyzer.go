// Package processor runs the background message analyzer: a poller that
// drains unprocessed messages through the classification pipeline so
// ingested messages get scored even when nobody calls the analyze
// endpoint.
package processor

import (
	"context"
	"errors"
	"time"

	"github.com/guardiao60/linkguard/internal/alerting"
	"github.com/guardiao60/linkguard/internal/config"
	"github.com/guardiao60/linkguard/internal/domain"
	"github.com/guardiao60/linkguard/internal/logger"
)

// MessageSource lists unprocessed messages for the analyzer.
// *database.MessageRepository satisfies it.
type MessageSource interface {
	ListUnprocessed(ctx context.Context, limit int) ([]domain.Message, error)
}

// Analyzer polls for unprocessed messages and runs them through the
// pipeline. One analyzer per service instance.
type Analyzer struct {
	messages MessageSource
	pipeline *alerting.Pipeline
	log      logger.Logger

	batchSize    int
	pollInterval time.Duration
	running      bool
	stopChan     chan struct{}
}

// NewAnalyzer creates an analyzer from validated configuration.
func NewAnalyzer(messages MessageSource, pipeline *alerting.Pipeline, cfg config.AnalyzerConfig, log logger.Logger) *Analyzer {
	return &Analyzer{
		messages:     messages,
		pipeline:     pipeline,
		log:          log,
		batchSize:    cfg.BatchSize,
		pollInterval: cfg.PollInterval,
		stopChan:     make(chan struct{}),
	}
}

// Start launches the polling loop.
func (a *Analyzer) Start(ctx context.Context) error {
	if a.running {
		return errors.New("analyzer is already running")
	}

	a.running = true
	a.log.Info("analyzer starting",
		logger.Int("batch_size", a.batchSize),
		logger.Duration("poll_interval", a.pollInterval))

	go a.run(ctx)
	return nil
}

// Stop stops the polling loop.
func (a *Analyzer) Stop() {
	if !a.running {
		return
	}

	a.log.Info("analyzer stopping")
	close(a.stopChan)
	a.running = false
}

func (a *Analyzer) run(ctx context.Context) {
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	// Process immediately on start
	if err := a.processPending(ctx); err != nil {
		a.log.Error("failed to process pending messages on startup", logger.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			a.log.Info("analyzer stopped due to context cancellation")
			return
		case <-a.stopChan:
			a.log.Info("analyzer stopped")
			return
		case <-ticker.C:
			if err := a.processPending(ctx); err != nil {
				a.log.Error("failed to process pending messages", logger.Error(err))
			}
		}
	}
}

// processPending analyzes one batch of unprocessed messages. A message
// that fails to analyze is logged and skipped; it stays unprocessed and
// is retried on the next tick.
func (a *Analyzer) processPending(ctx context.Context) error {
	pending, err := a.messages.ListUnprocessed(ctx, a.batchSize)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		a.log.Debug("no pending messages")
		return nil
	}

	a.log.Info("found pending messages", logger.Int("count", len(pending)))

	for i := range pending {
		msg := pending[i]
		if _, _, _, err := a.pipeline.AnalyzeMessage(ctx, &msg); err != nil {
			a.log.Warn("message analysis failed",
				logger.Int64("message_id", msg.ID),
				logger.Error(err))
		}
	}
	return nil
}
