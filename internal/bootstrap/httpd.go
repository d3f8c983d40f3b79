package bootstrap

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/guardiao60/linkguard/internal/alerting"
	"github.com/guardiao60/linkguard/internal/api"
	"github.com/guardiao60/linkguard/internal/config"
	"github.com/guardiao60/linkguard/internal/logger"
	"github.com/guardiao60/linkguard/internal/processor"
	"github.com/guardiao60/linkguard/internal/reputation"
	"github.com/guardiao60/linkguard/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

// HTTPComponents holds everything the httpd binary runs.
type HTTPComponents struct {
	DB       *sqlx.DB
	Server   *api.Server
	Analyzer *processor.Analyzer
}

// NewHTTPComponents wires the full service: database, reputation
// providers, pipeline, background analyzer and HTTP server.
func NewHTTPComponents(cfg *config.Config, log logger.Logger) (*HTTPComponents, error) {
	dbComps, err := SetupDatabase(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	tel := telemetry.NewProvider()
	aggregator := reputation.NewAggregator(cfg.Reputation, tel, log)
	materializer := alerting.NewMaterializer(dbComps.Alerts, cfg.Scoring.TextAlertKeywordMin, log)

	pipeline := alerting.NewPipeline(
		cfg.Scoring,
		aggregator,
		dbComps.LinkChecks,
		dbComps.Reports,
		dbComps.Messages,
		materializer,
		tel,
		log,
	)
	lifecycle := alerting.NewLifecycle(dbComps.Alerts, tel, log)
	analyzer := processor.NewAnalyzer(dbComps.Messages, pipeline, cfg.Analyzer, log)

	handler := api.NewHandler(pipeline, lifecycle, dbComps.Reports, dbComps.Messages, log)
	server := api.NewServer(handler, cfg, tel.Handler(), log)

	return &HTTPComponents{
		DB:       dbComps.DB,
		Server:   server,
		Analyzer: analyzer,
	}, nil
}

// HTTPShutdownTimeout returns the timeout for HTTP server graceful shutdown.
func HTTPShutdownTimeout() time.Duration {
	return shutdownTimeout
}
