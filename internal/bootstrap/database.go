package bootstrap

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/guardiao60/linkguard/internal/config"
	"github.com/guardiao60/linkguard/internal/database"
	"github.com/guardiao60/linkguard/internal/logger"
)

// DatabaseComponents holds the database connection and repositories.
type DatabaseComponents struct {
	DB         *sqlx.DB
	Alerts     *database.AlertRepository
	Reports    *database.ReportRepository
	LinkChecks *database.LinkCheckRepository
	Messages   *database.MessageRepository
}

// SetupDatabase connects to PostgreSQL, applies the schema and builds
// the repositories.
func SetupDatabase(cfg *config.Config, log logger.Logger) (*DatabaseComponents, error) {
	log.Info("connecting to PostgreSQL database",
		logger.String("host", cfg.Database.Host),
		logger.Int("port", cfg.Database.Port),
		logger.String("database", cfg.Database.Database))

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Info("database connected")

	return &DatabaseComponents{
		DB:         db,
		Alerts:     database.NewAlertRepository(db),
		Reports:    database.NewReportRepository(db),
		LinkChecks: database.NewLinkCheckRepository(db),
		Messages:   database.NewMessageRepository(db),
	}, nil
}
