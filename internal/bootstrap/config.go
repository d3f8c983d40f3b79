// Package bootstrap wires configuration, database, pipeline and HTTP
// server components for the linkguard binary.
package bootstrap

import (
	"fmt"

	"github.com/guardiao60/linkguard/internal/config"
	"github.com/guardiao60/linkguard/internal/logger"
)

// LoadConfig loads configuration. Uses defaults if the file is absent.
func LoadConfig() (*config.Config, error) {
	return config.Load(config.GetConfigPath("config.yml"))
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}
