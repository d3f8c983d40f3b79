package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/guardiao60/linkguard/internal/bootstrap"
	"github.com/guardiao60/linkguard/internal/logger"
)

func main() {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg, err := bootstrap.CreateLogger(cfg)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	logg.Info("starting linkguard",
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port))

	components, err := bootstrap.NewHTTPComponents(cfg, logg)
	if err != nil {
		logg.Fatal("bootstrap failed", logger.Error(err))
	}
	defer func() { _ = components.DB.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := components.Analyzer.Start(ctx); err != nil {
		logg.Fatal("start analyzer", logger.Error(err))
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- components.Server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logg.Error("server error", logger.Error(err))
		os.Exit(1)
	case sig := <-shutdown:
		logg.Info("shutdown signal received", logger.String("signal", sig.String()))

		components.Analyzer.Stop()
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), bootstrap.HTTPShutdownTimeout())
		defer shutdownCancel()

		if err := components.Server.Shutdown(shutdownCtx); err != nil {
			logg.Error("graceful shutdown failed", logger.Error(err))
			os.Exit(1)
		}

		logg.Info("server stopped gracefully")
	}
}
