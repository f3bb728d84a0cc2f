// Command cbp-server serves the regional indicators over HTTP.
package main

import (
	"log/slog"
	"os"

	"cbpmetrics/internal/app"
	"cbpmetrics/internal/config"
	"cbpmetrics/internal/infrastructure"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", slog.String("error", err.Error()))
		logger = slog.Default()
	}

	application, err := app.NewApplication(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
