package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"cbpmetrics/internal/infrastructure"
)

// HealthService reports process liveness and build information
type HealthService struct {
	version   string
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                      `json:"status"`
	Timestamp time.Time                   `json:"timestamp"`
	Version   string                      `json:"version"`
	GoVersion string                      `json:"go_version"`
	Runtime   infrastructure.RuntimeStats `json:"runtime"`
}

// NewHealthService creates a new health service
func NewHealthService(version string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		startTime: time.Now(),
		logger:    logger.With(slog.String("service", "health")),
	}
}

// HealthCheck returns the current health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   hs.version,
		GoVersion: runtime.Version(),
		Runtime:   infrastructure.CollectRuntimeStats(hs.startTime),
	}

	hs.logger.DebugContext(ctx, "health check completed",
		slog.String("status", status.Status),
		slog.Int("goroutines", status.Runtime.Goroutines))

	return status
}
