package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"cbpmetrics/internal/config"
	apierrors "cbpmetrics/internal/errors"
	"cbpmetrics/internal/infrastructure"
	customMiddleware "cbpmetrics/internal/middleware"
	"cbpmetrics/internal/services"
	handlers "cbpmetrics/internal/transport/http"
)

// Application represents the main application container
type Application struct {
	Config          *config.Config
	Router          *chi.Mux
	Server          *http.Server
	Logger          *slog.Logger
	OTelProviders   *infrastructure.OTelProviders
	RegionalService *services.RegionalService
	HealthService   *services.HealthService

	errorHandler *apierrors.ErrorHandler
	listener     net.Listener
	serveErr     chan error
}

// NewApplication wires the services, router and server for cfg
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: providers,
		errorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Development),
		serveErr:      make(chan error, 1),
	}

	if err := app.initializeServices(); err != nil {
		_ = providers.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := app.setupRouter(); err != nil {
		_ = providers.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}

	app.createServer()
	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() error {
	metrics, err := infrastructure.NewRegionalMetrics(a.OTelProviders.Meter)
	if err != nil {
		return fmt.Errorf("failed to create regional metrics: %w", err)
	}

	a.RegionalService = services.NewRegionalService(a.Config.Analysis,
		infrastructure.WithComponent(a.Logger, "regional_service"),
		services.WithTracer(a.OTelProviders.Tracer),
		services.WithMetrics(metrics),
	)
	a.HealthService = services.NewHealthService(config.AppVersion,
		infrastructure.WithComponent(a.Logger, "health_service"))
	return nil
}

func (a *Application) setupRouter() error {
	r := chi.NewRouter()

	// RequestID → RealIP → OTel → Logger → Recoverer → Timeout
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.NotFound(a.errorHandler.NotFound)
	r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.OTelProviders.Meter)
	if err != nil {
		return err
	}

	r.Group(func(r chi.Router) {
		r.Use(otelMiddleware.Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.errorHandler))
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.RateLimit.RPS,
				a.Config.RateLimit.Burst,
				a.errorHandler,
			).Handler)
		}

		a.setupAPIRoutes(r)
	})

	// Prometheus scrape endpoint, outside the middleware group
	r.Handle("/metrics", handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP))

	a.Router = r
	return nil
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	validator := customMiddleware.NewValidator(a.Logger, a.Config.Server.MaxBodyBytes)
	regionalHandler := handlers.NewRegionalHandler(a.RegionalService, validator, a.Logger, a.errorHandler)
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		r.Route("/v1", func(r chi.Router) {
			r.Use(customMiddleware.ContentTypeValidator(a.errorHandler, "application/json"))
			r.Mount("/regional", regionalHandler.Routes())
		})
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         a.Config.Server.Addr(),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start binds the listen address and serves in the background. Serve
// failures are reported on Done.
func (a *Application) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	a.listener = ln

	a.Logger.InfoContext(ctx, "starting application",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("address", ln.Addr().String()),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			a.serveErr <- err
		}
		close(a.serveErr)
	}()

	return nil
}

// Addr returns the bound address once Start has succeeded
func (a *Application) Addr() string {
	if a.listener == nil {
		return a.Server.Addr
	}
	return a.listener.Addr().String()
}

// Done is closed when the server stops, after delivering any serve error
func (a *Application) Done() <-chan error {
	return a.serveErr
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}
	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("telemetry shutdown error: %w", err))
		}
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return errors.Join(errs...)
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx); err != nil {
		return err
	}

	var serveErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("received interrupt signal")
	case serveErr = <-a.Done():
	}

	return errors.Join(serveErr, a.Stop(context.Background()))
}
