package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"cbpmetrics/internal/config"
)

// InstrumentationName names the tracer and meter of this module
const InstrumentationName = "cbpmetrics"

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// InitializeOTel initializes tracing and metrics from cfg. Disabled signals
// get no-op implementations so callers never check for nil.
func InitializeOTel(cfg config.TelemetryConfig, logger *slog.Logger) (*OTelProviders, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ctx := context.Background()

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(config.AppVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", generateInstanceID()),
	)

	providers := &OTelProviders{
		Tracer:         tracenoop.NewTracerProvider().Tracer(InstrumentationName),
		Meter:          noop.NewMeterProvider().Meter(InstrumentationName),
		PrometheusHTTP: http.NotFoundHandler(),
		Logger:         logger,
	}

	if err := initializeTracing(cfg, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := initializeMetrics(cfg, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.InfoContext(ctx, "OpenTelemetry initialized",
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.String("metric_exporter", cfg.MetricExporter))

	return providers, nil
}

func initializeTracing(cfg config.TelemetryConfig, res *resource.Resource, providers *OTelProviders) error {
	var exporter sdktrace.SpanExporter
	switch cfg.TraceExporter {
	case "stdout":
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}
		exporter = exp
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)
	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(InstrumentationName, trace.WithInstrumentationVersion(config.AppVersion))
	otel.SetTracerProvider(tp)
	return nil
}

func initializeMetrics(cfg config.TelemetryConfig, res *resource.Resource, providers *OTelProviders) error {
	switch cfg.MetricExporter {
	case "prometheus":
		registry := promclient.NewRegistry()
		exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
		if err != nil {
			return fmt.Errorf("failed to create prometheus exporter: %w", err)
		}

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		providers.MeterProvider = mp
		providers.Meter = mp.Meter(InstrumentationName, metric.WithInstrumentationVersion(config.AppVersion))
		providers.PrometheusHTTP = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
		otel.SetMeterProvider(mp)
	case "none", "":
	default:
		return fmt.Errorf("unsupported metric exporter: %s", cfg.MetricExporter)
	}
	return nil
}

// Shutdown flushes and stops the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

// RegionalMetrics holds the instruments of the regional indicators
type RegionalMetrics struct {
	Computations        metric.Int64Counter
	ComputationDuration metric.Float64Histogram
	SentinelCells       metric.Int64Counter
	Rejections          metric.Int64Counter
}

// NewRegionalMetrics creates the regional instruments on meter
func NewRegionalMetrics(meter metric.Meter) (*RegionalMetrics, error) {
	computations, err := meter.Int64Counter(
		"regional_computations_total",
		metric.WithDescription("Total number of indicator computations"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"regional_computation_duration_seconds",
		metric.WithDescription("Indicator computation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	sentinels, err := meter.Int64Counter(
		"regional_sentinel_cells_total",
		metric.WithDescription("Result cells left undefined by a zero denominator"),
	)
	if err != nil {
		return nil, err
	}

	rejections, err := meter.Int64Counter(
		"regional_rejections_total",
		metric.WithDescription("Computations rejected for invalid input"),
	)
	if err != nil {
		return nil, err
	}

	return &RegionalMetrics{
		Computations:        computations,
		ComputationDuration: duration,
		SentinelCells:       sentinels,
		Rejections:          rejections,
	}, nil
}

// RecordComputation records one indicator computation. errType is empty on
// success.
func (m *RegionalMetrics) RecordComputation(ctx context.Context, indicator string, duration time.Duration, sentinels int, errType string) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("indicator", indicator))
	m.Computations.Add(ctx, 1, attrs)

	status := "success"
	if errType != "" {
		status = "rejected"
		m.Rejections.Add(ctx, 1, metric.WithAttributes(
			attribute.String("indicator", indicator),
			attribute.String("error.type", errType),
		))
	}
	m.ComputationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("indicator", indicator),
		attribute.String("status", status),
	))

	if sentinels > 0 {
		m.SentinelCells.Add(ctx, int64(sentinels), attrs)
	}
}

func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// TraceIDFromContext extracts the OpenTelemetry trace ID for log correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// RecordError records err on the current span
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
