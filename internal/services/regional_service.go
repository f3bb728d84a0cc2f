package services

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"cbpmetrics/internal/config"
	apperrors "cbpmetrics/internal/errors"
	"cbpmetrics/internal/infrastructure"
	"cbpmetrics/internal/regional"
)

// Indicator names used in logs, spans and metrics
const (
	IndicatorLocationQuotient = "location_quotient"
	IndicatorShiftShare       = "shift_share"
	IndicatorSpecialization   = "specialization"
	IndicatorTableLQ          = "table_location_quotient"
)

// RegionalService runs the regional indicators with logging, tracing and
// metrics around the pure calculators.
type RegionalService struct {
	cfg     config.AnalysisConfig
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.RegionalMetrics
}

// RegionalOption configures a RegionalService
type RegionalOption func(*RegionalService)

// WithTracer sets the tracer used for computation spans
func WithTracer(tracer trace.Tracer) RegionalOption {
	return func(s *RegionalService) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithMetrics sets the metric instruments
func WithMetrics(metrics *infrastructure.RegionalMetrics) RegionalOption {
	return func(s *RegionalService) {
		s.metrics = metrics
	}
}

// NewRegionalService creates a regional service
func NewRegionalService(cfg config.AnalysisConfig, logger *slog.Logger, opts ...RegionalOption) *RegionalService {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 1
	}
	if cfg.TotalCode == "" {
		cfg.TotalCode = regional.DefaultTotalCode
	}

	s := &RegionalService{
		cfg:    cfg,
		logger: logger.With(slog.String("service", "regional")),
		tracer: noop.NewTracerProvider().Tracer(infrastructure.InstrumentationName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TotalCode returns the configured total key
func (s *RegionalService) TotalCode() string {
	return s.cfg.TotalCode
}

// LocationQuotient computes the location quotient of small against large
func (s *RegionalService) LocationQuotient(ctx context.Context, small, large regional.Series) (regional.LocationQuotientResult, error) {
	var res regional.LocationQuotientResult
	err := s.observe(ctx, IndicatorLocationQuotient, small.Len(), func(ctx context.Context) (int, error) {
		var err error
		res, err = regional.LocationQuotient(small, large)
		sentinels := 0
		for _, row := range res.Rows {
			if regional.IsSentinel(row.Quotient) {
				sentinels++
			}
		}
		return sentinels, err
	})
	return res, err
}

// ShiftShare decomposes local growth between two periods
func (s *RegionalService) ShiftShare(ctx context.Context, smallOld, smallNew, largeOld, largeNew regional.Series) (regional.ShiftShareResult, error) {
	var res regional.ShiftShareResult
	err := s.observe(ctx, IndicatorShiftShare, smallOld.Len(), func(ctx context.Context) (int, error) {
		var err error
		res, err = regional.ShiftShare(smallOld, smallNew, largeOld, largeNew)
		sentinels := 0
		for _, row := range res.Rows {
			if regional.IsSentinel(row.LocalCompetitiveness) || regional.IsSentinel(row.IndustryMix) {
				sentinels++
			}
		}
		return sentinels, err
	})
	return res, err
}

// Specialization computes the specialization coefficient of small against large
func (s *RegionalService) Specialization(ctx context.Context, small, large regional.Series) (regional.SpecializationResult, error) {
	var res regional.SpecializationResult
	err := s.observe(ctx, IndicatorSpecialization, small.Len(), func(ctx context.Context) (int, error) {
		var err error
		res, err = regional.SpecializationCoefficient(small, large)
		sentinels := 0
		if err == nil && regional.IsSentinel(res.Coefficient) {
			sentinels = 1
		}
		return sentinels, err
	})
	return res, err
}

// SelectLevel applies the configured industry level to table
func (s *RegionalService) SelectLevel(table regional.IndustryTable) regional.IndustryTable {
	switch s.cfg.IndustryLevel {
	case config.LevelTwoDigit:
		return table.TwoDigit()
	case config.LevelThreeDigit:
		return table.ThreeDigit()
	default:
		return table
	}
}

// TableLocationQuotient computes the location quotient of every row of table.
// Each geography is compared with reference, or with the table's aggregate
// over all geographies when reference is nil. Geographies are processed
// concurrently, bounded by the configured concurrency; rows come back in
// table order.
func (s *RegionalService) TableLocationQuotient(ctx context.Context, table regional.IndustryTable, reference *regional.Series) ([]regional.GeoQuotient, error) {
	var out []regional.GeoQuotient
	err := s.observe(ctx, IndicatorTableLQ, table.Len(), func(ctx context.Context) (int, error) {
		var err error
		out, err = s.tableLocationQuotient(ctx, table, reference)
		sentinels := 0
		for _, row := range out {
			if regional.IsSentinel(row.Quotient) {
				sentinels++
			}
		}
		return sentinels, err
	})
	return out, err
}

func (s *RegionalService) tableLocationQuotient(ctx context.Context, table regional.IndustryTable, reference *regional.Series) ([]regional.GeoQuotient, error) {
	if table.Len() == 0 {
		return nil, apperrors.NewTypeError("table", "no rows")
	}

	var ref regional.Series
	if reference != nil {
		ref = *reference
	} else {
		totals, err := table.Totals(s.cfg.TotalCode)
		if err != nil {
			return nil, err
		}
		ref = totals
	}

	geos := table.Geographies()
	results := make([]map[string]float64, len(geos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrency)
	for i, geo := range geos {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			q, err := regional.GeographyQuotients(table, geo, ref, s.cfg.TotalCode)
			if err != nil {
				return err
			}
			results[i] = q
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byGeo := make(map[string]map[string]float64, len(geos))
	for i, geo := range geos {
		byGeo[geo] = results[i]
	}

	return regional.JoinQuotients(table, byGeo), nil
}

// observe wraps one computation in a span, a log line and metrics. fn
// returns the number of undefined cells it produced.
func (s *RegionalService) observe(ctx context.Context, indicator string, size int, fn func(context.Context) (int, error)) error {
	ctx, span := s.tracer.Start(ctx, "regional."+indicator,
		trace.WithAttributes(
			attribute.String("indicator", indicator),
			attribute.Int("input.size", size),
		))
	defer span.End()

	start := time.Now()
	sentinels, err := fn(ctx)
	duration := time.Since(start)

	errType := ""
	if err != nil {
		errType = string(apperrors.TypeOf(err))
		if errType == "" {
			errType = "INTERNAL"
		}
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "computation rejected",
			slog.String("indicator", indicator),
			slog.String("error_type", errType),
			slog.String("error", err.Error()))
	} else {
		span.SetAttributes(attribute.Int("result.sentinels", sentinels))
		if sentinels > 0 {
			s.logger.WarnContext(ctx, "undefined ratios in result",
				slog.String("indicator", indicator),
				slog.Int("sentinel_cells", sentinels))
		}
		s.logger.InfoContext(ctx, "computation completed",
			slog.String("indicator", indicator),
			slog.Int("input_size", size),
			slog.Duration("duration", duration))
	}

	s.metrics.RecordComputation(ctx, indicator, duration, sentinels, errType)
	return err
}
