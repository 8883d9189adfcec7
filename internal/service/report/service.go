package report

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/figureworks/backoffice/internal/cache"
	"github.com/figureworks/backoffice/internal/config"
	"github.com/figureworks/backoffice/internal/report"
	repo "github.com/figureworks/backoffice/internal/repository/order"
	"github.com/figureworks/backoffice/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/figureworks/backoffice/service/report")

// DashboardCacheKey addresses the cached dashboard snapshot; the status
// change worker drops this key to force recomputation.
const DashboardCacheKey = "reports:dashboard"

// Service exposes the report aggregations over the order store, applying
// parameter defaults and caching the dashboard snapshot.
type Service struct {
	store       repo.Store
	agg         *report.Aggregator
	cache       cache.Store
	cacheTTL    time.Duration
	logger      *zap.Logger
	defaultYear int
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Store      repo.Store
	Aggregator *report.Aggregator
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
}

// NewService wires a new report Service.
func NewService(p Params) *Service {
	return &Service{
		store:       p.Store,
		agg:         p.Aggregator,
		cache:       p.Cache,
		cacheTTL:    p.Config.Cache.DefaultTTL,
		logger:      p.Logger,
		defaultYear: p.Config.Report.DefaultYear,
	}
}

// Daily builds the daily report. The date parameter is carried through for
// contract compatibility; the aggregation always covers the full set.
func (s *Service) Daily(ctx context.Context, date string) (report.Daily, error) {
	ctx, span := serviceTracer.Start(ctx, "ReportService.Daily", trace.WithAttributes(attribute.String("report.date", date)))
	defer span.End()

	orders, err := s.store.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store error")
		return report.Daily{}, errorbank.Internal("failed to load orders", errorbank.WithCause(err))
	}
	return s.agg.Daily(orders, date), nil
}

// Monthly builds the monthly report. Out-of-range parameters fall back to
// the default year and December.
func (s *Service) Monthly(ctx context.Context, year, month int) report.Monthly {
	_, span := serviceTracer.Start(ctx, "ReportService.Monthly", trace.WithAttributes(
		attribute.Int("report.year", year),
		attribute.Int("report.month", month),
	))
	defer span.End()

	if year <= 0 {
		year = s.defaultYear
	}
	if month < 1 || month > 12 {
		month = 12
	}
	return s.agg.Monthly(year, month)
}

// Quarterly builds the quarterly report.
func (s *Service) Quarterly(ctx context.Context, year int) report.Quarterly {
	_, span := serviceTracer.Start(ctx, "ReportService.Quarterly", trace.WithAttributes(attribute.Int("report.year", year)))
	defer span.End()

	if year <= 0 {
		year = s.defaultYear
	}
	return s.agg.Quarterly(year)
}

// Annual builds the annual report.
func (s *Service) Annual(ctx context.Context, year int) report.Annual {
	_, span := serviceTracer.Start(ctx, "ReportService.Annual", trace.WithAttributes(attribute.Int("report.year", year)))
	defer span.End()

	if year <= 0 {
		year = s.defaultYear
	}
	return s.agg.Annual(year)
}

// Overview builds the dashboard payload, serving a cached snapshot when one
// is fresh.
func (s *Service) Overview(ctx context.Context) (report.Overview, error) {
	ctx, span := serviceTracer.Start(ctx, "ReportService.Overview")
	defer span.End()

	if cached, err := s.cachedOverview(ctx); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		if s.logger != nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	orders, err := s.store.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store error")
		return report.Overview{}, errorbank.Internal("failed to load orders", errorbank.WithCause(err))
	}

	overview := s.agg.Overview(orders)
	if err := s.cacheOverview(ctx, overview); err != nil {
		if s.logger != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return overview, nil
}

func (s *Service) cachedOverview(ctx context.Context) (report.Overview, error) {
	if s.cache == nil {
		return report.Overview{}, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, DashboardCacheKey)
	if err != nil {
		return report.Overview{}, err
	}
	var overview report.Overview
	if err := json.Unmarshal(bytes, &overview); err != nil {
		return report.Overview{}, err
	}
	return overview, nil
}

func (s *Service) cacheOverview(ctx context.Context, overview report.Overview) error {
	if s.cache == nil {
		return nil
	}
	bytes, err := json.Marshal(overview)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, DashboardCacheKey, bytes, s.cacheTTL)
}
