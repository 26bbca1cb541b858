package analytics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"NodeDashboard/internal/model"
	"NodeDashboard/internal/normalize"
	"NodeDashboard/pkg/errors"
	"NodeDashboard/pkg/logger"
)

// ReportCache 报表缓存，cache.ReportCache 满足该接口
type ReportCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

// Breaker 熔断器，cache.CircuitBreaker 满足该接口
type Breaker interface {
	Call(ctx context.Context, operation func(ctx context.Context) error) error
}

// Fetcher 带缓存与熔断的报表拉取
type Fetcher struct {
	runner     Runner
	cache      ReportCache
	breaker    Breaker
	now        func() time.Time
	propertyID string
	timeout    time.Duration
}

type Option func(*Fetcher)

func WithCache(c ReportCache) Option {
	return func(f *Fetcher) { f.cache = c }
}

func WithBreaker(b Breaker) Option {
	return func(f *Fetcher) { f.breaker = b }
}

func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

func NewFetcher(runner Runner, propertyID string, opts ...Option) *Fetcher {
	f := &Fetcher{
		runner:     runner,
		propertyID: propertyID,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// cacheKey 报表窗口随日期滚动，按 属性:当天 缓存
func (f *Fetcher) cacheKey() string {
	return f.propertyID + ":" + f.now().UTC().Format(normalize.DateLayout)
}

// Fetch 返回最近 7 天的报表行，失败时返回 ANALYTICS_UNAVAILABLE
func (f *Fetcher) Fetch(ctx context.Context) ([]model.AnalyticsRow, error) {
	ctx, span := otel.Tracer("nodedash.analytics").Start(ctx, "analytics.fetch")
	defer span.End()
	span.SetAttributes(attribute.String("analytics.property_id", f.propertyID))

	if f.runner == nil {
		span.SetStatus(codes.Error, "runner not configured")
		return nil, errors.AnalyticsUnavailable
	}

	key := f.cacheKey()
	if f.cache != nil {
		var cached []model.AnalyticsRow
		hit, err := f.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Logger.Warn("Failed to read analytics cache", zap.String("key", key), zap.Error(err))
		}
		if hit && cached != nil {
			span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
			return cached, nil
		}
	}

	var rows []model.AnalyticsRow
	call := func(ctx context.Context) error {
		if f.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, f.timeout)
			defer cancel()
		}

		report, err := f.runner.RunReport(ctx, DefaultRequest(f.propertyID))
		if err != nil {
			return err
		}
		rows, err = MapRows(report)
		return err
	}

	var err error
	if f.breaker != nil {
		err = f.breaker.Call(ctx, call)
	} else {
		err = call(ctx)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.AnalyticsUnavailable.Wrap(err)
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, key, rows); err != nil {
			logger.Logger.Warn("Failed to write analytics cache", zap.String("key", key), zap.Error(err))
		}
	}

	span.SetAttributes(attribute.Int("analytics.rows", len(rows)))
	return rows, nil
}

// Invalidate 丢弃当天缓存的报表，手动刷新时调用
func (f *Fetcher) Invalidate(ctx context.Context) error {
	if f.cache == nil {
		return nil
	}
	return f.cache.Delete(ctx, f.cacheKey())
}
