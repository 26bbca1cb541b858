package metrics

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics 看板渲染相关指标
type OTelMetrics struct {
	RenderTotal             metric.Int64Counter
	RenderDuration          metric.Float64Histogram
	SourceDocumentsTotal    metric.Int64Counter
	AnalyticsFailuresTotal  metric.Int64Counter
	ReconcileMissingRatio   metric.Float64Gauge
	ReconcileAlertsTotal    metric.Int64Counter
	ReconcileMissingWallets metric.Int64Counter
}

var (
	metrics  *OTelMetrics
	initOnce sync.Once
	initErr  error
	meter    = otel.Meter("nodedash")
)

// InitMetrics 初始化 OpenTelemetry 指标，重复调用只生效一次
func InitMetrics() error {
	initOnce.Do(func() {
		initErr = buildMetrics()
	})
	return initErr
}

func buildMetrics() error {
	m := &OTelMetrics{}
	var err error

	m.RenderTotal, err = meter.Int64Counter(
		"dashboard_render_total",
		metric.WithDescription("Total number of dashboard renders"),
		metric.WithUnit("{render}"),
	)
	if err != nil {
		return err
	}

	m.RenderDuration, err = meter.Float64Histogram(
		"dashboard_render_duration_seconds",
		metric.WithDescription("Time spent fetching and aggregating all dashboard sections"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	m.SourceDocumentsTotal, err = meter.Int64Counter(
		"dashboard_source_documents_total",
		metric.WithDescription("Documents read from the document store per source"),
		metric.WithUnit("{document}"),
	)
	if err != nil {
		return err
	}

	m.AnalyticsFailuresTotal, err = meter.Int64Counter(
		"dashboard_analytics_failures_total",
		metric.WithDescription("Failed analytics report fetches"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	m.ReconcileMissingRatio, err = meter.Float64Gauge(
		"dashboard_reconcile_missing_ratio_percent",
		metric.WithDescription("Share of submitting wallets without a faucet registration"),
		metric.WithUnit("%"),
	)
	if err != nil {
		return err
	}

	m.ReconcileAlertsTotal, err = meter.Int64Counter(
		"dashboard_reconcile_alerts_total",
		metric.WithDescription("Reconciliation alerts published"),
		metric.WithUnit("{alert}"),
	)
	if err != nil {
		return err
	}

	m.ReconcileMissingWallets, err = meter.Int64Counter(
		"dashboard_reconcile_missing_wallets_total",
		metric.WithDescription("Missing wallets observed across renders"),
		metric.WithUnit("{wallet}"),
	)
	if err != nil {
		return err
	}

	metrics = m
	return nil
}

// GetMetrics 获取全局指标实例，未初始化时返回 nil，所有记录方法对 nil 安全
func GetMetrics() *OTelMetrics {
	return metrics
}

// RecordRender 记录一次渲染
func (m *OTelMetrics) RecordRender(ctx context.Context, trigger, status string, duration float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("trigger", trigger),
		attribute.String("status", status),
	)
	m.RenderTotal.Add(ctx, 1, attrs)
	m.RenderDuration.Record(ctx, duration, attrs)
}

// RecordSourceDocuments 记录单个数据源读取的文档数
func (m *OTelMetrics) RecordSourceDocuments(ctx context.Context, source string, count int) {
	if m == nil {
		return
	}
	m.SourceDocumentsTotal.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("source", source),
	))
}

// RecordAnalyticsFailure 记录外部报表获取失败
func (m *OTelMetrics) RecordAnalyticsFailure(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.AnalyticsFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

// RecordReconciliation 记录某日的缺失比例
func (m *OTelMetrics) RecordReconciliation(ctx context.Context, date string, ratio float64, missing int) {
	if m == nil {
		return
	}
	m.ReconcileMissingRatio.Record(ctx, ratio, metric.WithAttributes(
		attribute.String("date", date),
	))
	m.ReconcileMissingWallets.Add(ctx, int64(missing))
}

// RecordAlert 记录发布的对账告警
func (m *OTelMetrics) RecordAlert(ctx context.Context, date string) {
	if m == nil {
		return
	}
	m.ReconcileAlertsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("date", date),
	))
}
