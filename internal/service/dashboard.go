package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"NodeDashboard/internal/aggregate"
	"NodeDashboard/internal/model"
	"NodeDashboard/internal/normalize"
	"NodeDashboard/internal/reconcile"
	"NodeDashboard/internal/repository"
	"NodeDashboard/pkg/errors"
	"NodeDashboard/pkg/logger"
	"NodeDashboard/pkg/metrics"
	"NodeDashboard/pkg/snowflake"
)

// ReportFetcher 外部分析报表，analytics.Fetcher 满足该接口
type ReportFetcher interface {
	Fetch(ctx context.Context) ([]model.AnalyticsRow, error)
	Invalidate(ctx context.Context) error
}

// RunRecorder 渲染审计，repository.RunRepository 满足该接口
type RunRecorder interface {
	Create(ctx context.Context, run *model.RenderRun) error
	ListRecent(ctx context.Context, limit int) ([]*model.RenderRun, error)
}

// AlertHistory 已落库的对账告警，repository.AlertRepository 满足该接口
type AlertHistory interface {
	ListByDate(ctx context.Context, date string) ([]*model.ReconciliationAlert, error)
}

// AlertPublisher 对账告警发布，queue.AlertPublisher 满足该接口
type AlertPublisher interface {
	PublishReconciliationAlert(ctx context.Context, msg model.ReconciliationAlertMessage) error
}

// Deps 看板服务依赖，除 Store 外均可为空
type Deps struct {
	Store                repository.DocumentStore
	Analytics            ReportFetcher
	Runs                 RunRecorder
	Alerts               AlertPublisher
	AlertHistory         AlertHistory
	Now                  func() time.Time
	AlertThreshold       float64
	ValidationWindowDays int
}

// DashboardService 每次渲染都完整重读全部数据源并重建所有表格
type DashboardService struct {
	store          repository.DocumentStore
	analytics      ReportFetcher
	runs           RunRecorder
	alerts         AlertPublisher
	alertHistory   AlertHistory
	now            func() time.Time
	alertThreshold float64
	windowDays     int
}

func NewDashboardService(deps Deps) *DashboardService {
	s := &DashboardService{
		store:          deps.Store,
		analytics:      deps.Analytics,
		runs:           deps.Runs,
		alerts:         deps.Alerts,
		alertHistory:   deps.AlertHistory,
		now:            deps.Now,
		alertThreshold: deps.AlertThreshold,
		windowDays:     deps.ValidationWindowDays,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.windowDays <= 0 {
		s.windowDays = 30
	}
	return s
}

// snapshot 一次渲染读到的全部记录
type snapshot struct {
	submissions []model.SubmissionRecord
	referrals   []model.ReferralRecord
	faucets     []model.FaucetRecord
	airdrops    []model.AirdropChoiceRecord
}

var errAnalyticsNotConfigured = stderrors.New("analytics report is not configured")

// Render 完整渲染：顺序读取四个集合，重建全部表格，再拉取外部报表
func (s *DashboardService) Render(ctx context.Context, trigger string) (*model.Dashboard, error) {
	ctx, span := otel.Tracer("nodedash.service").Start(ctx, "dashboard.render")
	defer span.End()
	span.SetAttributes(attribute.String("dashboard.trigger", trigger))

	startedAt := s.now()
	run := &model.RenderRun{StartedAt: startedAt.UTC(), Trigger: trigger}

	runID, err := snowflake.NextID()
	if err != nil {
		return nil, errors.InternalError.Wrap(fmt.Errorf("generate render id: %w", err))
	}
	run.ID = runID
	runLogger := logger.ForRun(runID, trigger)

	snap, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		run.Status = model.RenderStatusFailed
		run.Error = err.Error()
		s.finish(ctx, run, startedAt)

		runLogger.Error("Dashboard render failed", zap.Error(err))
		return nil, err
	}

	dashboard := s.build(snap, startedAt)
	dashboard.RunID = runID
	dashboard.Trigger = trigger

	rows, analyticsErr := s.fetchAnalytics(ctx)
	dashboard.Analytics = rows
	if analyticsErr != nil {
		dashboard.AnalyticsError = analyticsErr.Error()
		run.AnalyticsError = analyticsErr.Error()
	}

	s.recordReconciliation(ctx, dashboard.Reconciliation)
	published := s.publishAlerts(ctx, runID, dashboard.Reconciliation)

	run.Status = model.RenderStatusSuccess
	if analyticsErr != nil {
		run.Status = model.RenderStatusPartial
	}
	run.SubmissionDocs = len(snap.submissions)
	run.ReferralDocs = len(snap.referrals)
	run.FaucetDocs = len(snap.faucets)
	run.AirdropDocs = len(snap.airdrops)
	run.ReconciliationDays = len(dashboard.Reconciliation)
	run.AlertsPublished = published
	s.finish(ctx, run, startedAt)

	runLogger.Info("Dashboard rendered",
		zap.String("status", run.Status),
		zap.Int64("duration_ms", run.DurationMillis),
		zap.Strings("empty_sections", dashboard.EmptySections()),
	)
	return dashboard, nil
}

// Refresh 手动刷新：先丢弃报表缓存再完整渲染
func (s *DashboardService) Refresh(ctx context.Context) (*model.Dashboard, error) {
	if s.analytics != nil {
		if err := s.analytics.Invalidate(ctx); err != nil {
			logger.Logger.Warn("Failed to invalidate analytics cache", zap.Error(err))
		}
	}
	return s.Render(ctx, model.TriggerRefresh)
}

// RecentRuns 最近的渲染记录，未配置审计库时返回空列表
func (s *DashboardService) RecentRuns(ctx context.Context, limit int) ([]*model.RenderRun, error) {
	if s.runs == nil {
		return []*model.RenderRun{}, nil
	}
	runs, err := s.runs.ListRecent(ctx, limit)
	if err != nil {
		return nil, errors.InternalError.Wrap(fmt.Errorf("list render runs: %w", err))
	}
	if runs == nil {
		runs = []*model.RenderRun{}
	}
	return runs, nil
}

// AlertsByDate 某个 UTC 日期已落库的对账告警，未配置审计库时返回空列表
func (s *DashboardService) AlertsByDate(ctx context.Context, date string) ([]*model.ReconciliationAlert, error) {
	if _, err := time.Parse(normalize.DateLayout, date); err != nil {
		return nil, errors.InvalidRequest.Wrap(fmt.Errorf("date %q: %w", date, err))
	}
	if s.alertHistory == nil {
		return []*model.ReconciliationAlert{}, nil
	}
	alerts, err := s.alertHistory.ListByDate(ctx, date)
	if err != nil {
		return nil, errors.InternalError.Wrap(fmt.Errorf("list reconciliation alerts: %w", err))
	}
	if alerts == nil {
		alerts = []*model.ReconciliationAlert{}
	}
	return alerts, nil
}

func (s *DashboardService) load(ctx context.Context) (*snapshot, error) {
	snap := &snapshot{}
	for _, source := range repository.Sources {
		docs, err := s.find(ctx, source)
		if err != nil {
			return nil, err
		}

		switch source {
		case repository.SourceSubmissions:
			snap.submissions = normalize.Submissions(docs)
		case repository.SourceReferrals:
			snap.referrals = normalize.Referrals(docs)
		case repository.SourceFaucets:
			snap.faucets = normalize.Faucets(docs)
		case repository.SourceAirdrops:
			snap.airdrops = normalize.AirdropChoices(docs)
		}
	}
	return snap, nil
}

func (s *DashboardService) find(ctx context.Context, source repository.Source, fields ...string) ([]normalize.Document, error) {
	docs, err := s.store.Find(ctx, source, fields...)
	if err != nil {
		return nil, errors.SourceUnavailable.Wrap(fmt.Errorf("%s: %w", source, err))
	}
	metrics.GetMetrics().RecordSourceDocuments(ctx, string(source), len(docs))
	return docs, nil
}

func (s *DashboardService) build(snap *snapshot, now time.Time) *model.Dashboard {
	referrals := aggregate.ExpandReferrals(snap.referrals)
	validations := aggregate.FaucetValidations(snap.faucets)

	return &model.Dashboard{
		RenderedAt:              now.UTC(),
		Reconciliation:          reconcile.Run(snap.submissions, snap.faucets),
		TaskScores:              aggregate.TaskScores(snap.submissions),
		Referrals:               referrals,
		ReferralCounts:          aggregate.ReferralCounts(referrals),
		FaucetValidations:       validations,
		FaucetValidationsRecent: aggregate.RecentValidations(validations, now, s.windowDays),
		AirdropChoices:          aggregate.AirdropChoices(snap.airdrops),
		Analytics:               []model.AnalyticsRow{},
	}
}

// fetchAnalytics 报表失败只影响 analytics 分区
func (s *DashboardService) fetchAnalytics(ctx context.Context) ([]model.AnalyticsRow, error) {
	if s.analytics == nil {
		return []model.AnalyticsRow{}, errAnalyticsNotConfigured
	}

	rows, err := s.analytics.Fetch(ctx)
	if err != nil {
		metrics.GetMetrics().RecordAnalyticsFailure(ctx, "fetch")
		logger.Logger.Warn("Analytics report unavailable", zap.Error(err))
		return []model.AnalyticsRow{}, err
	}
	return rows, nil
}

func (s *DashboardService) recordReconciliation(ctx context.Context, rows []model.ReconciliationRow) {
	m := metrics.GetMetrics()
	for _, row := range rows {
		m.RecordReconciliation(ctx, row.Date, row.MissingRatioPercent, row.TotalMissing)
	}
}

// publishAlerts 发布失败只记录日志，返回成功条数
func (s *DashboardService) publishAlerts(ctx context.Context, runID int64, rows []model.ReconciliationRow) int {
	if s.alerts == nil {
		return 0
	}

	published := 0
	for _, row := range reconcile.Exceeding(rows, s.alertThreshold) {
		err := s.alerts.PublishReconciliationAlert(ctx, model.ReconciliationAlertMessage{
			Date:                row.Date,
			RunID:               runID,
			MissingWallets:      row.MissingWallets,
			TotalSubmitted:      row.TotalSubmittedWallets,
			TotalMissing:        row.TotalMissing,
			MissingRatioPercent: row.MissingRatioPercent,
			Threshold:           s.alertThreshold,
			PublishedAt:         s.now().UTC(),
		})
		if err != nil {
			logger.Logger.Warn("Failed to publish reconciliation alert",
				zap.String("date", row.Date),
				zap.Error(err),
			)
			continue
		}
		metrics.GetMetrics().RecordAlert(ctx, row.Date)
		published++
	}
	return published
}

func (s *DashboardService) finish(ctx context.Context, run *model.RenderRun, startedAt time.Time) {
	duration := s.now().Sub(startedAt)
	run.DurationMillis = duration.Milliseconds()
	metrics.GetMetrics().RecordRender(ctx, run.Trigger, run.Status, duration.Seconds())

	if s.runs == nil {
		return
	}
	if err := s.runs.Create(ctx, run); err != nil {
		logger.Logger.Warn("Failed to record render run",
			zap.Int64("run_id", run.ID),
			zap.Error(err),
		)
	}
}
