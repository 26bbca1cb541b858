package schedule

// 对账调度器：定时完整渲染一次看板，落库渲染记录并发布缺失钱包告警

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"NodeDashboard/internal/model"
	"NodeDashboard/pkg/logger"
)

// Renderer 调度器需要的渲染能力
type Renderer interface {
	Render(ctx context.Context, trigger string) (*model.Dashboard, error)
}

type ReconcileScheduler struct {
	renderer   Renderer
	logger     *zap.Logger
	now        func() time.Time
	lastRunAt  time.Time
	runTimeout time.Duration
	mu         sync.Mutex
	running    bool
}

func NewReconcileScheduler(renderer Renderer, runTimeout time.Duration) *ReconcileScheduler {
	if runTimeout <= 0 {
		runTimeout = 5 * time.Minute
	}
	return &ReconcileScheduler{
		renderer:   renderer,
		logger:     logger.Logger,
		now:        time.Now,
		runTimeout: runTimeout,
	}
}

// RunOnce 执行一次定时渲染，上一次尚未结束时直接跳过
func (s *ReconcileScheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Info("Reconcile job already running, skipping")
		return nil
	}
	s.running = true
	startTime := s.now()
	s.lastRunAt = startTime
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	dashboard, err := s.renderer.Render(runCtx, model.TriggerSchedule)
	if err != nil {
		s.logger.Error("Scheduled reconcile run failed", zap.Error(err))
		return err
	}

	s.logger.Info("Scheduled reconcile run completed",
		zap.Int64("run_id", dashboard.RunID),
		zap.Int("reconciliation_days", len(dashboard.Reconciliation)),
		zap.Duration("duration", time.Since(startTime)),
	)
	return nil
}

// LastRunAt 最近一次开始执行的时间
func (s *ReconcileScheduler) LastRunAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRunAt
}

// RunEvery 按固定间隔执行，直到 ctx 结束
func (s *ReconcileScheduler) RunEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.due(interval) {
				s.logger.Info("Reconcile run started recently, skipping tick",
					zap.Time("last_run_at", s.LastRunAt()),
				)
				continue
			}
			_ = s.RunOnce(ctx)
		}
	}
}

// due 距上次开始不足半个间隔时不再执行
func (s *ReconcileScheduler) due(interval time.Duration) bool {
	last := s.LastRunAt()
	return last.IsZero() || s.now().Sub(last) >= interval/2
}

// RunDaily 每天 UTC 00:05 执行一次，对账按 UTC 日期分桶
func (s *ReconcileScheduler) RunDaily(ctx context.Context) {
	for {
		now := s.now().UTC()
		next := NextDailyRun(now)
		delay := next.Sub(now)

		s.logger.Info("Scheduled next daily reconcile run",
			zap.Time("next_run", next),
			zap.Duration("delay", delay),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			_ = s.RunOnce(ctx)
		}
	}
}

// NextDailyRun 返回 now 之后最近的 00:05 (UTC)
func NextDailyRun(now time.Time) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 5, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
