package service

import (
	"context"

	"go.uber.org/zap"

	"NodeDashboard/config"
	"NodeDashboard/internal/analytics"
	"NodeDashboard/internal/cache"
	"NodeDashboard/internal/queue"
	"NodeDashboard/internal/repository"
	"NodeDashboard/pkg/logger"
	"NodeDashboard/storage/database"
)

// NewDashboardServiceFromConfig 按配置组装看板服务，需先完成 storage.Init
// GA 凭据缺失或无效时报表分区不可用，其余分区照常渲染
func NewDashboardServiceFromConfig(ctx context.Context) *DashboardService {
	cfg := config.Cfg

	deps := Deps{
		Store:                repository.NewMongoStoreFromConfig(),
		Runs:                 repository.NewRunRepository(database.DB()),
		Alerts:               queue.NewAlertPublisher(),
		AlertHistory:         repository.NewAlertRepository(database.DB()),
		AlertThreshold:       cfg.ReconcileAlertRatio,
		ValidationWindowDays: cfg.ValidationWindowDays,
	}

	if cfg.AnalyticsEnabled() {
		runner, err := analytics.NewGARunner(ctx, cfg.GACredentialsFile)
		if err != nil {
			logger.Logger.Warn("Failed to create analytics client, analytics section disabled", zap.Error(err))
		} else {
			deps.Analytics = analytics.NewFetcher(runner, cfg.GAPropertyID,
				analytics.WithCache(cache.AnalyticsReportCache),
				analytics.WithBreaker(cache.AnalyticsBreaker),
				analytics.WithTimeout(cfg.GATimeout()),
			)
		}
	}

	return NewDashboardService(deps)
}
