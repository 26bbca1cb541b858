package middleware

import (
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"NodeDashboard/pkg/logger"
)

// Init 初始化中间件依赖的指标
func Init() error {
	if err := InitMetrics(otel.Meter("nodedash.http")); err != nil {
		logger.Logger.Error("Failed to initialize http metrics", zap.Error(err))
		return err
	}

	logger.Logger.Info("All middlewares initialized successfully")
	return nil
}
