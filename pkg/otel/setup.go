package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"NodeDashboard/config"
	dbotel "NodeDashboard/pkg/database"
	"NodeDashboard/pkg/logger"
	"NodeDashboard/pkg/metrics"
	mqotel "NodeDashboard/pkg/mq"
	redisotel "NodeDashboard/pkg/redis"
)

// Setup 按配置初始化链路追踪与各组件指标，返回的清理函数总是非空
// OTEL_ENDPOINT 为空时使用全局 noop provider，指标照常注册
func Setup(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	shutdown := func(context.Context) error { return nil }

	if config.Cfg.OTelEndpoint != "" {
		fn, err := InitOpenTelemetry(ctx, Config{
			ServiceName:    serviceName,
			ServiceVersion: config.Cfg.ServiceVersion,
			Environment:    config.Cfg.Environment,
			OTLPEndpoint:   config.Cfg.OTelEndpoint,
			SampleRatio:    config.Cfg.OTelSampleRatio,
		})
		if err != nil {
			return shutdown, fmt.Errorf("init opentelemetry: %w", err)
		}
		shutdown = fn
		logger.Logger.Info("OpenTelemetry initialized", zap.String("endpoint", config.Cfg.OTelEndpoint))
	}

	meter := otel.Meter(serviceName)
	if err := metrics.InitMetrics(); err != nil {
		return shutdown, fmt.Errorf("init dashboard metrics: %w", err)
	}
	if err := dbotel.InitDatabaseMetrics(meter); err != nil {
		return shutdown, fmt.Errorf("init database metrics: %w", err)
	}
	if err := redisotel.InitRedisMetrics(meter); err != nil {
		return shutdown, fmt.Errorf("init redis metrics: %w", err)
	}
	if err := mqotel.InitMQMetrics(meter); err != nil {
		return shutdown, fmt.Errorf("init rabbitmq metrics: %w", err)
	}

	return shutdown, nil
}
