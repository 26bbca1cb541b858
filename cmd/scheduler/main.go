package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"NodeDashboard/config"
	"NodeDashboard/internal/schedule"
	"NodeDashboard/internal/service"
	"NodeDashboard/pkg/logger"
	"NodeDashboard/pkg/otel"
	"NodeDashboard/pkg/snowflake"
	"NodeDashboard/storage"
)

func main() {
	logger.Init("scheduler")
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Logger.Info("Scheduler received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	shutdownTelemetry, err := otel.Setup(ctx, config.Cfg.ServiceName+"-scheduler")
	if err != nil {
		logger.Logger.Warn("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		_ = shutdownTelemetry(context.Background())
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage for scheduler", zap.Error(err))
	}
	defer storage.Close()

	// 与 server、worker 区分 machineID
	if err := snowflake.Init(config.Cfg.SnowflakeMachineID+2, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake for scheduler", zap.Error(err))
	}

	s := schedule.NewReconcileScheduler(service.NewDashboardServiceFromConfig(ctx), config.Cfg.MongoQueryTimeout()*5)

	logger.Logger.Info("Scheduler service starting",
		zap.String("service", config.Cfg.ServiceName+"-scheduler"),
		zap.Duration("interval", config.Cfg.ReconcileInterval()),
		zap.String("environment", config.Cfg.Environment),
	)

	go s.RunDaily(ctx)
	if interval := config.Cfg.ReconcileInterval(); interval > 0 {
		go s.RunEvery(ctx, interval)
	}

	<-ctx.Done()

	logger.Logger.Info("Scheduler service shutting down gracefully",
		zap.Time("last_run_at", s.LastRunAt()),
	)
}
