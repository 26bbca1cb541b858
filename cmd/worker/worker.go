package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"NodeDashboard/config"
	"NodeDashboard/internal/queue"
	"NodeDashboard/internal/repository"
	"NodeDashboard/pkg/logger"
	"NodeDashboard/pkg/otel"
	"NodeDashboard/pkg/snowflake"
	"NodeDashboard/storage"
	"NodeDashboard/storage/database"
)

func main() {
	logger.Init("worker")
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	shutdownTelemetry, err := otel.Setup(ctx, config.Cfg.ServiceName+"-worker")
	if err != nil {
		logger.Logger.Warn("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		_ = shutdownTelemetry(context.Background())
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	// worker 与 server 使用不同的 machineID，避免告警记录 ID 冲突
	if err := snowflake.Init(config.Cfg.SnowflakeMachineID+1, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	queue.SetAlertStore(repository.NewAlertRepository(database.DB()))

	logger.Logger.Info("Worker service starting",
		zap.String("service", config.Cfg.ServiceName+"-worker"),
		zap.String("queue", config.Cfg.AlertQueue),
		zap.String("environment", config.Cfg.Environment),
	)

	// 启动所有的消费者部分
	wg := queue.StartAllConsumers(ctx)
	<-ctx.Done()
	wg.Wait()

	logger.Logger.Info("Worker service shutting down gracefully")
}
