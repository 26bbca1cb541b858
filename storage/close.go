package storage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"NodeDashboard/pkg/logger"
	"NodeDashboard/storage/database"
	"NodeDashboard/storage/mongo"
	"NodeDashboard/storage/mq"
	"NodeDashboard/storage/redis"
)

// Close 优雅关闭所有存储连接
// 关闭顺序：MQ -> Redis -> Database -> MongoDB
func Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Logger.Info("Closing storage connections...")

	if err := mq.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close message queue", zap.Error(err))
	} else {
		logger.Logger.Info("Message queue closed successfully")
	}

	if err := redis.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close Redis connection", zap.Error(err))
	} else {
		logger.Logger.Info("Redis connection closed successfully")
	}

	if err := database.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close database connection", zap.Error(err))
	} else {
		logger.Logger.Info("Database connection closed successfully")
	}

	if err := mongo.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close MongoDB clients", zap.Error(err))
	} else {
		logger.Logger.Info("MongoDB clients closed successfully")
	}

	logger.Logger.Info("All storage connections closed")
}
