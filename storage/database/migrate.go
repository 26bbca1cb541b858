package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"NodeDashboard/internal/model"
	"NodeDashboard/pkg/logger"
)

// Migrate 创建审计表
func Migrate() error {
	return MigrateDB(DB())
}

// MigrateDB 对指定连接执行迁移
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}

	logger.Logger.Info("Starting database migration...")

	if err := db.AutoMigrate(
		&model.RenderRun{},
		&model.ReconciliationAlert{},
	); err != nil {
		logger.Logger.Error("Database migration failed", zap.Error(err))
		return err
	}

	logger.Logger.Info("Database migration completed successfully")
	return nil
}
