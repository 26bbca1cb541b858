package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"NodeDashboard/config"
	otelplugin "NodeDashboard/pkg/database"
	"NodeDashboard/pkg/logger"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
	dbErr  error
)

// Init 打开审计库，DATABASE_DRIVER 决定使用 postgres 还是 sqlite
func Init() error {
	dbOnce.Do(func() {
		cfg := config.Cfg

		var gormDB *gorm.DB
		gormDB, dbErr = Open(cfg.DatabaseDriver, dsnFor(cfg))
		if dbErr != nil {
			logger.Logger.Error("Failed to open database",
				zap.String("driver", cfg.DatabaseDriver),
				zap.Error(dbErr),
			)
			return
		}

		if err := otelplugin.WithOTELPlugin(gormDB, cfg.ServiceName); err != nil {
			logger.Logger.Warn("Failed to register gorm otel plugin", zap.Error(err))
		}

		if err := useReplicas(gormDB, cfg); err != nil {
			logger.Logger.Warn("Failed to register read replicas, reading from primary", zap.Error(err))
		}

		db = gormDB
		if dbErr = Migrate(); dbErr != nil {
			return
		}
		logger.Logger.Info("Database initialized successfully", zap.String("driver", cfg.DatabaseDriver))
	})

	return dbErr
}

// Open 按驱动打开连接并完成连接池配置与探活
func Open(driver, dsn string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:                                   newLogger(),
		DisableForeignKeyConstraintWhenMigrating: true,
		SkipDefaultTransaction:                   true,
	}

	var dialector gorm.Dialector
	switch strings.ToLower(driver) {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		gormCfg.PrepareStmt = true
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	gormDB, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}

	configureConnectionPool(sqlDB, driver)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return gormDB, nil
}

func DB() *gorm.DB {
	return db
}

func Close(ctx context.Context) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- sqlDB.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// useReplicas 配置了只读副本时，渲染记录查询走副本，写入仍走主库
func useReplicas(gormDB *gorm.DB, cfg config.Config) error {
	if strings.ToLower(cfg.DatabaseDriver) != "postgres" || len(cfg.PostgreSQLReplicaHosts) == 0 {
		return nil
	}

	replicas := make([]gorm.Dialector, 0, len(cfg.PostgreSQLReplicaHosts))
	for _, host := range cfg.PostgreSQLReplicaHosts {
		replica := cfg
		replica.PostgreSQLHost = host
		replicas = append(replicas, postgres.Open(replica.GetDSN()))
	}

	return gormDB.Use(dbresolver.Register(dbresolver.Config{
		Replicas:          replicas,
		Policy:            dbresolver.RandomPolicy{},
		TraceResolverMode: true,
	}).
		SetMaxIdleConns(cfg.PostgreSQLMaxIdle).
		SetMaxOpenConns(cfg.PostgreSQLMaxOpen).
		SetConnMaxLifetime(time.Hour))
}

func dsnFor(cfg config.Config) string {
	if strings.ToLower(cfg.DatabaseDriver) == "sqlite" {
		return cfg.SQLitePath
	}
	return cfg.GetDSN()
}

func configureConnectionPool(sqlDB *sql.DB, driver string) {
	cfg := config.Cfg

	// sqlite 单写者
	if strings.ToLower(driver) == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
		return
	}

	sqlDB.SetMaxIdleConns(cfg.PostgreSQLMaxIdle)
	sqlDB.SetMaxOpenConns(cfg.PostgreSQLMaxOpen)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	sqlDB.SetConnMaxLifetime(2 * time.Hour)
}

func newLogger() gormlogger.Interface {
	level := gormlogger.Warn
	switch strings.ToUpper(config.Cfg.LoggerLevel) {
	case "DEBUG":
		level = gormlogger.Info
	case "ERROR":
		level = gormlogger.Error
	}

	return gormlogger.New(zapWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type zapWriter struct{}

func (zapWriter) Printf(format string, args ...interface{}) {
	logger.Logger.Sugar().Infof(format, args...)
}
