package storage

import (
	"fmt"

	"go.uber.org/zap"

	"NodeDashboard/pkg/logger"
	"NodeDashboard/storage/database"
	"NodeDashboard/storage/mongo"
	"NodeDashboard/storage/mq"
	"NodeDashboard/storage/redis"
)

type component struct {
	name string
	init func() error
	// optional 初始化失败时只告警，调用方按降级路径运行
	optional bool
}

// Redis 不可用时报表缓存、限流和消息去重走降级路径，客户端恢复后自动重连
var components = []component{
	{name: "mongo", init: mongo.Init},
	{name: "database", init: database.Init},
	{name: "redis", init: redis.Init, optional: true},
	{name: "rabbitmq", init: mq.Init},
}

// Init 统一初始化存储层：文档库、审计库、缓存、消息队列
func Init() error {
	return initComponents(components)
}

func initComponents(cs []component) error {
	for _, c := range cs {
		if err := c.init(); err != nil {
			if c.optional {
				logger.Logger.Warn("Storage component unavailable, running degraded",
					zap.String("component", c.name),
					zap.Error(err),
				)
				continue
			}
			return fmt.Errorf("init %s: %w", c.name, err)
		}
	}
	return nil
}
