package redis

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"NodeDashboard/config"
	redisotel "NodeDashboard/pkg/redis"
)

const pingTimeout = 3 * time.Second

var (
	client *redis.Client
	once   sync.Once
	err    error
)

// Init 创建客户端并探活。探活失败时客户端仍然保留，Redis 恢复后命令自动重连
func Init() error {
	once.Do(func() {
		cfg := config.Cfg

		client = redis.NewClient(newOptions(cfg))
		redisotel.Instrument(client, cfg.ServiceName, cfg.RedisDB)

		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()

		if pingErr := client.Ping(ctx).Err(); pingErr != nil {
			err = fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, pingErr)
		}
	})

	return err
}

// newOptions 缓存、限流、去重都在请求路径上，超时和重试都压得很短
func newOptions(cfg config.Config) *redis.Options {
	return &redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		ClientName:   cfg.ServiceName,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
		PoolSize:     20,
		MinIdleConns: 2,
		MaxRetries:   1,
	}
}

// Client 未调用 Init 时按配置创建
func Client() *redis.Client {
	_ = Init()
	return client
}

func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}

	return client.Close()
}

// Key 以 REDIS_PREFIX 为命名空间拼接键名，空片段会被跳过
func Key(parts ...string) string {
	prefix := config.Cfg.RedisPrefix
	if prefix == "" {
		prefix = "ndash"
	}

	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, prefix)
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}

	return strings.Join(segments, ":")
}
