package cache

import (
	"context"
	"time"

	"NodeDashboard/storage/redis"
)

// 告警消息去重：处理前 SETNX 占位，成功后延长保留期，失败时释放以便重投
const (
	messagePrefix     = "mq:alert"
	processingTTL     = 5 * time.Minute
	processedRetained = 7 * 24 * time.Hour
)

// TryMarkMessageProcessing 抢占消息处理权，返回 false 表示已被处理或正在处理
func TryMarkMessageProcessing(ctx context.Context, messageID string) (bool, error) {
	return redis.Client().SetNX(ctx, redis.Key(messagePrefix, messageID), "processing", processingTTL).Result()
}

// MarkMessageProcessed 标记消息已处理
func MarkMessageProcessed(ctx context.Context, messageID string) error {
	return redis.Client().Set(ctx, redis.Key(messagePrefix, messageID), "done", processedRetained).Err()
}

// UnmarkMessageProcessing 处理失败时释放占位
func UnmarkMessageProcessing(ctx context.Context, messageID string) error {
	return redis.Client().Del(ctx, redis.Key(messagePrefix, messageID)).Err()
}
