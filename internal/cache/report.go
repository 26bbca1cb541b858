package cache

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"math/rand"
	"time"

	ri "github.com/redis/go-redis/v9"

	"NodeDashboard/config"
	"NodeDashboard/storage/redis"
)

const (
	// 当天报表为空时的占位值
	emptyReport    = "__EMPTY__"
	emptyReportTTL = 5 * time.Minute
	// 过期时间随机抖动上限，错开各属性同时回源
	ttlJitterMax = 30 * time.Second
)

// ReportCache 外部报表缓存，键为 属性:UTC 日期，过期时间不跨过下一个 UTC 零点
type ReportCache struct {
	namespace string
	ttl       time.Duration
	now       func() time.Time
	jitter    func(max time.Duration) time.Duration
}

func NewReportCache(namespace string, ttl time.Duration) *ReportCache {
	return &ReportCache{
		namespace: namespace,
		ttl:       ttl,
		now:       time.Now,
		jitter: func(max time.Duration) time.Duration {
			return time.Duration(rand.Int63n(int64(max)))
		},
	}
}

// Set 写入报表行，空报表写占位值并使用较短的过期时间
func (c *ReportCache) Set(ctx context.Context, key string, rows interface{}) error {
	data, err := encodeReport(rows)
	if err != nil {
		return err
	}
	return redis.Client().Set(ctx, c.key(key), data, c.expiry(data == emptyReport)).Err()
}

// Get 读取报表行，dest 须为切片指针；命中空报表时 dest 为空切片
func (c *ReportCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := redis.Client().Get(ctx, c.key(key)).Result()
	if err != nil {
		if stderrors.Is(err, ri.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cached report: %w", err)
	}

	if err := decodeReport(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *ReportCache) Delete(ctx context.Context, key string) error {
	return redis.Client().Del(ctx, c.key(key)).Err()
}

func (c *ReportCache) key(key string) string {
	return redis.Key(c.namespace, key)
}

func (c *ReportCache) expiry(empty bool) time.Duration {
	ttl := c.ttl
	if empty {
		ttl = emptyReportTTL
	}
	ttl += c.jitter(ttlJitterMax)

	now := c.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	if left := midnight.Sub(now); left < ttl {
		ttl = left
	}
	return ttl
}

func encodeReport(rows interface{}) (string, error) {
	data, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	if s := string(data); s == "null" || s == "[]" {
		return emptyReport, nil
	}
	return string(data), nil
}

func decodeReport(data string, dest interface{}) error {
	if data == emptyReport {
		data = "[]"
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal cached report: %w", err)
	}
	return nil
}

// AnalyticsReportCache GA 报表缓存
var AnalyticsReportCache = NewReportCache("analytics:report", config.Cfg.GACacheTTL())
