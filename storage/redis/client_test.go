package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"NodeDashboard/config"
)

func TestKeySkipsEmptyParts(t *testing.T) {
	prefix := config.Cfg.RedisPrefix
	if prefix == "" {
		prefix = "ndash"
	}

	assert.Equal(t, prefix+":analytics:report:123:2024-01-02", Key("analytics:report", "123", "", "2024-01-02"))
	assert.Equal(t, prefix, Key())
}

func TestNewOptions(t *testing.T) {
	cfg := config.Config{
		RedisAddr:   "cache.internal:6380",
		RedisDB:     3,
		ServiceName: "nodedash",
	}

	opts := newOptions(cfg)

	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, "nodedash", opts.ClientName)
	assert.Equal(t, 1, opts.MaxRetries)
	assert.LessOrEqual(t, opts.ReadTimeout, time.Second)
}
