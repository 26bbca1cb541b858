package middleware

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NodeDashboard/pkg/errors"
	"NodeDashboard/pkg/response"
)

func newEngine(middlewares ...app.HandlerFunc) *route.Engine {
	engine := route.NewEngine(config.NewOptions([]config.Option{}))
	engine.Use(middlewares...)
	return engine
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	engine := newEngine(RequestIDMiddleware())
	var seen string
	engine.GET("/ping", func(ctx context.Context, c *app.RequestContext) {
		seen = GetRequestID(c)
		c.String(200, "pong")
	})

	w := ut.PerformRequest(engine, "GET", "/ping", nil)
	resp := w.Result()
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, string(resp.Header.Peek("X-Request-ID")))

	w = ut.PerformRequest(engine, "GET", "/ping", nil, ut.Header{Key: "X-Request-ID", Value: "abc-123"})
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", string(w.Result().Header.Peek("X-Request-ID")))
}

func TestCORSAllowsConfiguredOriginOnly(t *testing.T) {
	engine := newEngine(CORSMiddleware())
	engine.GET("/ping", func(ctx context.Context, c *app.RequestContext) {
		c.String(200, "pong")
	})

	w := ut.PerformRequest(engine, "GET", "/ping", nil, ut.Header{Key: "Origin", Value: "http://localhost:3000"})
	assert.Equal(t, "http://localhost:3000", string(w.Result().Header.Peek("Access-Control-Allow-Origin")))

	w = ut.PerformRequest(engine, "GET", "/ping", nil, ut.Header{Key: "Origin", Value: "http://evil.example"})
	assert.Empty(t, string(w.Result().Header.Peek("Access-Control-Allow-Origin")))
}

func TestCORSPreflight(t *testing.T) {
	engine := newEngine(CORSMiddleware())
	engine.OPTIONS("/ping", func(ctx context.Context, c *app.RequestContext) {
		c.String(200, "should not reach")
	})

	w := ut.PerformRequest(engine, "OPTIONS", "/ping", nil, ut.Header{Key: "Origin", Value: "http://localhost:3000"})
	assert.Equal(t, 204, w.Result().StatusCode())
}

func TestRecoverReturnsInternalError(t *testing.T) {
	engine := newEngine(RecoverMiddlewareWithConfig(RecoverConfig{EnableStackTrace: true}))
	engine.GET("/panic", func(ctx context.Context, c *app.RequestContext) {
		panic("boom")
	})

	w := ut.PerformRequest(engine, "GET", "/panic", nil)
	resp := w.Result()
	require.Equal(t, 500, resp.StatusCode())

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body(), &body))
	assert.Equal(t, errors.InternalError.Code, body.Error.Code)
	assert.Equal(t, "boom", body.Error.Details["panic"])
}

func TestRecoverHidesDetailsInProduction(t *testing.T) {
	engine := newEngine(RecoverMiddlewareWithConfig(RecoverConfig{IsProduction: true}))
	engine.GET("/panic", func(ctx context.Context, c *app.RequestContext) {
		panic("secret")
	})

	w := ut.PerformRequest(engine, "GET", "/panic", nil)
	resp := w.Result()
	require.Equal(t, 500, resp.StatusCode())
	assert.NotContains(t, string(resp.Body()), "secret")
}

func TestIsSeverePanic(t *testing.T) {
	assert.True(t, isSeverePanic("runtime error: index out of range [3] with length 2"))
	assert.False(t, isSeverePanic("boom"))
	assert.False(t, isSeverePanic(nil))
}

func TestRateLimitFailsOpenWithoutRedis(t *testing.T) {
	unreachable := redislib.NewClient(&redislib.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer unreachable.Close()

	limiter := NewRateLimiter(RateLimitConfig{KeyPrefix: "rate:test", Window: 60, MaxRequests: 1, BlockDuration: 60}).
		WithClient(func() *redislib.Client { return unreachable })

	engine := newEngine(rateLimitMiddleware(limiter))
	engine.POST("/refresh", func(ctx context.Context, c *app.RequestContext) {
		c.String(200, "ok")
	})

	for i := 0; i < 3; i++ {
		w := ut.PerformRequest(engine, "POST", "/refresh", nil)
		assert.Equal(t, 200, w.Result().StatusCode())
	}
}

func TestOpenTelemetryMiddlewareWithoutMetrics(t *testing.T) {
	engine := newEngine(RequestIDMiddleware(), OpenTelemetryMiddleware())
	engine.GET("/v1/items/:id", func(ctx context.Context, c *app.RequestContext) {
		c.String(200, "ok")
	})

	w := ut.PerformRequest(engine, "GET", "/v1/items/1", nil)
	assert.Equal(t, 200, w.Result().StatusCode())
}
