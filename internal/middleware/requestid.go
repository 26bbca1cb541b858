package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestIDMiddleware 透传或生成请求 ID
func RequestIDMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		requestID := string(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)
		c.Next(ctx)
	}
}

// GetRequestID 返回当前请求的 ID，未经过中间件时读取请求头
func GetRequestID(c *app.RequestContext) string {
	if id := c.GetString(requestIDKey); id != "" {
		return id
	}
	return string(c.GetHeader(requestIDHeader))
}
