package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"NodeDashboard/internal/handler"
	"NodeDashboard/internal/middleware"
)

func Register(h *server.Hertz) {
	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.RequestIDMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	h.GET("/healthz", handler.Healthz)

	v1 := h.Group("/v1")

	// 看板路由
	dashboard := v1.Group("/dashboard")
	dashboard.Use(middleware.ReadRateLimitMiddleware())
	{
		dashboard.GET("", handler.GetDashboard)
		dashboard.POST("/refresh", middleware.RefreshRateLimitMiddleware(), handler.RefreshDashboard) // 刷新会重读全部集合
		dashboard.GET("/sections/:section", handler.GetSection)
		dashboard.GET("/runs", handler.ListRuns)
		dashboard.GET("/alerts", handler.ListAlerts)
	}
}
