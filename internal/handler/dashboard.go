package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"NodeDashboard/internal/model"
	"NodeDashboard/pkg/errors"
	"NodeDashboard/pkg/response"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

// Dashboard handler 依赖的看板能力
type Dashboard interface {
	Render(ctx context.Context, trigger string) (*model.Dashboard, error)
	Refresh(ctx context.Context) (*model.Dashboard, error)
	Section(ctx context.Context, name string) (interface{}, error)
	RecentRuns(ctx context.Context, limit int) ([]*model.RenderRun, error)
	AlertsByDate(ctx context.Context, date string) ([]*model.ReconciliationAlert, error)
}

var dashboardService Dashboard

// SetDashboardService 注入看板服务，启动时调用一次
func SetDashboardService(svc Dashboard) {
	dashboardService = svc
}

func dashboardMeta(d *model.Dashboard) map[string]interface{} {
	meta := map[string]interface{}{
		"run_id":         strconv.FormatInt(d.RunID, 10),
		"rendered_at":    d.RenderedAt,
		"empty_sections": d.EmptySections(),
	}
	if d.AnalyticsError != "" {
		meta["analytics_error"] = d.AnalyticsError
	}
	return meta
}

// GetDashboard 完整渲染看板
// GET /v1/dashboard
func GetDashboard(ctx context.Context, c *app.RequestContext) {
	d, err := dashboardService.Render(ctx, model.TriggerLoad)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.SuccessWithMeta(ctx, c, d, dashboardMeta(d))
}

// RefreshDashboard 丢弃报表缓存后重新渲染
// POST /v1/dashboard/refresh
func RefreshDashboard(ctx context.Context, c *app.RequestContext) {
	d, err := dashboardService.Refresh(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.SuccessWithMeta(ctx, c, d, dashboardMeta(d))
}

// GetSection 单独获取一个分区
// GET /v1/dashboard/sections/:section
func GetSection(ctx context.Context, c *app.RequestContext) {
	name := c.Param("section")

	data, err := dashboardService.Section(ctx, name)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.SuccessWithMeta(ctx, c, data, map[string]interface{}{"section": name})
}

// ListRuns 最近的渲染记录
// GET /v1/dashboard/runs?limit=20
func ListRuns(ctx context.Context, c *app.RequestContext) {
	limit := defaultRunsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxRunsLimit {
			response.ErrorWithDetails(ctx, c, errors.InvalidRequest, map[string]interface{}{
				"limit": "must be an integer between 1 and " + strconv.Itoa(maxRunsLimit),
			})
			return
		}
		limit = n
	}

	runs, err := dashboardService.RecentRuns(ctx, limit)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.SuccessWithMeta(ctx, c, runs, map[string]interface{}{"limit": limit})
}

// ListAlerts 某日已落库的对账告警，date 缺省为当天 (UTC)
// GET /v1/dashboard/alerts?date=2024-01-01
func ListAlerts(ctx context.Context, c *app.RequestContext) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().UTC().Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, date); err != nil {
		response.ErrorWithDetails(ctx, c, errors.InvalidRequest, map[string]interface{}{
			"date": "must be formatted as YYYY-MM-DD",
		})
		return
	}

	alerts, err := dashboardService.AlertsByDate(ctx, date)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.SuccessWithMeta(ctx, c, alerts, map[string]interface{}{"date": date})
}

// Healthz 存活探针
// GET /healthz
func Healthz(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}
