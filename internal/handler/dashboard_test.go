package handler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NodeDashboard/internal/model"
	"NodeDashboard/pkg/errors"
)

type fakeDashboard struct {
	dashboard  *model.Dashboard
	err        error
	refreshed  bool
	lastLimit  int
	sectionArg string
	alertDate  string
}

func (f *fakeDashboard) Render(context.Context, string) (*model.Dashboard, error) {
	return f.dashboard, f.err
}

func (f *fakeDashboard) Refresh(context.Context) (*model.Dashboard, error) {
	f.refreshed = true
	return f.dashboard, f.err
}

func (f *fakeDashboard) Section(_ context.Context, name string) (interface{}, error) {
	f.sectionArg = name
	if name != model.SectionReferralCounts {
		return nil, errors.SectionNotFound
	}
	return []model.CountByDate{{Date: "2024-01-02", Count: 3}}, nil
}

func (f *fakeDashboard) RecentRuns(_ context.Context, limit int) ([]*model.RenderRun, error) {
	f.lastLimit = limit
	return []*model.RenderRun{}, nil
}

func (f *fakeDashboard) AlertsByDate(_ context.Context, date string) ([]*model.ReconciliationAlert, error) {
	f.alertDate = date
	return []*model.ReconciliationAlert{{Date: date, MessageID: "m-1", TotalMissing: 2}}, nil
}

func newTestEngine(svc Dashboard) *route.Engine {
	SetDashboardService(svc)

	engine := route.NewEngine(config.NewOptions([]config.Option{}))
	engine.GET("/healthz", Healthz)
	g := engine.Group("/v1/dashboard")
	g.GET("", GetDashboard)
	g.POST("/refresh", RefreshDashboard)
	g.GET("/sections/:section", GetSection)
	g.GET("/runs", ListRuns)
	g.GET("/alerts", ListAlerts)
	return engine
}

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Meta  map[string]interface{} `json:"meta"`
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decode(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestGetDashboardReturnsMeta(t *testing.T) {
	fake := &fakeDashboard{dashboard: &model.Dashboard{
		RenderedAt:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		RunID:          42,
		AnalyticsError: "Analytics report unavailable",
		Reconciliation: []model.ReconciliationRow{{Date: "2024-01-01", TotalSubmittedWallets: 1}},
	}}
	engine := newTestEngine(fake)

	w := ut.PerformRequest(engine, "GET", "/v1/dashboard", nil)
	resp := w.Result()
	require.Equal(t, 200, resp.StatusCode())

	env := decode(t, resp.Body())
	assert.Equal(t, "42", env.Meta["run_id"])
	assert.Equal(t, "Analytics report unavailable", env.Meta["analytics_error"])
	assert.Contains(t, env.Meta["empty_sections"], model.SectionTaskScores)
	assert.NotContains(t, env.Meta["empty_sections"], model.SectionReconciliation)
}

func TestGetDashboardSourceUnavailable(t *testing.T) {
	engine := newTestEngine(&fakeDashboard{err: errors.SourceUnavailable.Wrap(context.DeadlineExceeded)})

	w := ut.PerformRequest(engine, "GET", "/v1/dashboard", nil)
	resp := w.Result()
	assert.Equal(t, 503, resp.StatusCode())
	assert.Equal(t, errors.SourceUnavailable.Code, decode(t, resp.Body()).Error.Code)
}

func TestRefreshDashboard(t *testing.T) {
	fake := &fakeDashboard{dashboard: &model.Dashboard{RunID: 7}}
	engine := newTestEngine(fake)

	w := ut.PerformRequest(engine, "POST", "/v1/dashboard/refresh", nil)
	assert.Equal(t, 200, w.Result().StatusCode())
	assert.True(t, fake.refreshed)
}

func TestGetSection(t *testing.T) {
	fake := &fakeDashboard{}
	engine := newTestEngine(fake)

	w := ut.PerformRequest(engine, "GET", "/v1/dashboard/sections/referral-counts", nil)
	resp := w.Result()
	require.Equal(t, 200, resp.StatusCode())
	assert.Equal(t, model.SectionReferralCounts, fake.sectionArg)

	var rows []model.CountByDate
	require.NoError(t, json.Unmarshal(decode(t, resp.Body()).Data, &rows))
	assert.Equal(t, []model.CountByDate{{Date: "2024-01-02", Count: 3}}, rows)

	w = ut.PerformRequest(engine, "GET", "/v1/dashboard/sections/unknown", nil)
	resp = w.Result()
	assert.Equal(t, 404, resp.StatusCode())
	assert.Equal(t, errors.SectionNotFound.Code, decode(t, resp.Body()).Error.Code)
}

func TestListRunsLimit(t *testing.T) {
	fake := &fakeDashboard{}
	engine := newTestEngine(fake)

	w := ut.PerformRequest(engine, "GET", "/v1/dashboard/runs", nil)
	assert.Equal(t, 200, w.Result().StatusCode())
	assert.Equal(t, defaultRunsLimit, fake.lastLimit)

	w = ut.PerformRequest(engine, "GET", "/v1/dashboard/runs?limit=5", nil)
	assert.Equal(t, 200, w.Result().StatusCode())
	assert.Equal(t, 5, fake.lastLimit)

	for _, bad := range []string{"0", "101", "abc"} {
		w = ut.PerformRequest(engine, "GET", "/v1/dashboard/runs?limit="+bad, nil)
		resp := w.Result()
		assert.Equal(t, 400, resp.StatusCode(), bad)
		assert.Equal(t, errors.InvalidRequest.Code, decode(t, resp.Body()).Error.Code)
	}
}

func TestListAlerts(t *testing.T) {
	fake := &fakeDashboard{}
	engine := newTestEngine(fake)

	w := ut.PerformRequest(engine, "GET", "/v1/dashboard/alerts?date=2024-01-01", nil)
	assert.Equal(t, 200, w.Result().StatusCode())
	assert.Equal(t, "2024-01-01", fake.alertDate)
	assert.Contains(t, string(w.Result().Body()), `"message_id":"m-1"`)

	w = ut.PerformRequest(engine, "GET", "/v1/dashboard/alerts", nil)
	assert.Equal(t, 200, w.Result().StatusCode())
	assert.Equal(t, time.Now().UTC().Format(time.DateOnly), fake.alertDate)

	fake.alertDate = ""
	w = ut.PerformRequest(engine, "GET", "/v1/dashboard/alerts?date=2024-13-01", nil)
	resp := w.Result()
	assert.Equal(t, 400, resp.StatusCode())
	assert.Equal(t, errors.InvalidRequest.Code, decode(t, resp.Body()).Error.Code)
	assert.Empty(t, fake.alertDate)
}

func TestHealthz(t *testing.T) {
	engine := newTestEngine(&fakeDashboard{})

	w := ut.PerformRequest(engine, "GET", "/healthz", nil)
	assert.Equal(t, 200, w.Result().StatusCode())
}
