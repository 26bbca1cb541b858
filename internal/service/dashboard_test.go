package service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"NodeDashboard/internal/model"
	"NodeDashboard/internal/normalize"
	"NodeDashboard/internal/repository"
	"NodeDashboard/pkg/errors"
	"NodeDashboard/pkg/snowflake"
)

var renderNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

type fakeFetcher struct {
	rows        []model.AnalyticsRow
	err         error
	invalidated int
}

func (f *fakeFetcher) Fetch(context.Context) ([]model.AnalyticsRow, error) {
	return f.rows, f.err
}

func (f *fakeFetcher) Invalidate(context.Context) error {
	f.invalidated++
	return nil
}

type fakeRuns struct {
	runs []*model.RenderRun
}

func (r *fakeRuns) Create(_ context.Context, run *model.RenderRun) error {
	r.runs = append(r.runs, run)
	return nil
}

func (r *fakeRuns) ListRecent(_ context.Context, limit int) ([]*model.RenderRun, error) {
	if limit > len(r.runs) {
		limit = len(r.runs)
	}
	return r.runs[:limit], nil
}

type fakeAlerts struct {
	messages []model.ReconciliationAlertMessage
}

func (a *fakeAlerts) PublishReconciliationAlert(_ context.Context, msg model.ReconciliationAlertMessage) error {
	a.messages = append(a.messages, msg)
	return nil
}

func fixtureStore() *repository.MemoryStore {
	return repository.NewMemoryStore().
		Put(repository.SourceSubmissions,
			normalize.Document{"pubKey": "A", "submissions": primitive.M{"2024-01-01": primitive.M{"score": 5}}},
			normalize.Document{"pubKey": "B", "submissions": primitive.M{"2024-01-01": primitive.M{"score": 3}}},
		).
		Put(repository.SourceFaucets,
			normalize.Document{
				"walletAddress":   "A",
				"emailValidation": "CLAIMED",
				"createdAt":       primitive.NewDateTimeFromTime(time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)),
			},
		).
		Put(repository.SourceAirdrops,
			normalize.Document{"createdAt": time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "isKeepMyAirdrop": true},
			normalize.Document{"createdAt": time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC), "isKeepMyAirdrop": true},
			normalize.Document{"createdAt": time.Date(2024, 1, 2, 2, 0, 0, 0, time.UTC), "isKeepMyAirdrop": false},
		)
}

func newService(t *testing.T, store repository.DocumentStore, fetcher ReportFetcher) (*DashboardService, *fakeRuns, *fakeAlerts) {
	t.Helper()
	require.NoError(t, snowflake.Init(1, 1))

	runs := &fakeRuns{}
	alerts := &fakeAlerts{}
	deps := Deps{
		Store:                store,
		Runs:                 runs,
		Alerts:               alerts,
		Now:                  func() time.Time { return renderNow },
		AlertThreshold:       20,
		ValidationWindowDays: 30,
	}
	if fetcher != nil {
		deps.Analytics = fetcher
	}
	return NewDashboardService(deps), runs, alerts
}

func TestRenderBuildsEverySection(t *testing.T) {
	fetcher := &fakeFetcher{rows: []model.AnalyticsRow{{Date: "2024-01-09", ActiveUsers: 3, Sessions: 4}}}
	svc, runs, alerts := newService(t, fixtureStore(), fetcher)

	dashboard, err := svc.Render(context.Background(), model.TriggerLoad)
	require.NoError(t, err)

	assert.Equal(t, []model.ReconciliationRow{{
		Date:                  "2024-01-01",
		MissingWallets:        []string{"B"},
		TotalSubmittedWallets: 2,
		TotalMissing:          1,
		MissingRatioPercent:   50,
	}}, dashboard.Reconciliation)
	assert.Equal(t, []model.ScoreByDate{{Date: "2024-01-01", TotalScore: 8}}, dashboard.TaskScores)
	assert.Equal(t, []model.AirdropChoiceCounts{{Date: "2024-01-02", Swapped: 1, Kept: 2}}, dashboard.AirdropChoices)
	assert.Equal(t, []model.ValidationCounts{{Date: "2024-01-05", NewUsers: 1, EmailClaimed: 1}}, dashboard.FaucetValidations)
	assert.Equal(t, dashboard.FaucetValidations, dashboard.FaucetValidationsRecent)
	assert.Equal(t, fetcher.rows, dashboard.Analytics)
	assert.Empty(t, dashboard.AnalyticsError)
	assert.Equal(t, []string{model.SectionReferrals, model.SectionReferralCounts}, dashboard.EmptySections())
	assert.NotZero(t, dashboard.RunID)

	require.Len(t, runs.runs, 1)
	assert.Equal(t, model.RenderStatusSuccess, runs.runs[0].Status)
	assert.Equal(t, 2, runs.runs[0].SubmissionDocs)
	assert.Equal(t, 1, runs.runs[0].AlertsPublished)

	require.Len(t, alerts.messages, 1)
	assert.Equal(t, "2024-01-01", alerts.messages[0].Date)
	assert.Equal(t, dashboard.RunID, alerts.messages[0].RunID)
	assert.Equal(t, []string{"B"}, alerts.messages[0].MissingWallets)
}

func TestRenderIsolatesAnalyticsFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.AnalyticsUnavailable.Wrap(stderrors.New("permission denied"))}
	svc, runs, _ := newService(t, fixtureStore(), fetcher)

	dashboard, err := svc.Render(context.Background(), model.TriggerLoad)
	require.NoError(t, err)

	assert.NotEmpty(t, dashboard.TaskScores)
	assert.NotNil(t, dashboard.Analytics)
	assert.Empty(t, dashboard.Analytics)
	assert.Contains(t, dashboard.AnalyticsError, "permission denied")
	assert.Equal(t, model.RenderStatusPartial, runs.runs[0].Status)
}

func TestRenderWithoutAnalyticsConfigured(t *testing.T) {
	svc, _, _ := newService(t, fixtureStore(), nil)

	dashboard, err := svc.Render(context.Background(), model.TriggerLoad)
	require.NoError(t, err)
	assert.Equal(t, errAnalyticsNotConfigured.Error(), dashboard.AnalyticsError)
	assert.Contains(t, dashboard.EmptySections(), model.SectionAnalytics)
}

func TestRenderFailsWhenSourceUnavailable(t *testing.T) {
	store := fixtureStore().Fail(repository.SourceFaucets, stderrors.New("server selection timeout"))
	svc, runs, alerts := newService(t, store, &fakeFetcher{})

	dashboard, err := svc.Render(context.Background(), model.TriggerLoad)

	assert.Nil(t, dashboard)
	assert.ErrorIs(t, err, errors.SourceUnavailable)
	assert.Contains(t, err.Error(), "faucets")
	require.Len(t, runs.runs, 1)
	assert.Equal(t, model.RenderStatusFailed, runs.runs[0].Status)
	assert.Empty(t, alerts.messages)
}

func TestRenderEmptySources(t *testing.T) {
	svc, _, alerts := newService(t, repository.NewMemoryStore(), &fakeFetcher{rows: []model.AnalyticsRow{}})

	dashboard, err := svc.Render(context.Background(), model.TriggerLoad)
	require.NoError(t, err)

	assert.Equal(t, model.Sections, dashboard.EmptySections())
	assert.NotNil(t, dashboard.Reconciliation)
	assert.Empty(t, alerts.messages)
}

func TestRefreshInvalidatesAnalytics(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc, runs, _ := newService(t, fixtureStore(), fetcher)

	dashboard, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.invalidated)
	assert.Equal(t, model.TriggerRefresh, dashboard.Trigger)
	assert.Equal(t, model.TriggerRefresh, runs.runs[0].Trigger)
}

func TestSection(t *testing.T) {
	svc, _, _ := newService(t, fixtureStore(), &fakeFetcher{err: errors.AnalyticsUnavailable})
	ctx := context.Background()

	scores, err := svc.Section(ctx, model.SectionTaskScores)
	require.NoError(t, err)
	assert.Equal(t, []model.ScoreByDate{{Date: "2024-01-01", TotalScore: 8}}, scores)

	rows, err := svc.Section(ctx, model.SectionReconciliation)
	require.NoError(t, err)
	require.Len(t, rows.([]model.ReconciliationRow), 1)
	assert.Equal(t, 50.0, rows.([]model.ReconciliationRow)[0].MissingRatioPercent)

	counts, err := svc.Section(ctx, model.SectionReferralCounts)
	require.NoError(t, err)
	assert.Empty(t, counts)

	_, err = svc.Section(ctx, model.SectionAnalytics)
	assert.ErrorIs(t, err, errors.AnalyticsUnavailable)

	_, err = svc.Section(ctx, "revenue")
	assert.ErrorIs(t, err, errors.SectionNotFound)
}

func TestRecentRuns(t *testing.T) {
	svc, _, _ := newService(t, fixtureStore(), &fakeFetcher{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Render(ctx, model.TriggerLoad)
		require.NoError(t, err)
	}

	runs, err := svc.RecentRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	empty, err := NewDashboardService(Deps{Store: repository.NewMemoryStore()}).RecentRuns(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

type fakeAlertHistory struct {
	alerts map[string][]*model.ReconciliationAlert
}

func (h *fakeAlertHistory) ListByDate(_ context.Context, date string) ([]*model.ReconciliationAlert, error) {
	return h.alerts[date], nil
}

func TestAlertsByDate(t *testing.T) {
	ctx := context.Background()
	history := &fakeAlertHistory{alerts: map[string][]*model.ReconciliationAlert{
		"2024-01-01": {{Date: "2024-01-01", MessageID: "m-1", TotalMissing: 1}},
	}}
	svc := NewDashboardService(Deps{Store: repository.NewMemoryStore(), AlertHistory: history})

	alerts, err := svc.AlertsByDate(ctx, "2024-01-01")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "m-1", alerts[0].MessageID)

	none, err := svc.AlertsByDate(ctx, "2024-01-02")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = svc.AlertsByDate(ctx, "01/02/2024")
	assert.ErrorIs(t, err, errors.InvalidRequest)

	unconfigured, err := NewDashboardService(Deps{Store: repository.NewMemoryStore()}).AlertsByDate(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, unconfigured)
}
