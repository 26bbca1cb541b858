package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NodeDashboard/internal/model"
)

type fakeRenderer struct {
	mu       sync.Mutex
	triggers []string
	release  chan struct{}
	started  chan struct{}
	err      error
}

func (f *fakeRenderer) Render(ctx context.Context, trigger string) (*model.Dashboard, error) {
	f.mu.Lock()
	f.triggers = append(f.triggers, trigger)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return &model.Dashboard{RunID: 1, Trigger: trigger}, nil
}

func TestRunOnceUsesScheduleTrigger(t *testing.T) {
	r := &fakeRenderer{}
	s := NewReconcileScheduler(r, time.Second)
	fixed := time.Date(2024, 1, 10, 0, 5, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, []string{model.TriggerSchedule}, r.triggers)
	assert.Equal(t, fixed, s.LastRunAt())
}

func TestRunOnceReturnsRenderError(t *testing.T) {
	boom := errors.New("mongo down")
	s := NewReconcileScheduler(&fakeRenderer{err: boom}, time.Second)

	assert.ErrorIs(t, s.RunOnce(context.Background()), boom)
}

func TestRunOnceSkipsWhileRunning(t *testing.T) {
	r := &fakeRenderer{release: make(chan struct{}), started: make(chan struct{}, 1)}
	s := NewReconcileScheduler(r, time.Second)

	done := make(chan error, 1)
	go func() { done <- s.RunOnce(context.Background()) }()
	<-r.started

	// 第一次仍在执行，第二次直接跳过
	require.NoError(t, s.RunOnce(context.Background()))
	close(r.release)
	require.NoError(t, <-done)

	assert.Len(t, r.triggers, 1)
}

func TestDueAfterHalfInterval(t *testing.T) {
	s := NewReconcileScheduler(&fakeRenderer{}, time.Second)
	now := time.Date(2024, 1, 10, 0, 5, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	assert.True(t, s.due(time.Hour), "never ran")

	require.NoError(t, s.RunOnce(context.Background()))
	now = now.Add(20 * time.Minute)
	assert.False(t, s.due(time.Hour))

	now = now.Add(10 * time.Minute)
	assert.True(t, s.due(time.Hour))
}

func TestNextDailyRun(t *testing.T) {
	before := time.Date(2024, 1, 10, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 5, 0, 0, time.UTC), NextDailyRun(before))

	after := time.Date(2024, 1, 10, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 11, 0, 5, 0, 0, time.UTC), NextDailyRun(after))

	shanghai := time.FixedZone("UTC+8", 8*3600)
	local := time.Date(2024, 1, 10, 7, 0, 0, 0, shanghai) // 2024-01-09 23:00 UTC
	assert.Equal(t, time.Date(2024, 1, 10, 0, 5, 0, 0, time.UTC), NextDailyRun(local))
}
