package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dinerozz/tabsnoop-backend/internal/entity"
	"github.com/dinerozz/tabsnoop-backend/internal/host"
	"github.com/dinerozz/tabsnoop-backend/internal/repository"
	trackerService "github.com/dinerozz/tabsnoop-backend/internal/service/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }
func int64Ptr(v int64) *int64 { return &v }

type testEnv struct {
	nowMs   int64
	repo    repository.DomainRecordRepository
	service TabEventService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{repo: repository.NewMemoryDomainRecordRepository()}
	registry := host.NewRegistry()
	tracker := trackerService.NewTrackerService(registry, env.repo,
		trackerService.WithClock(func() time.Time { return time.UnixMilli(env.nowMs) }),
		trackerService.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	env.service = NewTabEventService(registry, tracker, entity.TrackerSettings{IdleDetectionSeconds: 60})
	return env
}

func (e *testEnv) send(t *testing.T, at int64, req entity.TabEventRequest) {
	t.Helper()
	e.nowMs = at
	require.NoError(t, e.service.HandleEvent(context.Background(), req))
}

func TestHandleEvent_TabSwitchScenario(t *testing.T) {
	env := newTestEnv(t)

	env.send(t, 0, entity.TabEventRequest{
		Type: entity.EventTabActivated, TabID: intPtr(1), WindowID: intPtr(1), URL: strPtr("https://www.example.com/"),
	})
	env.send(t, 5000, entity.TabEventRequest{
		Type: entity.EventTabActivated, TabID: intPtr(2), WindowID: intPtr(1), URL: strPtr("https://other.org/"),
	})

	record, err := env.repo.GetOrDefault(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), record.TotalTime)
	assert.Equal(t, []entity.VisitInterval{{Start: 0, End: 5000}}, record.Visits)
}

func TestHandleEvent_NavigationScenario(t *testing.T) {
	env := newTestEnv(t)

	env.send(t, 0, entity.TabEventRequest{Type: entity.EventTabActivated, TabID: intPtr(1), WindowID: intPtr(1)})
	env.send(t, 0, entity.TabEventRequest{Type: entity.EventTabUpdated, TabID: intPtr(1), URL: strPtr("https://a.com/"), Active: boolPtr(true)})
	env.send(t, 3000, entity.TabEventRequest{Type: entity.EventTabUpdated, TabID: intPtr(1), URL: strPtr("https://b.com/"), Active: boolPtr(true)})
	env.send(t, 7000, entity.TabEventRequest{Type: entity.EventTabRemoved, TabID: intPtr(1)})

	all, err := env.repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3000), all["a.com"].TotalTime)
	assert.Equal(t, int64(4000), all["b.com"].TotalTime)
}

func TestHandleEvent_StartupAndIdleCycle(t *testing.T) {
	env := newTestEnv(t)

	env.send(t, 0, entity.TabEventRequest{
		Type: entity.EventStartup, TabID: intPtr(3), WindowID: intPtr(7), URL: strPtr("https://docs.go.dev/"),
	})
	assert.Equal(t, 3, *env.service.GetState().ActiveTabID)

	env.send(t, 20_000, entity.TabEventRequest{Type: entity.EventIdleStateChanged, State: strPtr(entity.IdleStateLocked)})
	assert.True(t, env.service.GetState().Idle)

	env.send(t, 50_000, entity.TabEventRequest{Type: entity.EventIdleStateChanged, State: strPtr(entity.IdleStateActive)})
	env.send(t, 55_000, entity.TabEventRequest{Type: entity.EventWindowFocusChanged, WindowID: intPtr(host.WindowIDNone)})

	record, err := env.repo.GetOrDefault(context.Background(), "docs.go.dev")
	require.NoError(t, err)
	assert.Equal(t, int64(25_000), record.TotalTime)
	assert.Len(t, record.Visits, 2)
}

func TestHandleEvent_WindowFocusWithSnapshot(t *testing.T) {
	env := newTestEnv(t)

	env.send(t, 0, entity.TabEventRequest{Type: entity.EventTabActivated, TabID: intPtr(1), WindowID: intPtr(1), URL: strPtr("https://a.com/")})
	env.send(t, 1000, entity.TabEventRequest{
		Type: entity.EventWindowFocusChanged, WindowID: intPtr(2), TabID: intPtr(9), URL: strPtr("https://b.com/"),
	})

	state := env.service.GetState()
	assert.Equal(t, 9, *state.ActiveTabID)
	assert.Equal(t, "https://b.com/", *state.ActiveURL)
}

func TestValidateEvent(t *testing.T) {
	env := newTestEnv(t)

	invalid := []entity.TabEventRequest{
		{Type: "click"},
		{Type: entity.EventTabActivated},
		{Type: entity.EventTabRemoved},
		{Type: entity.EventTabUpdated, TabID: intPtr(1)},
		{Type: entity.EventWindowFocusChanged},
		{Type: entity.EventIdleStateChanged},
		{Type: entity.EventIdleStateChanged, State: strPtr("sleeping")},
		{Type: entity.EventStartup, TabID: intPtr(1)},
		{Type: entity.EventTabActivated, TabID: intPtr(-4)},
		{Type: entity.EventTabActivated, TabID: intPtr(1), Timestamp: int64Ptr(0)},
	}

	for _, req := range invalid {
		err := env.service.ValidateEvent(req)
		assert.True(t, errors.Is(err, ErrInvalidEvent), "expected invalid: %+v", req)
	}

	assert.NoError(t, env.service.ValidateEvent(entity.TabEventRequest{Type: entity.EventStartup}))
	assert.NoError(t, env.service.ValidateEvent(entity.TabEventRequest{Type: entity.EventTabActivated, TabID: intPtr(1)}))
}

func TestHandleBatch_IsolatesFailures(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.service.HandleBatch(context.Background(), entity.BatchTabEventRequest{
		Events: []entity.TabEventRequest{
			{Type: entity.EventTabActivated, TabID: intPtr(1), WindowID: intPtr(1), URL: strPtr("https://a.com/")},
			{Type: "scroll"},
			{Type: entity.EventTabRemoved, TabID: intPtr(1)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Processed)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 3)
	assert.NotEmpty(t, resp.Results[1].Error)
	assert.Empty(t, resp.Results[2].Error)
}

func TestHandleBatch_BillsByEventTimestamps(t *testing.T) {
	env := newTestEnv(t)
	env.nowMs = 1_000_000

	resp, err := env.service.HandleBatch(context.Background(), entity.BatchTabEventRequest{
		Events: []entity.TabEventRequest{
			{Type: entity.EventTabActivated, TabID: intPtr(1), WindowID: intPtr(1), URL: strPtr("https://www.example.com/"), Timestamp: int64Ptr(100_000)},
			{Type: entity.EventTabActivated, TabID: intPtr(2), WindowID: intPtr(1), URL: strPtr("https://other.org/"), Timestamp: int64Ptr(105_000)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 0, resp.Failed)

	record, err := env.repo.GetOrDefault(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), record.TotalTime)
	assert.Equal(t, []entity.VisitInterval{{Start: 100_000, End: 105_000}}, record.Visits)
	assert.Equal(t, int64(105_000), env.service.GetState().PendingStart[2])
}

func TestHandleBatch_Limits(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.HandleBatch(context.Background(), entity.BatchTabEventRequest{})
	assert.ErrorIs(t, err, ErrInvalidEvent)

	tooMany := make([]entity.TabEventRequest, maxBatchSize+1)
	_, err = env.service.HandleBatch(context.Background(), entity.BatchTabEventRequest{Events: tooMany})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestGetSettings(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, 60, env.service.GetSettings().IdleDetectionSeconds)
}
