package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dinerozz/tabsnoop-backend/internal/entity"
	"github.com/dinerozz/tabsnoop-backend/internal/host"
	"github.com/dinerozz/tabsnoop-backend/internal/repository"
	service "github.com/dinerozz/tabsnoop-backend/internal/service/tab_event"
	trackerService "github.com/dinerozz/tabsnoop-backend/internal/service/tracker"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stateResponse struct {
	Data    entity.TrackerState `json:"data"`
	Success bool                `json:"success"`
}

type batchResponse struct {
	Data    entity.BatchTabEventResponse `json:"data"`
	Success bool                         `json:"success"`
}

func setupRouter(t *testing.T) (*gin.Engine, repository.DomainRecordRepository, *time.Time) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryDomainRecordRepository()
	registry := host.NewRegistry()
	tracker := trackerService.NewTrackerService(registry, repo,
		trackerService.WithClock(func() time.Time { return now }),
	)
	svc := service.NewTabEventService(registry, tracker, entity.TrackerSettings{
		IdleDetectionSeconds: 60,
		InternalSchemes:      []string{"chrome", "edge"},
		Timezone:             "UTC",
	})
	h := NewTabEventHandler(svc)

	r := gin.New()
	r.POST("/events", h.CreateEvent)
	r.POST("/events/batch", h.BatchCreateEvents)
	r.GET("/tracker/state", h.GetState)
	r.GET("/tracker/config", h.GetSettings)

	return r, repo, &now
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateEvent_TracksActivation(t *testing.T) {
	r, repo, now := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/events", map[string]any{
		"type": "tab_activated", "tabId": 1, "windowId": 1, "url": "https://www.example.com/a",
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp stateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data.ActiveTabID)
	assert.Equal(t, 1, *resp.Data.ActiveTabID)

	*now = now.Add(30 * time.Second)
	w = doJSON(r, http.MethodPost, "/events", map[string]any{"type": "tab_removed", "tabId": 1})
	require.Equal(t, http.StatusAccepted, w.Code)

	record, err := repo.GetOrDefault(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(30000), record.TotalTime)
}

func TestCreateEvent_RejectsInvalidEvents(t *testing.T) {
	r, _, _ := setupRouter(t)

	tests := []struct {
		name string
		body any
	}{
		{"missing type", map[string]any{"tabId": 1}},
		{"unknown type", map[string]any{"type": "tab_moved", "tabId": 1}},
		{"missing tab id", map[string]any{"type": "tab_activated"}},
		{"bad idle state", map[string]any{"type": "idle_state_changed", "state": "asleep"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/events", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestBatchCreateEvents_IsolatesFailures(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/events/batch", map[string]any{
		"events": []map[string]any{
			{"type": "tab_activated", "tabId": 1, "windowId": 1, "url": "https://a.com"},
			{"type": "tab_updated"},
			{"type": "idle_state_changed", "state": "idle"},
		},
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp batchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, 2, resp.Data.Processed)
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Results, 3)
	assert.NotEmpty(t, resp.Data.Results[1].Error)
	assert.Empty(t, resp.Data.Results[2].Error)

	w = doJSON(r, http.MethodGet, "/tracker/state", nil)
	var state stateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.True(t, state.Data.Idle)
	assert.Nil(t, state.Data.ActiveTabID)
}

func TestBatchCreateEvents_UsesEventTimestamps(t *testing.T) {
	r, repo, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/events/batch", map[string]any{
		"events": []map[string]any{
			{"type": "tab_activated", "tabId": 1, "windowId": 1, "url": "https://www.example.com/", "timestamp": 1714557600000},
			{"type": "tab_activated", "tabId": 2, "windowId": 1, "url": "https://other.org/", "timestamp": 1714557605000},
		},
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	record, err := repo.GetOrDefault(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), record.TotalTime)
}

func TestBatchCreateEvents_EmptyBatch(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/events/batch", map[string]any{"events": []any{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSettings(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := doJSON(r, http.MethodGet, "/tracker/config", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"idleDetectionSeconds":60`)
	assert.Contains(t, w.Body.String(), `"internalSchemes":["chrome","edge"]`)
}
