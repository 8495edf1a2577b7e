// internal/service/tab_event/tab_event.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dinerozz/tabsnoop-backend/internal/entity"
	"github.com/dinerozz/tabsnoop-backend/internal/host"
	trackerService "github.com/dinerozz/tabsnoop-backend/internal/service/tracker"
)

const maxBatchSize = 1000

// ErrInvalidEvent marks events rejected before reaching the tracker.
var ErrInvalidEvent = errors.New("invalid event")

type TabEventService interface {
	HandleEvent(ctx context.Context, req entity.TabEventRequest) error
	HandleBatch(ctx context.Context, req entity.BatchTabEventRequest) (*entity.BatchTabEventResponse, error)
	ValidateEvent(req entity.TabEventRequest) error
	GetState() entity.TrackerState
	GetSettings() entity.TrackerSettings
}

type tabEventService struct {
	mu       sync.Mutex
	registry *host.Registry
	tracker  trackerService.TrackerService
	settings entity.TrackerSettings
}

func NewTabEventService(registry *host.Registry, tracker trackerService.TrackerService, settings entity.TrackerSettings) TabEventService {
	return &tabEventService{
		registry: registry,
		tracker:  tracker,
		settings: settings,
	}
}

var validEventTypes = map[string]bool{
	entity.EventStartup:            true,
	entity.EventTabActivated:       true,
	entity.EventTabUpdated:         true,
	entity.EventTabRemoved:         true,
	entity.EventWindowFocusChanged: true,
	entity.EventIdleStateChanged:   true,
}

var validIdleStates = map[string]bool{
	entity.IdleStateActive: true,
	entity.IdleStateIdle:   true,
	entity.IdleStateLocked: true,
}

// HandleEvent records the tab snapshot carried by req in the registry, then
// applies the event to the tracker. Dispatch is serialized so the registry
// and the tracker always see events in the same order.
func (s *tabEventService) HandleEvent(ctx context.Context, req entity.TabEventRequest) error {
	if err := s.ValidateEvent(req); err != nil {
		return err
	}

	if req.Timestamp != nil {
		ctx = trackerService.ContextWithEventTime(ctx, time.UnixMilli(*req.Timestamp))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch req.Type {
	case entity.EventStartup:
		if req.TabID != nil {
			s.registry.Activate(*req.TabID, *req.WindowID, stringValue(req.URL))
			s.registry.FocusWindow(*req.WindowID)
		}
		err = s.tracker.Start(ctx)

	case entity.EventTabActivated:
		if req.WindowID != nil {
			s.registry.Activate(*req.TabID, *req.WindowID, stringValue(req.URL))
			s.registry.FocusWindow(*req.WindowID)
		} else if req.URL != nil {
			s.registry.UpdateURL(*req.TabID, *req.URL, true)
		}
		err = s.tracker.TabActivated(ctx, *req.TabID)

	case entity.EventTabUpdated:
		active := req.Active != nil && *req.Active
		s.registry.UpdateURL(*req.TabID, *req.URL, active)
		err = s.tracker.TabUpdated(ctx, *req.TabID, *req.URL, active)

	case entity.EventTabRemoved:
		err = s.tracker.TabRemoved(ctx, *req.TabID)
		s.registry.Remove(*req.TabID)

	case entity.EventWindowFocusChanged:
		if *req.WindowID != host.WindowIDNone {
			s.registry.FocusWindow(*req.WindowID)
			if req.TabID != nil {
				s.registry.Activate(*req.TabID, *req.WindowID, stringValue(req.URL))
			}
		}
		err = s.tracker.WindowFocusChanged(ctx, *req.WindowID)

	case entity.EventIdleStateChanged:
		err = s.tracker.IdleStateChanged(ctx, *req.State)
	}

	if err != nil {
		return fmt.Errorf("failed to handle %s event: %w", req.Type, err)
	}

	return nil
}

func (s *tabEventService) HandleBatch(ctx context.Context, req entity.BatchTabEventRequest) (*entity.BatchTabEventResponse, error) {
	if len(req.Events) == 0 {
		return nil, fmt.Errorf("%w: no events provided", ErrInvalidEvent)
	}

	if len(req.Events) > maxBatchSize {
		return nil, fmt.Errorf("%w: too many events, maximum is %d", ErrInvalidEvent, maxBatchSize)
	}

	resp := &entity.BatchTabEventResponse{
		Results: make([]entity.TabEventResult, 0, len(req.Events)),
	}

	for i, event := range req.Events {
		result := entity.TabEventResult{Index: i, Type: event.Type}
		if err := s.HandleEvent(ctx, event); err != nil {
			result.Error = err.Error()
			resp.Failed++
		} else {
			resp.Processed++
		}
		resp.Results = append(resp.Results, result)
	}

	return resp, nil
}

func (s *tabEventService) ValidateEvent(req entity.TabEventRequest) error {
	if !validEventTypes[req.Type] {
		return fmt.Errorf("%w: unknown event type: %s", ErrInvalidEvent, req.Type)
	}

	switch req.Type {
	case entity.EventStartup:
		if req.TabID != nil && req.WindowID == nil {
			return fmt.Errorf("%w: windowId is required when tabId is given", ErrInvalidEvent)
		}

	case entity.EventTabActivated, entity.EventTabRemoved:
		if req.TabID == nil {
			return fmt.Errorf("%w: tabId is required for %s events", ErrInvalidEvent, req.Type)
		}

	case entity.EventTabUpdated:
		if req.TabID == nil || req.URL == nil {
			return fmt.Errorf("%w: tabId and url are required for %s events", ErrInvalidEvent, req.Type)
		}

	case entity.EventWindowFocusChanged:
		if req.WindowID == nil {
			return fmt.Errorf("%w: windowId is required for %s events", ErrInvalidEvent, req.Type)
		}

	case entity.EventIdleStateChanged:
		if req.State == nil || !validIdleStates[*req.State] {
			return fmt.Errorf("%w: state must be one of active, idle, locked", ErrInvalidEvent)
		}
	}

	if req.TabID != nil && *req.TabID < 0 {
		return fmt.Errorf("%w: invalid tabId", ErrInvalidEvent)
	}

	if req.Timestamp != nil && *req.Timestamp <= 0 {
		return fmt.Errorf("%w: invalid timestamp", ErrInvalidEvent)
	}

	return nil
}

func (s *tabEventService) GetState() entity.TrackerState {
	return s.tracker.Snapshot()
}

func (s *tabEventService) GetSettings() entity.TrackerSettings {
	return s.settings
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
