// internal/service/tracker/tracker.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dinerozz/tabsnoop-backend/config"
	"github.com/dinerozz/tabsnoop-backend/internal/entity"
	"github.com/dinerozz/tabsnoop-backend/internal/host"
	"github.com/dinerozz/tabsnoop-backend/internal/repository"
	"github.com/dinerozz/tabsnoop-backend/pkg/utils"
)

// TrackerService is the active-time accounting state machine. Every method
// runs to completion under one lock, so events are applied strictly in the
// order they are delivered. A returned error means the interval being closed
// could not be stored; the state transition itself has still happened.
type TrackerService interface {
	Start(ctx context.Context) error
	TabActivated(ctx context.Context, tabID int) error
	TabUpdated(ctx context.Context, tabID int, url string, active bool) error
	TabRemoved(ctx context.Context, tabID int) error
	WindowFocusChanged(ctx context.Context, windowID int) error
	IdleStateChanged(ctx context.Context, state string) error
	Snapshot() entity.TrackerState
}

type Option func(*trackerService)

func WithClock(now func() time.Time) Option {
	return func(s *trackerService) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *trackerService) { s.log = logger }
}

func WithInternalSchemes(schemes []string) Option {
	return func(s *trackerService) { s.internalSchemes = schemes }
}

type eventTimeKey struct{}

// ContextWithEventTime stamps ctx with the moment the host observed the
// event. The tracker uses it instead of its clock, so buffered events are
// billed by when they happened rather than when they arrived.
func ContextWithEventTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, eventTimeKey{}, t)
}

type trackerService struct {
	mu sync.Mutex

	host host.Host
	repo repository.DomainRecordRepository

	now             func() time.Time
	log             *slog.Logger
	internalSchemes []string

	activeTabID  *int
	activeURL    *string
	pendingStart map[int]int64
	idle         bool
}

func NewTrackerService(h host.Host, repo repository.DomainRecordRepository, opts ...Option) TrackerService {
	s := &trackerService{
		host:            h,
		repo:            repo,
		now:             time.Now,
		log:             slog.Default(),
		internalSchemes: config.DefaultTrackerConfig().InternalSchemes,
		pendingStart:    make(map[int]int64),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *trackerService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.startup(ctx)
	return nil
}

func (s *trackerService) TabActivated(ctx context.Context, tabID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.activeTabID != nil {
		err = s.flush(ctx, *s.activeTabID, s.activeURL)
	}

	s.activeTabID = &tabID
	s.activeURL = nil
	s.pendingStart[tabID] = s.nowMillis(ctx)

	url, lookupErr := s.host.TabURL(ctx, tabID)
	if lookupErr != nil {
		s.log.Warn("failed to resolve tab url", slog.Int("tab_id", tabID), slog.String("error", lookupErr.Error()))
	} else {
		s.activeURL = &url
	}

	return err
}

func (s *trackerService) TabUpdated(ctx context.Context, tabID int, url string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeTabID == nil || *s.activeTabID != tabID || !active {
		return nil
	}
	if s.activeURL != nil && *s.activeURL == url {
		return nil
	}

	err := s.flush(ctx, tabID, s.activeURL)

	s.activeURL = &url
	s.pendingStart[tabID] = s.nowMillis(ctx)

	return err
}

func (s *trackerService) TabRemoved(ctx context.Context, tabID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.activeTabID != nil && *s.activeTabID == tabID {
		err = s.flush(ctx, tabID, s.activeURL)
		s.clearActive()
	}
	delete(s.pendingStart, tabID)

	return err
}

func (s *trackerService) WindowFocusChanged(ctx context.Context, windowID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if windowID == host.WindowIDNone {
		err := s.flushActive(ctx)
		s.clearActive()
		return err
	}

	tab, lookupErr := s.host.ActiveTab(ctx, windowID)
	if lookupErr != nil {
		s.log.Debug("no active tab in focused window", slog.Int("window_id", windowID), slog.String("error", lookupErr.Error()))
		return nil
	}

	if s.activeTabID != nil && *s.activeTabID == tab.ID {
		return nil
	}

	err := s.flushActive(ctx)
	s.track(ctx, tab)

	return err
}

func (s *trackerService) IdleStateChanged(ctx context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch state {
	case entity.IdleStateIdle, entity.IdleStateLocked:
		if s.idle {
			return nil
		}
		s.log.Info("user is idle", slog.String("state", state))
		err := s.flushActive(ctx)
		s.clearActive()
		s.idle = true
		return err

	case entity.IdleStateActive:
		if !s.idle {
			return nil
		}
		s.log.Info("user is active again")
		s.idle = false
		s.startup(ctx)
		return nil
	}

	return fmt.Errorf("unknown idle state: %s", state)
}

func (s *trackerService) Snapshot() entity.TrackerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := entity.TrackerState{
		PendingStart: make(map[int]int64, len(s.pendingStart)),
		Idle:         s.idle,
	}
	if s.activeTabID != nil {
		id := *s.activeTabID
		state.ActiveTabID = &id
	}
	if s.activeURL != nil {
		url := *s.activeURL
		state.ActiveURL = &url
	}
	for tabID, start := range s.pendingStart {
		state.PendingStart[tabID] = start
	}

	return state
}

func (s *trackerService) startup(ctx context.Context) {
	tab, err := s.host.CurrentTab(ctx)
	if err != nil {
		s.log.Debug("no active tab in current window", slog.String("error", err.Error()))
		return
	}
	s.track(ctx, tab)
}

func (s *trackerService) track(ctx context.Context, tab *host.Tab) {
	id := tab.ID
	s.activeTabID = &id
	if tab.URL != "" {
		url := tab.URL
		s.activeURL = &url
	} else {
		s.activeURL = nil
	}
	s.pendingStart[id] = s.nowMillis(ctx)
}

func (s *trackerService) clearActive() {
	s.activeTabID = nil
	s.activeURL = nil
}

func (s *trackerService) flushActive(ctx context.Context) error {
	if s.activeTabID == nil {
		return nil
	}
	return s.flush(ctx, *s.activeTabID, s.activeURL)
}

// flush closes the open interval of tabID and bills it to url's domain.
// The pending start is dropped whether or not anything was billed, so it
// can never be reused for a later interval on the same tab id.
func (s *trackerService) flush(ctx context.Context, tabID int, url *string) error {
	start, ok := s.pendingStart[tabID]
	delete(s.pendingStart, tabID)

	if url == nil || *url == "" {
		return nil
	}
	if utils.IsInternalURL(*url, s.internalSchemes) {
		s.log.Debug("skipping internal page", slog.String("url", *url))
		return nil
	}
	if !ok {
		s.log.Warn("no open interval for tab", slog.Int("tab_id", tabID))
		return nil
	}

	domain, ok := utils.ExtractDomain(*url)
	if !ok {
		s.log.Warn("invalid url, interval dropped", slog.String("url", *url))
		return nil
	}

	end := s.nowMillis(ctx)
	if end < start {
		s.log.Warn("event time before interval start, clamped", slog.Int("tab_id", tabID), slog.Int64("start", start), slog.Int64("end", end))
		end = start
	}
	visit := entity.VisitInterval{Start: start, End: end}

	record, err := s.repo.AppendVisit(ctx, domain, visit)
	if err != nil {
		s.log.Error("failed to save visit",
			slog.String("domain", domain),
			slog.Int64("duration_ms", visit.Duration()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to save visit for %s: %w", domain, err)
	}

	s.log.Info("saved visit",
		slog.String("domain", domain),
		slog.Int64("duration_ms", visit.Duration()),
		slog.Int64("total_ms", record.TotalTime))

	return nil
}

func (s *trackerService) nowMillis(ctx context.Context) int64 {
	if t, ok := ctx.Value(eventTimeKey{}).(time.Time); ok {
		return utils.ToMillis(t)
	}
	return utils.ToMillis(s.now())
}
