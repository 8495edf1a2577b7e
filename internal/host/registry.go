package host

import (
	"context"
	"sync"
)

// Registry is a Host built from the tab snapshots the extension sends along
// with each event.
type Registry struct {
	mu            sync.RWMutex
	tabs          map[int]*Tab
	focusedWindow int
}

func NewRegistry() *Registry {
	return &Registry{
		tabs:          make(map[int]*Tab),
		focusedWindow: WindowIDNone,
	}
}

// Activate marks tabID as the active tab of windowID. An empty url keeps the
// one already known for the tab.
func (r *Registry) Activate(tabID, windowID int, url string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tab := range r.tabs {
		if tab.WindowID == windowID && tab.ID != tabID {
			tab.Active = false
		}
	}

	tab, ok := r.tabs[tabID]
	if !ok {
		tab = &Tab{ID: tabID}
		r.tabs[tabID] = tab
	}
	tab.WindowID = windowID
	tab.Active = true
	if url != "" {
		tab.URL = url
	}
}

func (r *Registry) UpdateURL(tabID int, url string, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tab, ok := r.tabs[tabID]
	if !ok {
		tab = &Tab{ID: tabID, WindowID: WindowIDNone}
		r.tabs[tabID] = tab
	}
	tab.URL = url
	if active {
		tab.Active = true
	}
}

func (r *Registry) Remove(tabID int) {
	r.mu.Lock()
	delete(r.tabs, tabID)
	r.mu.Unlock()
}

func (r *Registry) FocusWindow(windowID int) {
	r.mu.Lock()
	if windowID != WindowIDNone {
		r.focusedWindow = windowID
	}
	r.mu.Unlock()
}

func (r *Registry) CurrentTab(ctx context.Context) (*Tab, error) {
	r.mu.RLock()
	windowID := r.focusedWindow
	r.mu.RUnlock()

	if windowID == WindowIDNone {
		return nil, ErrTabNotFound
	}
	return r.ActiveTab(ctx, windowID)
}

func (r *Registry) ActiveTab(ctx context.Context, windowID int) (*Tab, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, tab := range r.tabs {
		if tab.WindowID == windowID && tab.Active {
			t := *tab
			return &t, nil
		}
	}
	return nil, ErrTabNotFound
}

func (r *Registry) TabURL(ctx context.Context, tabID int) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tab, ok := r.tabs[tabID]
	if !ok {
		return "", ErrTabNotFound
	}
	if tab.URL == "" {
		return "", ErrNoURL
	}
	return tab.URL, nil
}
