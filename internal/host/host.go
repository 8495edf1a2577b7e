// Package host models the browser-side surface the tracker queries: which
// tab is active in which window, and what URL a tab currently shows.
package host

import (
	"context"
	"errors"
)

// WindowIDNone is reported when focus leaves the browser entirely.
const WindowIDNone = -1

var (
	ErrTabNotFound = errors.New("tab not found")
	ErrNoURL       = errors.New("tab has no url")
)

type Tab struct {
	ID       int
	WindowID int
	URL      string
	Active   bool
}

type Host interface {
	// CurrentTab is the active tab of the last focused window.
	CurrentTab(ctx context.Context) (*Tab, error)
	ActiveTab(ctx context.Context, windowID int) (*Tab, error)
	TabURL(ctx context.Context, tabID int) (string, error)
}
