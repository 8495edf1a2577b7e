// entity/tab_event.go
package entity

const (
	EventStartup            = "startup"
	EventTabActivated       = "tab_activated"
	EventTabUpdated         = "tab_updated"
	EventTabRemoved         = "tab_removed"
	EventWindowFocusChanged = "window_focus_changed"
	EventIdleStateChanged   = "idle_state_changed"
)

const (
	IdleStateActive = "active"
	IdleStateIdle   = "idle"
	IdleStateLocked = "locked"
)

// TabEventRequest is one host event forwarded by the extension. Besides the
// event itself it carries the tab snapshot the host had at that moment.
// Timestamp is when the host saw the event (epoch ms); without it the event
// is timed on arrival.
type TabEventRequest struct {
	Type      string  `json:"type" binding:"required"`
	TabID     *int    `json:"tabId,omitempty"`
	WindowID  *int    `json:"windowId,omitempty"`
	URL       *string `json:"url,omitempty"`
	Active    *bool   `json:"active,omitempty"`
	State     *string `json:"state,omitempty"`
	Timestamp *int64  `json:"timestamp,omitempty"`
}

type BatchTabEventRequest struct {
	Events []TabEventRequest `json:"events" binding:"required,dive"`
}

type TabEventResult struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
	Error string `json:"error,omitempty"`
}

type BatchTabEventResponse struct {
	Processed int              `json:"processed"`
	Failed    int              `json:"failed"`
	Results   []TabEventResult `json:"results"`
}
