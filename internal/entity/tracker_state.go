// entity/tracker_state.go
package entity

type TrackerState struct {
	ActiveTabID  *int          `json:"activeTabId"`
	ActiveURL    *string       `json:"activeUrl"`
	PendingStart map[int]int64 `json:"pendingStart"`
	Idle         bool          `json:"idle"`
}

type TrackerSettings struct {
	IdleDetectionSeconds int      `json:"idleDetectionSeconds"`
	InternalSchemes      []string `json:"internalSchemes"`
	Timezone             string   `json:"timezone"`
}
