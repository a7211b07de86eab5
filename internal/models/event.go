package models

import "time"

// Activity log event types.
const (
	EventGenerate = "GENERATE"
	EventClear    = "CLEAR"
	EventParams   = "PARAMS"
	EventTheme    = "THEME"
	EventAutoOn   = "AUTO_ON"
	EventAutoOff  = "AUTO_OFF"
)

// Event is a single activity log entry.
type Event struct {
	EventID     string    `json:"event_id"`
	SessionID   int       `json:"session_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // GENERATE | CLEAR | PARAMS | THEME | AUTO_ON | AUTO_OFF
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
