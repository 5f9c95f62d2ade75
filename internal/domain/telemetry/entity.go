package telemetry

import "time"

// Event names
const (
	EventSessionStarted    = "session_started"
	EventDeepLinkOpened    = "deep_link_opened"
	EventAnalysisSubmitted = "analysis_submitted"
	EventAnalysisSucceeded = "analysis_succeeded"
	EventAnalysisFailed    = "analysis_failed"
	EventRecordRemoved     = "record_removed"
	EventShareLinkCreated  = "share_link_created"
)

// Event is one analytics occurrence.
type Event struct {
	Name      string            `json:"name"`
	SessionID string            `json:"session_id,omitempty"`
	Props     map[string]string `json:"props,omitempty"`
	At        time.Time         `json:"at"`
}
