package session

import (
	"time"

	"github.com/bryanwahyu/videomaster/internal/domain/analysis"
)

// RecordID identifier type
type RecordID string

// DisplayRecord is an analysis result plus the submission metadata the page shows.
type DisplayRecord struct {
	ID                   RecordID  `json:"id"`
	SourceURL            string    `json:"source_url"`
	CreatedAt            time.Time `json:"created_at"`
	ThumbnailPlaceholder string    `json:"thumbnail_placeholder"`
	analysis.Result
}

// Failure is the user-facing outcome of a rejected submission.
type Failure struct {
	Kind    analysis.Kind `json:"kind"`
	Message string        `json:"message"`
	At      time.Time     `json:"at"`
}

// Snapshot is a consistent read of a session.
type Snapshot struct {
	ID      string          `json:"id"`
	Loading bool            `json:"loading"`
	Records []DisplayRecord `json:"records"`
	Failure *Failure        `json:"failure,omitempty"`
}
