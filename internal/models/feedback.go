// ============================================
// FILE: internal/models/feedback.go
// ============================================
package models

import "time"

// FeedbackHistory is the append-only edit ledger of one feedback record.
// CurrentVersion always equals len(Versions); versions are never removed,
// rollback appends.
type FeedbackHistory struct {
	FeedbackID     string            `json:"feedback_id"`
	ProjectID      string            `json:"project_id"`
	CurrentVersion int               `json:"current_version"`
	Versions       []FeedbackVersion `json:"versions"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Version returns the history entry with the given version number.
func (h *FeedbackHistory) Version(n int) (*FeedbackVersion, bool) {
	if n < 1 || n > len(h.Versions) {
		return nil, false
	}
	return &h.Versions[n-1], true
}

// FeedbackVersion is an immutable snapshot of the feedback record at one
// point in its history. Version 1 is creation and carries no changes.
type FeedbackVersion struct {
	Version   int                    `json:"version"`
	Snapshot  map[string]interface{} `json:"snapshot"`
	Changes   []FeedbackChange       `json:"changes"`
	UpdatedBy string                 `json:"updated_by"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// FeedbackChange records one field-level difference between two snapshots.
// ChangeType is derived: added when the old value is absent, removed when the
// new value is absent, modified otherwise.
type FeedbackChange struct {
	Field      string      `json:"field"`
	OldValue   interface{} `json:"old_value,omitempty"`
	NewValue   interface{} `json:"new_value,omitempty"`
	ChangeType string      `json:"change_type"`
}

// Request models
type CreateFeedbackRequest struct {
	Content map[string]interface{} `json:"content" binding:"required"`
}

type UpdateFeedbackRequest struct {
	Updates map[string]interface{} `json:"updates" binding:"required"`
}

type RollbackFeedbackRequest struct {
	TargetVersion int `json:"target_version" binding:"required"`
}

// Response models
type CompareVersionsResponse struct {
	FeedbackID string           `json:"feedback_id"`
	Version1   int              `json:"version_1"`
	Version2   int              `json:"version_2"`
	Changes    []FeedbackChange `json:"changes"`
	Summary    string           `json:"summary"`
}
