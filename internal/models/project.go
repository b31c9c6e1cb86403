// ============================================
// FILE: internal/models/project.go
// ============================================
package models

import "time"

// Project is the lifecycle-controlled aggregate at the center of the engine.
// Status is mutated exclusively through workflow transitions; projects are
// never deleted, they only reach archived or cancelled.
type Project struct {
	ID         string `json:"id"`
	ClientID   string `json:"client_id"`
	DesignerID string `json:"designer_id"`
	Name       string `json:"name"`
	Status     string `json:"status"`

	// Scheduling. Ordering of the deadlines is a contract convention, not
	// enforced by the engine.
	StartDate           *time.Time `json:"start_date,omitempty"`
	DraftDeadline       *time.Time `json:"draft_deadline,omitempty"`
	FirstReviewDeadline *time.Time `json:"first_review_deadline,omitempty"`
	FinalDeadline       *time.Time `json:"final_deadline,omitempty"`

	TotalModificationCount     int `json:"total_modification_count"`
	RemainingModificationCount int `json:"remaining_modification_count"`

	// Completion metadata, set only while status is completion_requested or
	// completed.
	CompletionRequestedAt *time.Time `json:"completion_requested_at,omitempty"`
	CompletionNote        *string    `json:"completion_note,omitempty"`
	FinalDeliverables     []string   `json:"final_deliverables,omitempty"`

	FeedbackRounds int       `json:"feedback_rounds"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Request models
type CreateProjectRequest struct {
	Name                   string     `json:"name" binding:"required"`
	ClientID               string     `json:"client_id" binding:"required"`
	DesignerID             string     `json:"designer_id" binding:"required"`
	StartDate              *time.Time `json:"start_date"`
	DraftDeadline          *time.Time `json:"draft_deadline"`
	FirstReviewDeadline    *time.Time `json:"first_review_deadline"`
	FinalDeadline          *time.Time `json:"final_deadline"`
	TotalModificationCount int        `json:"total_modification_count"`
}

type TransitionRequest struct {
	TargetStatus      string   `json:"target_status" binding:"required"`
	CompletionNote    *string  `json:"completion_note"`
	FinalDeliverables []string `json:"final_deliverables"`
}

// Response models
type TransitionResponse struct {
	Project     *Project `json:"project"`
	FromStatus  string   `json:"from_status"`
	ToStatus    string   `json:"to_status"`
	ActionID    string   `json:"action_id"`
	ActionLabel string   `json:"action_label"`
}

type ActionResponse struct {
	ActionID             string `json:"action_id"`
	Label                string `json:"label"`
	Description          string `json:"description"`
	TargetStatus         string `json:"target_status"`
	RequiresConfirmation bool   `json:"requires_confirmation"`
	ConfirmationMessage  string `json:"confirmation_message,omitempty"`
}

type ProgressResponse struct {
	ProjectID string `json:"project_id"`
	Status    string `json:"status"`
	Progress  int    `json:"progress"`
}
