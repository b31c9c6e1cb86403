// ============================================
// FILE: internal/models/modification.go
// ============================================
package models

import "time"

// ModificationRequest is one revision-round request raised by the client.
// Status advances pending -> approved -> in_progress -> completed, or
// pending -> rejected.
type ModificationRequest struct {
	ID               string     `json:"id"`
	ProjectID        string     `json:"project_id"`
	RequestNumber    int        `json:"request_number"`
	Description      string     `json:"description"`
	Status           string     `json:"status"`
	Urgency          string     `json:"urgency"`
	IsAdditionalCost bool       `json:"is_additional_cost"`
	FeedbackIDs      []string   `json:"feedback_ids,omitempty"`
	RejectionReason  *string    `json:"rejection_reason,omitempty"`
	RequestedBy      string     `json:"requested_by"`
	RequestedAt      time.Time  `json:"requested_at"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// Request models
type CreateModificationRequest struct {
	Description string   `json:"description" binding:"required"`
	Urgency     string   `json:"urgency"`
	FeedbackIDs []string `json:"feedback_ids"`
}

type RejectModificationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// QuotaResponse mirrors quota.Summary for API consumers.
type QuotaResponse struct {
	ProjectID           string `json:"project_id"`
	Total               int    `json:"total"`
	Used                int    `json:"used"`
	Remaining           int    `json:"remaining"`
	InProgress          int    `json:"in_progress"`
	AdditionalUsed      int    `json:"additional_used"`
	TotalAdditionalCost string `json:"total_additional_cost"`
	StatusColor         string `json:"status_color"`
	StatusMessage       string `json:"status_message"`
	IsLimitExceeded     bool   `json:"is_limit_exceeded"`
	ShouldWarn          bool   `json:"should_warn"`
}
