package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/quota"
	"github.com/pixelbrief/pixelbrief-backend/internal/service"
	"github.com/pixelbrief/pixelbrief-backend/internal/store"
	"github.com/pixelbrief/pixelbrief-backend/internal/workflow"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Project      *ProjectHandler
	Workflow     *WorkflowHandler
	Version      *VersionHandler
	Feedback     *FeedbackHandler
	Modification *ModificationHandler
	Notification *NotificationHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Project:      &ProjectHandler{projectService: services.Project},
		Workflow:     &WorkflowHandler{workflowService: services.Workflow},
		Version:      &VersionHandler{versionService: services.Version},
		Feedback:     &FeedbackHandler{feedbackService: services.Feedback},
		Modification: &ModificationHandler{modificationService: services.Modification},
		Notification: &NotificationHandler{notificationService: services.Notification},
	}
}

// ============================================
// Error Mapping
// ============================================

// respondError maps engine errors onto HTTP status codes. Validation
// failures list every failed rule so clients can render them all at once.
func respondError(c *gin.Context, err error) {
	if ve, ok := workflow.AsValidationError(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        "Transition validation failed",
			"failed_rules": ve.FailedRules,
		})
		return
	}

	switch err {
	case workflow.ErrInvalidTransition:
		c.JSON(http.StatusConflict, gin.H{"error": "Requested status change is not a declared transition"})
	case workflow.ErrForbidden, service.ErrForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": "Acting role is not allowed to perform this action"})
	case workflow.ErrUnknownStatus:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown project status"})
	case service.ErrNotFound, store.ErrKeyNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case service.ErrUnknownVersion:
		c.JSON(http.StatusNotFound, gin.H{"error": "No such version in history"})
	case service.ErrEmptyFileSet:
		c.JSON(http.StatusBadRequest, gin.H{"error": "A design version requires at least one file"})
	case service.ErrInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case service.ErrProjectNotModifiable:
		c.JSON(http.StatusConflict, gin.H{"error": "Project status does not allow modification requests"})
	case service.ErrInvalidModificationState:
		c.JSON(http.StatusConflict, gin.H{"error": "Modification request is not in a state that allows this operation"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// ============================================
// Response Mappers
// ============================================

func toQuotaResponse(projectID string, s *quota.Summary) models.QuotaResponse {
	return models.QuotaResponse{
		ProjectID:           projectID,
		Total:               s.Total,
		Used:                s.Used,
		Remaining:           s.Remaining,
		InProgress:          s.InProgress,
		AdditionalUsed:      s.AdditionalUsed,
		TotalAdditionalCost: s.TotalAdditionalCost.String(),
		StatusColor:         s.StatusColor,
		StatusMessage:       s.StatusMessage,
		IsLimitExceeded:     s.IsLimitExceeded,
		ShouldWarn:          s.ShouldWarn,
	}
}

func toActionResponses(transitions []workflow.Transition) []models.ActionResponse {
	actions := make([]models.ActionResponse, len(transitions))
	for i, t := range transitions {
		actions[i] = models.ActionResponse{
			ActionID:             t.ActionID,
			Label:                t.Label,
			Description:          t.Description,
			TargetStatus:         t.To,
			RequiresConfirmation: t.RequiresConfirmation,
			ConfirmationMessage:  t.ConfirmationMessage,
		}
	}
	return actions
}
