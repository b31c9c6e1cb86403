package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pixelbrief/pixelbrief-backend/internal/api/middleware"
	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/service"
)

// ============================================
// Feedback Handler
// ============================================

type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

// Create - Create a feedback record with an initial history version
// POST /projects/:id/feedback
func (h *FeedbackHandler) Create(c *gin.Context) {
	projectID := c.Param("id")

	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	history, err := h.feedbackService.CreateFeedback(c.Request.Context(), projectID, userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, history)
}

// List - List a project's feedback histories
// GET /projects/:id/feedback
func (h *FeedbackHandler) List(c *gin.Context) {
	histories, err := h.feedbackService.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, histories)
}

// History - Get the full version history of one feedback record
// GET /feedback/:id/history
func (h *FeedbackHandler) History(c *gin.Context) {
	history, err := h.feedbackService.GetHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// Update - Apply a partial update, appending a new history version
// PUT /feedback/:id
func (h *FeedbackHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	history, err := h.feedbackService.UpdateFeedback(c.Request.Context(), c.Param("id"), req.Updates, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// Compare - Diff two history versions
// GET /feedback/:id/compare?v1=1&v2=3
func (h *FeedbackHandler) Compare(c *gin.Context) {
	feedbackID := c.Param("id")

	v1, err1 := strconv.Atoi(c.Query("v1"))
	v2, err2 := strconv.Atoi(c.Query("v2"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "v1 and v2 query parameters are required"})
		return
	}

	changes, err := h.feedbackService.CompareVersions(c.Request.Context(), feedbackID, v1, v2)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CompareVersionsResponse{
		FeedbackID: feedbackID,
		Version1:   v1,
		Version2:   v2,
		Changes:    changes,
		Summary:    service.ChangesSummary(changes),
	})
}

// Rollback - Restore an earlier version's content by appending a new version
// POST /feedback/:id/rollback
func (h *FeedbackHandler) Rollback(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.RollbackFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	history, err := h.feedbackService.RollbackToVersion(c.Request.Context(), c.Param("id"), req.TargetVersion, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
