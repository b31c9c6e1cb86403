package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pixelbrief/pixelbrief-backend/internal/api/middleware"
	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/service"
	"github.com/pixelbrief/pixelbrief-backend/internal/workflow"
)

// ============================================
// Workflow Handler
// ============================================

type WorkflowHandler struct {
	workflowService service.WorkflowService
}

// Transition - Request a lifecycle transition
// POST /projects/:id/transition
func (h *WorkflowHandler) Transition(c *gin.Context) {
	projectID := c.Param("id")

	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := &service.TransitionOptions{
		CompletionNote:    req.CompletionNote,
		FinalDeliverables: req.FinalDeliverables,
	}

	result, err := h.workflowService.RequestTransition(
		c.Request.Context(),
		projectID,
		req.TargetStatus,
		middleware.GetRole(c),
		userID,
		opts,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TransitionResponse{
		Project:     result.Project,
		FromStatus:  result.Transition.From,
		ToStatus:    result.Transition.To,
		ActionID:    result.Transition.ActionID,
		ActionLabel: result.Transition.Label,
	})
}

// Actions - List the actions available to the caller's role
// GET /projects/:id/actions
func (h *WorkflowHandler) Actions(c *gin.Context) {
	projectID := c.Param("id")

	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	transitions, err := h.workflowService.AvailableActions(c.Request.Context(), projectID, middleware.GetRole(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toActionResponses(transitions))
}

// Progress - Compute the project's progress percentage
// GET /projects/:id/progress?milestones_completed=2&total_milestones=5
func (h *WorkflowHandler) Progress(c *gin.Context) {
	projectID := c.Param("id")

	data := &workflow.ProgressData{
		MilestonesCompleted: queryInt(c, "milestones_completed"),
		TotalMilestones:     queryInt(c, "total_milestones"),
	}

	progress, err := h.workflowService.Progress(c.Request.Context(), projectID, data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// StatusDisplay - Get display info for one status
// GET /statuses/:status
func (h *WorkflowHandler) StatusDisplay(c *gin.Context) {
	info, err := workflow.StatusDisplayInfo(c.Param("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// StatusCatalogue - List display info for every status
// GET /statuses
func (h *WorkflowHandler) StatusCatalogue(c *gin.Context) {
	c.JSON(http.StatusOK, workflow.AllDisplayInfo())
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
