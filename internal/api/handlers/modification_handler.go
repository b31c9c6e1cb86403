package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixelbrief/pixelbrief-backend/internal/api/middleware"
	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/service"
)

// ============================================
// Modification Request Handler
// ============================================

type ModificationHandler struct {
	modificationService service.ModificationService
}

// Create - Raise a new modification request
// POST /projects/:id/modifications
func (h *ModificationHandler) Create(c *gin.Context) {
	projectID := c.Param("id")

	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateModificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.modificationService.Create(c.Request.Context(), projectID, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// List - List a project's modification requests in request order
// GET /projects/:id/modifications
func (h *ModificationHandler) List(c *gin.Context) {
	requests, err := h.modificationService.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// Get - Get a modification request by ID
// GET /modifications/:id
func (h *ModificationHandler) Get(c *gin.Context) {
	request, err := h.modificationService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// Approve - Approve a pending request
// POST /modifications/:id/approve
func (h *ModificationHandler) Approve(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	request, err := h.modificationService.Approve(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// Reject - Reject a pending request with a reason
// POST /modifications/:id/reject
func (h *ModificationHandler) Reject(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.RejectModificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.modificationService.Reject(c.Request.Context(), c.Param("id"), userID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// Start - Begin work on an approved request
// POST /modifications/:id/start
func (h *ModificationHandler) Start(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	request, err := h.modificationService.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// Complete - Finish a request, consuming one quota unit
// POST /modifications/:id/complete
func (h *ModificationHandler) Complete(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	request, err := h.modificationService.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// Quota - Get the project's modification quota summary
// GET /projects/:id/quota
func (h *ModificationHandler) Quota(c *gin.Context) {
	projectID := c.Param("id")

	summary, err := h.modificationService.Quota(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuotaResponse(projectID, summary))
}
