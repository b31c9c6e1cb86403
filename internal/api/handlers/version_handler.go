package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixelbrief/pixelbrief-backend/internal/api/middleware"
	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/service"
)

// ============================================
// Design Version Handler
// ============================================

type VersionHandler struct {
	versionService service.VersionService
}

// Create - Publish a new design version
// POST /projects/:id/versions
func (h *VersionHandler) Create(c *gin.Context) {
	projectID := c.Param("id")

	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	version, err := h.versionService.CreateVersion(c.Request.Context(), projectID, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, version)
}

// List - List a project's versions, oldest first
// GET /projects/:id/versions
func (h *VersionHandler) List(c *gin.Context) {
	versions, err := h.versionService.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, versions)
}

// Current - Get the project's current version
// GET /projects/:id/versions/current
func (h *VersionHandler) Current(c *gin.Context) {
	version, err := h.versionService.GetCurrentVersion(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, version)
}

// Get - Get a version by ID
// GET /versions/:id
func (h *VersionHandler) Get(c *gin.Context) {
	version, err := h.versionService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, version)
}

// Approve - Approve a version (idempotent)
// POST /versions/:id/approve
func (h *VersionHandler) Approve(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	version, err := h.versionService.ApproveVersion(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, version)
}

// Restore - Make a version the current one
// POST /versions/:id/restore
func (h *VersionHandler) Restore(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	version, err := h.versionService.SetCurrentVersion(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, version)
}

// Delete - Delete a version
// DELETE /versions/:id
func (h *VersionHandler) Delete(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	deleted, err := h.versionService.DeleteVersion(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondError(c, service.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
